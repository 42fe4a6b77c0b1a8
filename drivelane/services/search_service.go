package services

import (
	"context"
	"strings"

	"github.com/drivelane/drivelane/drivelane/config"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
	"github.com/sahilm/fuzzy"
)

// listingSearchItems implements fuzzy.Source over candidate listings.
type listingSearchItems []listingSearchItem

type listingSearchItem struct {
	Listing *models.Listing
	Text    string
}

func (items listingSearchItems) Len() int {
	return len(items)
}

func (items listingSearchItems) String(i int) string {
	return items[i].Text
}

// Suggestion is one typeahead result.
type Suggestion struct {
	Ref   string  `json:"ref"`
	Label string  `json:"label"`
	Year  int     `json:"year"`
	Price float64 `json:"price"`
}

// SearchService produces typeahead suggestions for the listing search box.
type SearchService struct {
	listings repositories.ListingRepository
}

func NewSearchService(listings repositories.ListingRepository) *SearchService {
	return &SearchService{listings: listings}
}

// Suggest returns up to limit listings ranked by fuzzy relevance
// against "make model title".
func (s *SearchService) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	query = normalizeQuery(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 || limit > config.SuggestionLimit {
		limit = config.SuggestionLimit
	}

	// LIKE prefilter shrinks the candidate set before fuzzy ranking.
	candidates, err := s.listings.SearchTitles(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	items := make(listingSearchItems, len(candidates))
	for i, listing := range candidates {
		items[i] = listingSearchItem{
			Listing: listing,
			Text:    normalizeQuery(listing.Make + " " + listing.Model + " " + listing.Title),
		}
	}

	matches := fuzzy.FindFrom(query, items)

	suggestions := make([]Suggestion, 0, limit)
	for _, match := range matches {
		listing := items[match.Index].Listing
		suggestions = append(suggestions, Suggestion{
			Ref:   listing.Ref,
			Label: listing.Title,
			Year:  listing.Year,
			Price: listing.Price,
		})
		if len(suggestions) >= limit {
			break
		}
	}

	return suggestions, nil
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(q))), " ")
}
