package services

import (
	"context"
	"testing"

	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
	"github.com/stretchr/testify/require"
)

// fakeListings overrides just the calls each test needs; everything
// else panics through the nil embedded interface.
type fakeListings struct {
	repositories.ListingRepository
	byRef  map[string]*models.Listing
	titles []*models.Listing
}

func (f *fakeListings) GetByRef(_ context.Context, ref string) (*models.Listing, error) {
	listing, ok := f.byRef[ref]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "listing", ID: ref}
	}
	return listing, nil
}

func (f *fakeListings) SearchTitles(_ context.Context, _ string, _ int) ([]*models.Listing, error) {
	return f.titles, nil
}

func TestSuggestRanksAndLimits(t *testing.T) {
	repo := &fakeListings{titles: []*models.Listing{
		{Ref: "1", Make: "Toyota", Model: "Corolla", Title: "Toyota Corolla 1.8 Hybrid", Year: 2022, Price: 21000},
		{Ref: "2", Make: "Toyota", Model: "Camry", Title: "Toyota Camry 2.5", Year: 2021, Price: 28000},
		{Ref: "3", Make: "Honda", Model: "Civic", Title: "Honda Civic Type R", Year: 2023, Price: 42000},
	}}
	s := NewSearchService(repo)

	suggestions, err := s.Suggest(context.Background(), "corolla", 5)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	require.Equal(t, "1", suggestions[0].Ref)

	for _, sug := range suggestions {
		require.NotEqual(t, "3", sug.Ref, "civic should not match corolla")
	}
}

func TestSuggestEmptyQuery(t *testing.T) {
	s := NewSearchService(&fakeListings{})

	suggestions, err := s.Suggest(context.Background(), "   ", 5)
	require.NoError(t, err)
	require.Nil(t, suggestions)
}

func TestSuggestLimitClamped(t *testing.T) {
	titles := make([]*models.Listing, 20)
	for i := range titles {
		titles[i] = &models.Listing{Ref: "r", Make: "Ford", Model: "Focus", Title: "Ford Focus"}
	}
	s := NewSearchService(&fakeListings{titles: titles})

	suggestions, err := s.Suggest(context.Background(), "ford focus", 1000)
	require.NoError(t, err)
	require.LessOrEqual(t, len(suggestions), 8)
}

func TestNormalizeQuery(t *testing.T) {
	require.Equal(t, "toyota corolla", normalizeQuery("  Toyota   COROLLA "))
	require.Equal(t, "", normalizeQuery("   "))
}
