package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drivelane/drivelane/drivelane/comparison"
	dbmodels "github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
	"github.com/drivelane/drivelane/drivelane/services"
	"github.com/drivelane/drivelane/drivelane/web/middleware"
	webmodels "github.com/drivelane/drivelane/drivelane/web/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type fakeListings struct {
	repositories.ListingRepository
	byRef map[string]*dbmodels.Listing
}

func (f *fakeListings) GetByRef(_ context.Context, ref string) (*dbmodels.Listing, error) {
	listing, ok := f.byRef[ref]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "listing", ID: ref}
	}
	return listing, nil
}

type fakeDealers struct {
	repositories.DealerRepository
	byID map[int64]*dbmodels.Dealer
}

func (f *fakeDealers) GetByID(_ context.Context, id int64) (*dbmodels.Dealer, error) {
	dealer, ok := f.byID[id]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "dealer", ID: id}
	}
	return dealer, nil
}

func testWebApp() *WebApp {
	listings := &fakeListings{byRef: map[string]*dbmodels.Listing{
		"a": {
			Ref: "a", DealerID: 1, Make: "Toyota", Model: "Corolla", Title: "Toyota Corolla",
			Price: 20000, Year: 2022, Mileage: 10000,
			Category: string(comparison.CategorySedan), FuelType: string(comparison.FuelBenzine),
			Condition: string(comparison.ConditionUsed), Status: dbmodels.ListingStatusActive,
			Features: []string{"abs", "airbags"},
		},
		"b": {
			Ref: "b", DealerID: 1, Make: "Toyota", Model: "Camry", Title: "Toyota Camry",
			Price: 25000, Year: 2020, Mileage: 40000,
			Category: string(comparison.CategorySedan), FuelType: string(comparison.FuelBenzine),
			Condition: string(comparison.ConditionUsed), Status: dbmodels.ListingStatusActive,
			Features: []string{"abs"},
		},
	}}
	dealers := &fakeDealers{byID: map[int64]*dbmodels.Dealer{
		1: {ID: 1, Slug: "prime-motors", Name: "Prime Motors", City: "Rotterdam"},
	}}

	cache := services.NewComparisonCache("", "")
	return &WebApp{
		Listings:       listings,
		Dealers:        dealers,
		CompareService: services.NewCompareService(listings, cache),
		Version:        "test",
	}
}

func testFiberApp(webApp *WebApp) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	app.Get("/api/listings/:ref", ListingDetail(webApp))
	app.Get("/api/listings/:ref/ownership-cost", ListingOwnershipCost(webApp))
	app.Post("/api/compare", Compare(webApp))
	return app
}

func TestListingDetailEndpoint(t *testing.T) {
	app := testFiberApp(testWebApp())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/listings/a", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                    `json:"success"`
		Data    webmodels.ListingDetail `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, "a", body.Data.Ref)
	require.NotNil(t, body.Data.Dealer)
	require.Equal(t, "prime-motors", body.Data.Dealer.Slug)
	require.Greater(t, body.Data.Metrics.ValueScore, 0.0)
}

func TestListingDetailNotFound(t *testing.T) {
	app := testFiberApp(testWebApp())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/listings/zzz", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body webmodels.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.False(t, body.Success)
	require.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestCompareEndpoint(t *testing.T) {
	app := testFiberApp(testWebApp())

	req := httptest.NewRequest(http.MethodPost, "/api/compare",
		strings.NewReader(`{"first_ref":"a","second_ref":"b"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool               `json:"success"`
		Data    comparison.Summary `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.InDelta(t, 100, body.Data.Decision.TotalFirst+body.Data.Decision.TotalSecond, 0.001)
}

func TestCompareEndpointSameRef(t *testing.T) {
	app := testFiberApp(testWebApp())

	req := httptest.NewRequest(http.MethodPost, "/api/compare",
		strings.NewReader(`{"first_ref":"a","second_ref":"a"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompareEndpointMissingBody(t *testing.T) {
	app := testFiberApp(testWebApp())

	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(`{}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOwnershipCostEndpoint(t *testing.T) {
	app := testFiberApp(testWebApp())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/listings/a/ownership-cost", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data comparison.CostBreakdown `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	sum := body.Data.Depreciation + body.Data.Insurance + body.Data.Fuel +
		body.Data.Maintenance + body.Data.Registration
	require.InDelta(t, sum, body.Data.Total, 0.001)
}
