package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estates/internal/model"
	"estates/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	docs      []model.ListingDocument
	insertErr error
}

func (s *stubStore) FetchCollection(ctx context.Context, name string) ([]model.ListingDocument, error) {
	if name != model.SourcePrimary {
		return nil, nil
	}
	docs := make([]model.ListingDocument, len(s.docs))
	copy(docs, s.docs)
	for i := range docs {
		docs[i].Source = name
	}
	return docs, nil
}

func (s *stubStore) GetListingByID(ctx context.Context, id string) (*model.ListingDocument, error) {
	for _, doc := range s.docs {
		if doc.ID == id {
			doc.Source = model.SourcePrimary
			return &doc, nil
		}
	}
	return nil, nil
}

func (s *stubStore) PublishedProjects(ctx context.Context) ([]model.Project, error) {
	return []model.Project{{ID: "p1", Name: "Harbour Views", Published: true}}, nil
}

func (s *stubStore) InsertInquiry(ctx context.Context, inq *model.Inquiry) error {
	return s.insertErr
}

func (s *stubStore) InsertFloorPlanRequest(ctx context.Context, req *model.FloorPlanRequest) error {
	return s.insertErr
}

func (s *stubStore) LogBrowse(ctx context.Context, criteria model.FilterCriteria, sortKey model.SortKey, resultCount int, responseTimeMs int) error {
	return nil
}

func setupRouter(t *testing.T, store *stubStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := service.NewCatalogService(store, 20)
	catalog.Load(context.Background())

	listings := NewListingsHandler(catalog)
	inquiries := NewInquiryHandler(catalog)

	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/listings", listings.Browse)
	api.GET("/listings/:id", listings.GetListing)
	api.GET("/projects", listings.Projects)
	api.POST("/inquiries", inquiries.Submit)
	api.POST("/floorplans", inquiries.RequestFloorPlan)
	return router
}

func listingDoc(id, status string, price float64) model.ListingDocument {
	return model.ListingDocument{
		ID: id,
		Doc: model.JSONMap{
			"title":  "Listing " + id,
			"status": status,
			"price":  price,
			"area":   "Dubai Marina",
		},
	}
}

func TestBrowse_ReturnsPage(t *testing.T) {
	store := &stubStore{docs: []model.ListingDocument{
		listingDoc("a", "sale", 900000),
		listingDoc("b", "rent", 80000),
		listingDoc("c", "rent", 95000),
	}}
	router := setupRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings?action=rent&sort=price-low", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ListingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "b", resp.Results[0].ID)
	assert.Equal(t, 20, resp.PageSize)
}

// A malformed numeric criterion is treated as absent, never as an error.
func TestBrowse_MalformedCriterionIsIgnored(t *testing.T) {
	store := &stubStore{docs: []model.ListingDocument{
		listingDoc("a", "sale", 900000),
		listingDoc("b", "sale", 1200000),
	}}
	router := setupRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings?price_min=cheap&page=NaN", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ListingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Page)
}

func TestGetListing_NotFound(t *testing.T) {
	router := setupRouter(t, &stubStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetListing_NormalizesDocument(t *testing.T) {
	store := &stubStore{docs: []model.ListingDocument{
		{ID: "x", Doc: model.JSONMap{"price": "1500000", "features": "Pool, Gym"}},
	}}
	router := setupRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/x", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var listing model.NormalizedListing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, float64(1500000), listing.Price)
	assert.Equal(t, []string{"Pool", "Gym"}, listing.Features)
	assert.Equal(t, service.FallbackLocation, listing.Location)
}

func TestProjects(t *testing.T) {
	router := setupRouter(t, &stubStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Harbour Views")
}

func TestSubmitInquiry(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			name:     "valid inquiry",
			body:     `{"name":"Amira","email":"amira@example.com","subject":"buying","message":"Interested"}`,
			wantCode: http.StatusOK,
		},
		{
			name:     "invalid subject",
			body:     `{"name":"Amira","email":"amira@example.com","subject":"spam","message":"hi"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing required fields",
			body:     `{"email":"amira@example.com"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid email",
			body:     `{"name":"Amira","email":"not-an-email","subject":"buying","message":"hi"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(t, &stubStore{})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/inquiries", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				var resp model.SubmitResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
				assert.NotEmpty(t, resp.ID)
			}
		})
	}
}

// A store write failure comes back as a visible error, not a silent drop.
func TestSubmitInquiry_WriteFailure(t *testing.T) {
	router := setupRouter(t, &stubStore{insertErr: errors.New("store down")})

	w := httptest.NewRecorder()
	body := `{"name":"Amira","email":"amira@example.com","subject":"buying","message":"Interested"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inquiries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
