package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"estates/internal/model"
)

// fakeStore is an in-memory Store for catalog tests.
type fakeStore struct {
	mu          sync.Mutex
	collections map[string][]model.ListingDocument
	failing     map[string]bool
	projects    []model.Project
	inquiries   []*model.Inquiry
	insertErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		collections: map[string][]model.ListingDocument{},
		failing:     map[string]bool{},
	}
}

func (f *fakeStore) FetchCollection(ctx context.Context, name string) ([]model.ListingDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[name] {
		return nil, errors.New("store unavailable")
	}
	docs := make([]model.ListingDocument, len(f.collections[name]))
	copy(docs, f.collections[name])
	for i := range docs {
		docs[i].Source = name
	}
	return docs, nil
}

func (f *fakeStore) GetListingByID(ctx context.Context, id string) (*model.ListingDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, docs := range f.collections {
		for _, doc := range docs {
			if doc.ID == id {
				doc.Source = name
				return &doc, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeStore) PublishedProjects(ctx context.Context) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.projects, nil
}

func (f *fakeStore) InsertInquiry(ctx context.Context, inq *model.Inquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inquiries = append(f.inquiries, inq)
	return nil
}

func (f *fakeStore) InsertFloorPlanRequest(ctx context.Context, req *model.FloorPlanRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	return nil
}

func (f *fakeStore) LogBrowse(ctx context.Context, criteria model.FilterCriteria, sortKey model.SortKey, resultCount int, responseTimeMs int) error {
	return nil
}

func seedListings(store *fakeStore, collection string, n int) {
	for i := 0; i < n; i++ {
		store.collections[collection] = append(store.collections[collection], model.ListingDocument{
			ID: fmt.Sprintf("%s-%d", collection, i),
			Doc: model.JSONMap{
				"title":  fmt.Sprintf("Listing %d", i),
				"price":  float64(500000 + i*10000),
				"status": "sale",
				"area":   "Dubai Marina",
			},
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
		})
	}
}

func TestCatalogService_LoadMergesBothSources(t *testing.T) {
	store := newFakeStore()
	seedListings(store, model.SourcePrimary, 3)
	seedListings(store, model.SourceAgent, 2)

	catalog := NewCatalogService(store, 20)
	loaded := catalog.Load(context.Background())

	if loaded != 5 {
		t.Fatalf("Load returned %d, want 5", loaded)
	}

	sources := map[string]int{}
	for _, l := range catalog.Listings() {
		sources[l.Source]++
	}
	if sources[model.SourcePrimary] != 3 || sources[model.SourceAgent] != 2 {
		t.Errorf("source tags = %v, want 3 primary and 2 agent", sources)
	}
}

// A failure in one collection must not blank the whole listing set.
func TestCatalogService_LoadPartialFailure(t *testing.T) {
	store := newFakeStore()
	seedListings(store, model.SourcePrimary, 3)
	store.failing[model.SourceAgent] = true

	catalog := NewCatalogService(store, 20)
	loaded := catalog.Load(context.Background())

	if loaded != 3 {
		t.Errorf("Load with one failing source returned %d, want 3", loaded)
	}
	for _, l := range catalog.Listings() {
		if l.Source != model.SourcePrimary {
			t.Errorf("unexpected source %q in snapshot", l.Source)
		}
	}
}

func TestCatalogService_LoadBothSourcesFailing(t *testing.T) {
	store := newFakeStore()
	store.failing[model.SourcePrimary] = true
	store.failing[model.SourceAgent] = true

	catalog := NewCatalogService(store, 20)
	if loaded := catalog.Load(context.Background()); loaded != 0 {
		t.Errorf("Load with both sources failing returned %d, want 0", loaded)
	}
}

func TestCatalogService_BrowsePagination(t *testing.T) {
	store := newFakeStore()
	seedListings(store, model.SourcePrimary, 45)

	catalog := NewCatalogService(store, 20)
	catalog.Load(context.Background())

	resp := catalog.Browse(context.Background(), model.FilterCriteria{}, model.SortNewest, 3)

	if resp.Total != 45 {
		t.Errorf("Total = %d, want 45", resp.Total)
	}
	if len(resp.Results) != 5 {
		t.Errorf("page 3 has %d results, want 5", len(resp.Results))
	}
	if resp.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.TotalPages)
	}
	if resp.HasMore {
		t.Error("HasMore = true on the last page")
	}
}

func TestCatalogService_BrowseAppliesCriteria(t *testing.T) {
	store := newFakeStore()
	store.collections[model.SourcePrimary] = []model.ListingDocument{
		{ID: "r1", Doc: model.JSONMap{"status": "rent"}},
		{ID: "r2", Doc: model.JSONMap{"status": "rent"}},
		{ID: "s1", Doc: model.JSONMap{"status": "sale"}},
	}

	catalog := NewCatalogService(store, 20)
	catalog.Load(context.Background())

	resp := catalog.Browse(context.Background(), model.FilterCriteria{Action: "rent"}, model.SortFeatured, 1)
	if resp.Total != 2 {
		t.Errorf("rent browse Total = %d, want 2", resp.Total)
	}
	for _, l := range resp.Results {
		if l.Status != "rent" {
			t.Errorf("listing %s has status %q, want rent", l.ID, l.Status)
		}
	}
}

// Criteria changes recompute over the snapshot; they never re-trigger a fetch.
func TestCatalogService_BrowseUsesSnapshot(t *testing.T) {
	store := newFakeStore()
	seedListings(store, model.SourcePrimary, 2)

	catalog := NewCatalogService(store, 20)
	catalog.Load(context.Background())

	// New documents appear in the store after the session load.
	store.mu.Lock()
	seedListings(store, model.SourcePrimary, 5)
	store.mu.Unlock()

	resp := catalog.Browse(context.Background(), model.FilterCriteria{}, model.SortFeatured, 1)
	if resp.Total != 2 {
		t.Errorf("browse saw %d listings, want the 2 from the session snapshot", resp.Total)
	}

	// An explicit refresh picks them up.
	catalog.Load(context.Background())
	resp = catalog.Browse(context.Background(), model.FilterCriteria{}, model.SortFeatured, 1)
	if resp.Total != 7 {
		t.Errorf("browse after refresh saw %d listings, want 7", resp.Total)
	}
}

func TestCatalogService_GetListing(t *testing.T) {
	store := newFakeStore()
	store.collections[model.SourceAgent] = []model.ListingDocument{
		{ID: "agent-1", Doc: model.JSONMap{"title": "Townhouse", "price": "950000"}},
	}

	catalog := NewCatalogService(store, 20)

	listing, err := catalog.GetListing(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("GetListing returned error: %v", err)
	}
	if listing == nil {
		t.Fatal("GetListing returned nil for existing listing")
	}
	if listing.Price != 950000 {
		t.Errorf("Price = %v, want 950000 (parsed from string)", listing.Price)
	}

	missing, err := catalog.GetListing(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetListing returned error: %v", err)
	}
	if missing != nil {
		t.Errorf("GetListing for unknown id returned %+v, want nil", missing)
	}
}

func TestCatalogService_SubmitInquiry(t *testing.T) {
	store := newFakeStore()
	catalog := NewCatalogService(store, 20)

	inq, err := catalog.SubmitInquiry(context.Background(), &model.InquiryRequest{
		Name:    "Amira",
		Email:   "amira@example.com",
		Subject: "buying",
		Message: "Interested in a viewing",
	})
	if err != nil {
		t.Fatalf("SubmitInquiry returned error: %v", err)
	}
	if inq.ID == "" {
		t.Error("SubmitInquiry did not assign an ID")
	}

	store.mu.Lock()
	stored := len(store.inquiries)
	store.mu.Unlock()
	if stored != 1 {
		t.Errorf("store holds %d inquiries, want 1", stored)
	}
}

// Write failures surface to the caller; there is no retry.
func TestCatalogService_SubmitInquiryFailure(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("write failed")
	catalog := NewCatalogService(store, 20)

	_, err := catalog.SubmitInquiry(context.Background(), &model.InquiryRequest{
		Name:    "Amira",
		Email:   "amira@example.com",
		Subject: "buying",
		Message: "Interested",
	})
	if err == nil {
		t.Fatal("expected write failure to surface")
	}
}
