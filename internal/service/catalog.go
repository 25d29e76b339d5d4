package service

import (
	"context"
	"log"
	"sync"
	"time"

	"estates/internal/model"

	"github.com/google/uuid"
)

// Store is the document-store surface the catalog depends on.
type Store interface {
	FetchCollection(ctx context.Context, name string) ([]model.ListingDocument, error)
	GetListingByID(ctx context.Context, id string) (*model.ListingDocument, error)
	PublishedProjects(ctx context.Context) ([]model.Project, error)
	InsertInquiry(ctx context.Context, inq *model.Inquiry) error
	InsertFloorPlanRequest(ctx context.Context, req *model.FloorPlanRequest) error
	LogBrowse(ctx context.Context, criteria model.FilterCriteria, sortKey model.SortKey, resultCount int, responseTimeMs int) error
}

// CatalogService owns the in-memory listing snapshot and runs the browse
// pipeline over it. The snapshot is fetched wholesale once (and again on
// explicit refresh); criteria changes only recompute over resident data.
type CatalogService struct {
	store    Store
	pageSize int

	mu       sync.RWMutex
	snapshot []model.NormalizedListing
}

// NewCatalogService creates a catalog service with the given page size.
func NewCatalogService(store Store, pageSize int) *CatalogService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &CatalogService{
		store:    store,
		pageSize: pageSize,
	}
}

// Load fetches both listing collections concurrently and replaces the
// snapshot with the normalized concatenation. A failure in one collection is
// logged and degrades to an empty set for that source only; listings from the
// other source are still served. Returns the snapshot size.
func (s *CatalogService) Load(ctx context.Context) int {
	sources := []string{model.SourcePrimary, model.SourceAgent}
	fetched := make([][]model.ListingDocument, len(sources))

	var wg sync.WaitGroup
	for i, name := range sources {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			docs, err := s.store.FetchCollection(ctx, name)
			if err != nil {
				log.Printf("Failed to fetch collection %s: %v", name, err)
				return
			}
			fetched[i] = docs
		}(i, name)
	}
	wg.Wait()

	var normalized []model.NormalizedListing
	for _, docs := range fetched {
		for _, doc := range docs {
			normalized = append(normalized, Normalize(doc))
		}
	}

	s.mu.Lock()
	s.snapshot = normalized
	s.mu.Unlock()

	return len(normalized)
}

// Listings returns the current snapshot. The returned slice is shared and
// must not be mutated; Apply copies before filtering and sorting.
func (s *CatalogService) Listings() []model.NormalizedListing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Browse runs filter, sort, and paginate over the snapshot and returns one
// page of results with the total count for pagination UI.
func (s *CatalogService) Browse(ctx context.Context, criteria model.FilterCriteria, sortKey model.SortKey, page int) *model.ListingsResponse {
	startTime := time.Now()

	if page < 1 {
		page = 1
	}

	filtered := Apply(s.Listings(), criteria, sortKey)
	results := Paginate(filtered, page, s.pageSize)

	total := len(filtered)
	totalPages := (total + s.pageSize - 1) / s.pageSize
	took := time.Since(startTime).Milliseconds()

	// Log browse (non-blocking)
	go func() {
		_ = s.store.LogBrowse(context.Background(), criteria, sortKey, total, int(took))
	}()

	return &model.ListingsResponse{
		Results:    results,
		Total:      total,
		Page:       page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
		HasMore:    page*s.pageSize < total,
		Took:       took,
	}
}

// GetListing retrieves and normalizes a single listing by ID. Returns
// (nil, nil) when no such listing exists.
func (s *CatalogService) GetListing(ctx context.Context, id string) (*model.NormalizedListing, error) {
	doc, err := s.store.GetListingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	normalized := Normalize(*doc)
	return &normalized, nil
}

// Projects returns the published projects for the showcase pages.
func (s *CatalogService) Projects(ctx context.Context) ([]model.Project, error) {
	return s.store.PublishedProjects(ctx)
}

// SubmitInquiry stores a contact inquiry. Write failures are returned to the
// caller so the user sees a visible submission error; there is no retry.
func (s *CatalogService) SubmitInquiry(ctx context.Context, req *model.InquiryRequest) (*model.Inquiry, error) {
	inq := &model.Inquiry{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		ListingID: req.ListingID,
	}
	if err := s.store.InsertInquiry(ctx, inq); err != nil {
		return nil, err
	}
	return inq, nil
}

// RequestFloorPlan stores a floor-plan request for a project.
func (s *CatalogService) RequestFloorPlan(ctx context.Context, payload *model.FloorPlanRequestPayload) (*model.FloorPlanRequest, error) {
	req := &model.FloorPlanRequest{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		ProjectID: payload.ProjectID,
	}
	if err := s.store.InsertFloorPlanRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
