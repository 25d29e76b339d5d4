package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"estates/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Collection tables this repository may read wholesale. Table names are
// interpolated into queries, so anything outside this set is rejected.
var collections = map[string]bool{
	model.SourcePrimary: true,
	model.SourceAgent:   true,
}

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute) // Shorter lifetime to avoid stale connections
	db.SetConnMaxIdleTime(2 * time.Minute) // Close idle connections sooner

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// FetchCollection retrieves every document in the named collection. Row order
// is whatever the store returns; callers must not rely on it being stable
// across calls. All listing filtering happens client-side on the fetched set.
func (r *PostgresRepository) FetchCollection(ctx context.Context, name string) ([]model.ListingDocument, error) {
	if !collections[name] {
		return nil, fmt.Errorf("unknown collection: %s", name)
	}

	query := fmt.Sprintf(`SELECT id, doc, created_at FROM %s`, name)

	var docs []model.ListingDocument
	if err := r.db.SelectContext(ctx, &docs, query); err != nil {
		return nil, fmt.Errorf("failed to fetch collection %s: %w", name, err)
	}

	for i := range docs {
		docs[i].Source = name
	}
	return docs, nil
}

// GetListingByID retrieves a single listing document by id, checking the
// primary collection first and the agent-submitted collection second.
func (r *PostgresRepository) GetListingByID(ctx context.Context, id string) (*model.ListingDocument, error) {
	for _, name := range []string{model.SourcePrimary, model.SourceAgent} {
		query := fmt.Sprintf(`SELECT id, doc, created_at FROM %s WHERE id = $1`, name)

		var doc model.ListingDocument
		err := r.db.GetContext(ctx, &doc, query, id)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get listing: %w", err)
		}
		doc.Source = name
		return &doc, nil
	}
	return nil, nil
}

// PublishedProjects retrieves projects with the published predicate pushed
// server-side; the listings pipeline never relies on server-side filtering,
// but auxiliary queries like this one do.
func (r *PostgresRepository) PublishedProjects(ctx context.Context) ([]model.Project, error) {
	query := `
		SELECT id, name, developer, location, status, description, image, gallery, published, created_at
		FROM projects
		WHERE published = true
		ORDER BY created_at DESC
	`
	var projects []model.Project
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	return projects, nil
}

// InsertInquiry stores a contact inquiry with a server-assigned timestamp
func (r *PostgresRepository) InsertInquiry(ctx context.Context, inq *model.Inquiry) error {
	query := `
		INSERT INTO inquiries (id, name, email, phone, subject, message, listing_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.ExecContext(ctx, query, inq.ID, inq.Name, inq.Email, inq.Phone, inq.Subject, inq.Message, inq.ListingID)
	if err != nil {
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}
	return nil
}

// InsertFloorPlanRequest stores a floor-plan request with a server-assigned timestamp
func (r *PostgresRepository) InsertFloorPlanRequest(ctx context.Context, req *model.FloorPlanRequest) error {
	query := `
		INSERT INTO floor_plan_requests (id, name, email, phone, project_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.ExecContext(ctx, query, req.ID, req.Name, req.Email, req.Phone, req.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to insert floor plan request: %w", err)
	}
	return nil
}

// LogBrowse logs a browse request for later analysis
func (r *PostgresRepository) LogBrowse(ctx context.Context, criteria model.FilterCriteria, sortKey model.SortKey, resultCount int, responseTimeMs int) error {
	crit := model.JSONMap{}
	if !criteria.IsZero() {
		crit = model.JSONMap{
			"action":    criteria.Action,
			"category":  criteria.Category,
			"type":      criteria.Type,
			"area":      criteria.Area,
			"search":    criteria.Search,
			"furnished": criteria.Furnished,
		}
	}

	query := `
		INSERT INTO browse_logs (criteria, sort_key, result_count, response_time_ms)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, crit, string(sortKey), resultCount, responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log browse: %w", err)
	}
	return nil
}
