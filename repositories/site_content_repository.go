package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Content type discriminators used in the site_content table. The table is a
// generic key-value content store: rows are distinguished by type, and title
// acts as the slot/record key within a type.
const (
	ContentTypeSiteImage    = "site_image"
	ContentTypeGalleryImage = "gallery_image"
	ContentTypeClient       = "client" // legacy lead capture rows, read-only
)

var ErrContentNotFound = errors.New("content row not found")

// ContentRow is one row of the site_content table.
type ContentRow struct {
	ID        int
	Type      string
	Title     *string
	Content   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SiteContentRepository interface {
	// Upsert creates or replaces the single row keyed by (type, title).
	Upsert(ctx context.Context, contentType, title string, content *string) (*ContentRow, error)
	GetByTypeAndTitle(ctx context.Context, contentType, title string) (*ContentRow, error)
	ListByType(ctx context.Context, contentType string) ([]ContentRow, error)
	// Insert adds a row without a uniqueness requirement (gallery images).
	Insert(ctx context.Context, contentType string, title, content *string) (*ContentRow, error)
	// ClearContentByValue nulls the content column of every row of the given
	// type whose content equals value. Returns the number of rows cleared.
	ClearContentByValue(ctx context.Context, contentType, value string) (int64, error)
	// DeleteByTypeAndContent removes rows of the given type whose content
	// equals value. Returns the number of rows deleted.
	DeleteByTypeAndContent(ctx context.Context, contentType, value string) (int64, error)
}

type postgresSiteContentRepository struct {
	db *sql.DB
}

func NewPostgresSiteContentRepository(db *sql.DB) SiteContentRepository {
	return &postgresSiteContentRepository{db: db}
}

func (r *postgresSiteContentRepository) Upsert(ctx context.Context, contentType, title string, content *string) (*ContentRow, error) {
	query := `
		INSERT INTO site_content (type, title, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (type, title) DO UPDATE
			SET content = EXCLUDED.content, updated_at = now()
		RETURNING id, type, title, content, created_at, updated_at`

	row := &ContentRow{}
	err := r.db.QueryRowContext(ctx, query, contentType, title, content).Scan(
		&row.ID, &row.Type, &row.Title, &row.Content, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *postgresSiteContentRepository) GetByTypeAndTitle(ctx context.Context, contentType, title string) (*ContentRow, error) {
	query := `
		SELECT id, type, title, content, created_at, updated_at
		FROM site_content
		WHERE type = $1 AND title = $2`

	row := &ContentRow{}
	err := r.db.QueryRowContext(ctx, query, contentType, title).Scan(
		&row.ID, &row.Type, &row.Title, &row.Content, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return row, nil
}

func (r *postgresSiteContentRepository) ListByType(ctx context.Context, contentType string) ([]ContentRow, error) {
	query := `
		SELECT id, type, title, content, created_at, updated_at
		FROM site_content
		WHERE type = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, contentType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ContentRow, 0)
	for rows.Next() {
		var row ContentRow
		if scanErr := rows.Scan(&row.ID, &row.Type, &row.Title, &row.Content, &row.CreatedAt, &row.UpdatedAt); scanErr != nil {
			return nil, scanErr
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresSiteContentRepository) Insert(ctx context.Context, contentType string, title, content *string) (*ContentRow, error) {
	query := `
		INSERT INTO site_content (type, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, type, title, content, created_at, updated_at`

	row := &ContentRow{}
	err := r.db.QueryRowContext(ctx, query, contentType, title, content).Scan(
		&row.ID, &row.Type, &row.Title, &row.Content, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *postgresSiteContentRepository) ClearContentByValue(ctx context.Context, contentType, value string) (int64, error) {
	query := `
		UPDATE site_content
		SET content = NULL, updated_at = now()
		WHERE type = $1 AND content = $2`

	result, err := r.db.ExecContext(ctx, query, contentType, value)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresSiteContentRepository) DeleteByTypeAndContent(ctx context.Context, contentType, value string) (int64, error) {
	query := `DELETE FROM site_content WHERE type = $1 AND content = $2`

	result, err := r.db.ExecContext(ctx, query, contentType, value)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
