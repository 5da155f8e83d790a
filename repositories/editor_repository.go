package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/greentable/site-backend/models"
)

var ErrEditorNotFound = errors.New("editor not found")

type EditorRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Editor, error)
	GetByID(ctx context.Context, id int) (*models.Editor, error)
}

type postgresEditorRepository struct {
	db *sql.DB
}

func NewPostgresEditorRepository(db *sql.DB) EditorRepository {
	return &postgresEditorRepository{db: db}
}

func (r *postgresEditorRepository) GetByEmail(ctx context.Context, email string) (*models.Editor, error) {
	query := `
		SELECT id, name, email, role, password_hash, created_at
		FROM editors
		WHERE email = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresEditorRepository) GetByID(ctx context.Context, id int) (*models.Editor, error) {
	query := `
		SELECT id, name, email, role, password_hash, created_at
		FROM editors
		WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresEditorRepository) scanOne(row *sql.Row) (*models.Editor, error) {
	e := &models.Editor{}
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.PasswordHash, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEditorNotFound
		}
		return nil, err
	}
	return e, nil
}
