package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/greentable/site-backend/models"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	// List returns captured leads, newest first.
	List(ctx context.Context) ([]models.Lead, error)
}

type postgresLeadRepository struct {
	db *sql.DB
}

func NewPostgresLeadRepository(db *sql.DB) LeadRepository {
	return &postgresLeadRepository{db: db}
}

func (r *postgresLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (name, email, phone, birth_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		lead.Name, lead.Email, lead.Phone, lead.BirthDate,
	).Scan(&lead.ID, &lead.CreatedAt)
}

func (r *postgresLeadRepository) List(ctx context.Context) ([]models.Lead, error) {
	query := `
		SELECT id, name, email, phone, birth_date, created_at
		FROM leads
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]models.Lead, 0)
	for rows.Next() {
		var l models.Lead
		if scanErr := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.BirthDate, &l.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		leads = append(leads, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return leads, nil
}
