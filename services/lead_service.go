package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/greentable/site-backend/models"
	"github.com/greentable/site-backend/repositories"
)

type LeadInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	BirthDate string `json:"birth_date" validate:"required"`
}

type LeadService interface {
	// CreateLead validates and stores one captured contact. All four fields
	// are required; the phone number is stored in display format.
	CreateLead(ctx context.Context, input LeadInput) (*models.Lead, error)
	// ListLeads returns all captured leads, newest first. Legacy captures
	// from the content table are merged in read-only.
	ListLeads(ctx context.Context) ([]models.Lead, error)
}

type leadService struct {
	leadRepo    repositories.LeadRepository
	contentRepo repositories.SiteContentRepository
	validate    *validator.Validate
}

func NewLeadService(leadRepo repositories.LeadRepository, contentRepo repositories.SiteContentRepository) LeadService {
	return &leadService{
		leadRepo:    leadRepo,
		contentRepo: contentRepo,
		validate:    validator.New(),
	}
}

func (s *leadService) CreateLead(ctx context.Context, input LeadInput) (*models.Lead, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.BirthDate = strings.TrimSpace(input.BirthDate)

	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Tag() == "email" {
					return nil, ErrLeadInvalidEmail
				}
			}
			return nil, ErrLeadFieldsRequired
		}
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	lead := &models.Lead{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     FormatPhone(input.Phone),
		BirthDate: input.BirthDate,
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to store lead: %w", err)
	}
	return lead, nil
}

// legacyLeadPayload is the JSON shape the old capture path wrote into the
// content table (type "client").
type legacyLeadPayload struct {
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	Telefone       string `json:"telefone"`
	DataNascimento string `json:"data_nascimento"`
}

func (s *leadService) ListLeads(ctx context.Context) ([]models.Lead, error) {
	leads, err := s.leadRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	legacyRows, err := s.contentRepo.ListByType(ctx, repositories.ContentTypeClient)
	if err != nil {
		return nil, fmt.Errorf("failed to list legacy leads: %w", err)
	}
	for _, row := range legacyRows {
		if row.Content == nil {
			continue
		}
		var payload legacyLeadPayload
		if jsonErr := json.Unmarshal([]byte(*row.Content), &payload); jsonErr != nil {
			// Malformed legacy rows are skipped, not fatal.
			continue
		}
		leads = append(leads, models.Lead{
			ID:        row.ID,
			Name:      payload.Nome,
			Email:     payload.Email,
			Phone:     payload.Telefone,
			BirthDate: payload.DataNascimento,
			CreatedAt: row.CreatedAt,
			Legacy:    true,
		})
	}

	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	return leads, nil
}

// FormatPhone applies the live input mask used on the capture form: strip
// everything but digits, then rebuild "(AA) NNNNN-NNNN". Partial input gets a
// partial mask; two digits yield "(AA)" with no trailing dash.
func FormatPhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) > 11 {
		d = d[:11]
	}

	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d + ")"
	}

	rest := d[2:]
	if len(rest) <= 4 {
		return "(" + d[:2] + ") " + rest
	}
	return "(" + d[:2] + ") " + rest[:len(rest)-4] + "-" + rest[len(rest)-4:]
}
