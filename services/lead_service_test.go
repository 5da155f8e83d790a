package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greentable/site-backend/models"
	"github.com/greentable/site-backend/repositories"
)

type fakeLeadRepo struct {
	leads  []models.Lead
	nextID int
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{nextID: 1}
}

func (f *fakeLeadRepo) Create(_ context.Context, lead *models.Lead) error {
	lead.ID = f.nextID
	lead.CreatedAt = time.Now()
	f.nextID++
	f.leads = append(f.leads, *lead)
	return nil
}

func (f *fakeLeadRepo) List(_ context.Context) ([]models.Lead, error) {
	// Newest first, like the SQL ordering.
	out := make([]models.Lead, len(f.leads))
	for i, l := range f.leads {
		out[len(f.leads)-1-i] = l
	}
	return out, nil
}

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"67999998888", "(67) 99999-8888"},
		{"", ""},
		{"67", "(67)"},
		{"6", "(6)"},
		{"679", "(67) 9"},
		{"679999", "(67) 9999"},
		{"6799998", "(67) 9-9998"},
		{"1199998888", "(11) 9999-8888"},
		{"(67) 99999-8888", "(67) 99999-8888"},
		{"67 9 9999 8888", "(67) 99999-8888"},
		{"abc", ""},
		{"679999988889999", "(67) 99999-8888"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPhone(tc.in), "input %q", tc.in)
	}
}

func TestCreateLeadStoresOneRecord(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	svc := NewLeadService(leadRepo, newFakeContentRepo())

	lead, err := svc.CreateLead(context.Background(), LeadInput{
		Name:      "Maria Souza",
		Email:     "maria@example.com",
		Phone:     "67999998888",
		BirthDate: "1990-05-12",
	})
	require.NoError(t, err)
	require.Len(t, leadRepo.leads, 1)

	assert.Equal(t, "Maria Souza", lead.Name)
	assert.Equal(t, "maria@example.com", lead.Email)
	assert.Equal(t, "(67) 99999-8888", lead.Phone, "phone is stored in display format")
	assert.Equal(t, "1990-05-12", lead.BirthDate)
	assert.False(t, lead.CreatedAt.IsZero(), "creation timestamp is server-assigned")
}

func TestCreateLeadRequiresAllFields(t *testing.T) {
	svc := NewLeadService(newFakeLeadRepo(), newFakeContentRepo())
	ctx := context.Background()

	complete := LeadInput{
		Name:      "Maria Souza",
		Email:     "maria@example.com",
		Phone:     "67999998888",
		BirthDate: "1990-05-12",
	}

	for _, blank := range []func(*LeadInput){
		func(in *LeadInput) { in.Name = "" },
		func(in *LeadInput) { in.Email = "   " },
		func(in *LeadInput) { in.Phone = "" },
		func(in *LeadInput) { in.BirthDate = "" },
	} {
		input := complete
		blank(&input)
		_, err := svc.CreateLead(ctx, input)
		assert.ErrorIs(t, err, ErrLeadFieldsRequired)
	}
}

func TestCreateLeadRejectsBadEmail(t *testing.T) {
	svc := NewLeadService(newFakeLeadRepo(), newFakeContentRepo())

	_, err := svc.CreateLead(context.Background(), LeadInput{
		Name:      "Maria Souza",
		Email:     "not-an-email",
		Phone:     "67999998888",
		BirthDate: "1990-05-12",
	})
	assert.ErrorIs(t, err, ErrLeadInvalidEmail)
}

func TestListLeadsMergesLegacyCaptures(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	contentRepo := newFakeContentRepo()
	svc := NewLeadService(leadRepo, contentRepo)
	ctx := context.Background()

	_, err := svc.CreateLead(ctx, LeadInput{
		Name:      "Maria Souza",
		Email:     "maria@example.com",
		Phone:     "67999998888",
		BirthDate: "1990-05-12",
	})
	require.NoError(t, err)

	legacy := `{"nome":"João Lima","email":"joao@example.com","telefone":"(11) 9999-8888","data_nascimento":"1985-01-30"}`
	_, err = contentRepo.Insert(ctx, repositories.ContentTypeClient, strPtr("João Lima"), &legacy)
	require.NoError(t, err)

	// Malformed legacy rows are skipped rather than failing the listing.
	broken := "{not json"
	_, err = contentRepo.Insert(ctx, repositories.ContentTypeClient, nil, &broken)
	require.NoError(t, err)

	leads, err := svc.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	var legacyLead *models.Lead
	for i := range leads {
		if leads[i].Legacy {
			legacyLead = &leads[i]
		}
	}
	require.NotNil(t, legacyLead, "legacy capture must appear in the listing")
	assert.Equal(t, "João Lima", legacyLead.Name)
	assert.Equal(t, "(11) 9999-8888", legacyLead.Phone)
	assert.Equal(t, "1985-01-30", legacyLead.BirthDate)
}
