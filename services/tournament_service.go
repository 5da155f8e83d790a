package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/greentable/site-backend/models"
	"github.com/greentable/site-backend/repositories"
)

// DaySchedule is one bucket of the weekly partition.
type DaySchedule struct {
	Day         models.Weekday      `json:"day"`
	Name        string              `json:"name"`
	IsToday     bool                `json:"is_today"`
	Tournaments []models.Tournament `json:"tournaments"`
}

type TournamentInput struct {
	Name        string         `json:"name"`
	Time        string         `json:"time"`
	DayOfWeek   models.Weekday `json:"day_of_week"`
	BuyIn       float64        `json:"buy_in"`
	Prize       float64        `json:"prize"`
	Players     int            `json:"players"`
	Rebuy       bool           `json:"rebuy"`
	Description string         `json:"description"`
	Link        *string        `json:"link"`
}

type TournamentService interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	// Schedule partitions the full tournament list into seven weekday
	// buckets. Every record lands in exactly one bucket; records carrying an
	// out-of-range day are coalesced into Sunday, matching the stored data's
	// historical behavior.
	Schedule(ctx context.Context, now time.Time) ([]DaySchedule, error)
	// Today returns the bucket for the current local day plus its first
	// tournament as the highlight, which may be nil.
	Today(ctx context.Context, now time.Time) (*DaySchedule, *models.Tournament, error)

	CreateTournament(ctx context.Context, input TournamentInput) (*models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo}
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) Schedule(ctx context.Context, now time.Time) ([]DaySchedule, error) {
	tournaments, err := s.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	return PartitionByDay(tournaments, ActiveDay(now)), nil
}

func (s *tournamentService) Today(ctx context.Context, now time.Time) (*DaySchedule, *models.Tournament, error) {
	schedule, err := s.Schedule(ctx, now)
	if err != nil {
		return nil, nil, err
	}

	today := &schedule[ActiveDay(now)]
	var highlight *models.Tournament
	if len(today.Tournaments) > 0 {
		highlight = &today.Tournaments[0]
	}
	return today, highlight, nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, input TournamentInput) (*models.Tournament, error) {
	t, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return t, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error) {
	t, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	t.ID = id

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		default:
			return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
		}
	}
	return t, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return nil
}

func (s *tournamentService) validate(input TournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameReq
	}
	if !input.DayOfWeek.Valid() {
		return nil, ErrTournamentInvalidDay
	}
	if input.Players <= 0 {
		return nil, ErrTournamentInvalidCap
	}

	return &models.Tournament{
		Name:        name,
		Time:        strings.TrimSpace(input.Time),
		DayOfWeek:   input.DayOfWeek,
		BuyIn:       input.BuyIn,
		Prize:       input.Prize,
		Players:     input.Players,
		Rebuy:       input.Rebuy,
		Description: strings.TrimSpace(input.Description),
		Link:        input.Link,
	}, nil
}

// ActiveDay derives the schedule's current day from a timestamp.
func ActiveDay(now time.Time) models.Weekday {
	return models.Weekday(now.Weekday())
}

// PartitionByDay splits tournaments into the seven weekday buckets.
// The bucket sizes always sum to len(tournaments).
func PartitionByDay(tournaments []models.Tournament, today models.Weekday) []DaySchedule {
	schedule := make([]DaySchedule, 7)
	for d := models.Sunday; d <= models.Saturday; d++ {
		schedule[d] = DaySchedule{
			Day:         d,
			Name:        d.Name(),
			IsToday:     d == today,
			Tournaments: make([]models.Tournament, 0),
		}
	}

	for _, t := range tournaments {
		day := t.DayOfWeek
		if !day.Valid() {
			day = models.Sunday
		}
		schedule[day].Tournaments = append(schedule[day].Tournaments, t)
	}
	return schedule
}

// UntilNextMidnight returns the time remaining before the next local midnight
// relative to now. The day-change notifier re-arms with this after each fire;
// nothing is reloaded, the active day is simply recomputed.
func UntilNextMidnight(now time.Time) time.Duration {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now)
}
