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

type fakeTournamentRepo struct {
	tournaments []models.Tournament
	nextID      int
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{nextID: 1}
}

func (f *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	t.ID = f.nextID
	t.CreatedAt = time.Now()
	f.nextID++
	f.tournaments = append(f.tournaments, *t)
	return nil
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	for _, t := range f.tournaments {
		if t.ID == id {
			out := t
			return &out, nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (f *fakeTournamentRepo) List(_ context.Context, _ repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return append([]models.Tournament{}, f.tournaments...), nil
}

func (f *fakeTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	for i := range f.tournaments {
		if f.tournaments[i].ID == t.ID {
			f.tournaments[i] = *t
			return nil
		}
	}
	return repositories.ErrTournamentNotFound
}

func (f *fakeTournamentRepo) Delete(_ context.Context, id int) error {
	for i := range f.tournaments {
		if f.tournaments[i].ID == id {
			f.tournaments = append(f.tournaments[:i], f.tournaments[i+1:]...)
			return nil
		}
	}
	return repositories.ErrTournamentNotFound
}

func seedTournaments(days ...models.Weekday) []models.Tournament {
	tournaments := make([]models.Tournament, 0, len(days))
	for i, d := range days {
		tournaments = append(tournaments, models.Tournament{
			ID:        i + 1,
			Name:      "Torneio",
			DayOfWeek: d,
			Players:   50,
		})
	}
	return tournaments
}

func TestPartitionByDayCompleteness(t *testing.T) {
	tournaments := seedTournaments(
		models.Sunday, models.Monday, models.Monday, models.Friday,
		models.Saturday, models.Saturday, models.Saturday,
	)

	schedule := PartitionByDay(tournaments, models.Monday)
	require.Len(t, schedule, 7)

	total := 0
	for _, day := range schedule {
		total += len(day.Tournaments)
		for _, tour := range day.Tournaments {
			assert.Equal(t, day.Day, tour.DayOfWeek, "record must land in its own bucket")
		}
	}
	assert.Equal(t, len(tournaments), total, "bucket sizes must sum to the record count")
	assert.True(t, schedule[models.Monday].IsToday)
	assert.False(t, schedule[models.Sunday].IsToday)
}

func TestPartitionByDayCoalescesOutOfRange(t *testing.T) {
	tournaments := seedTournaments(models.Monday)
	tournaments = append(tournaments, models.Tournament{ID: 99, Name: "Legado", DayOfWeek: models.Weekday(9)})

	schedule := PartitionByDay(tournaments, models.Sunday)
	assert.Len(t, schedule[models.Sunday].Tournaments, 1, "out-of-range day falls into Sunday")
	assert.Len(t, schedule[models.Monday].Tournaments, 1)
}

func TestScheduleAndToday(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := NewTournamentService(repo)
	ctx := context.Background()

	// 2026-09-02 is a Wednesday.
	now := time.Date(2026, time.September, 2, 15, 0, 0, 0, time.Local)

	for _, day := range []models.Weekday{models.Wednesday, models.Wednesday, models.Friday} {
		_, err := svc.CreateTournament(ctx, TournamentInput{
			Name:      "Texas Hold'em " + day.Name(),
			Time:      "19:30",
			DayOfWeek: day,
			Players:   80,
		})
		require.NoError(t, err)
	}

	schedule, err := svc.Schedule(ctx, now)
	require.NoError(t, err)
	assert.Len(t, schedule[models.Wednesday].Tournaments, 2)
	assert.Equal(t, "Quarta-feira", schedule[models.Wednesday].Name)

	today, highlight, err := svc.Today(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, models.Wednesday, today.Day)
	require.NotNil(t, highlight)
	assert.Equal(t, "Texas Hold'em Quarta-feira", highlight.Name)
}

func TestTodayWithoutTournaments(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo())

	today, highlight, err := svc.Today(context.Background(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, today)
	assert.Nil(t, highlight)
}

func TestCreateTournamentValidation(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo())
	ctx := context.Background()

	cases := []struct {
		name    string
		input   TournamentInput
		wantErr error
	}{
		{"empty name", TournamentInput{Name: "  ", DayOfWeek: models.Monday, Players: 10}, ErrTournamentNameReq},
		{"day too high", TournamentInput{Name: "X", DayOfWeek: 7, Players: 10}, ErrTournamentInvalidDay},
		{"negative day", TournamentInput{Name: "X", DayOfWeek: -1, Players: 10}, ErrTournamentInvalidDay},
		{"zero capacity", TournamentInput{Name: "X", DayOfWeek: models.Monday, Players: 0}, ErrTournamentInvalidCap},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTournament(ctx, tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdateAndDeleteMissingTournament(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo())
	ctx := context.Background()

	_, err := svc.UpdateTournament(ctx, 42, TournamentInput{Name: "X", DayOfWeek: models.Monday, Players: 10})
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	assert.ErrorIs(t, svc.DeleteTournament(ctx, 42), ErrTournamentNotFound)
}

func TestActiveDay(t *testing.T) {
	// 2026-08-30 is a Sunday.
	sunday := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.Local)
	assert.Equal(t, models.Sunday, ActiveDay(sunday))
	assert.Equal(t, models.Thursday, ActiveDay(sunday.AddDate(0, 0, 4)))
}

func TestUntilNextMidnight(t *testing.T) {
	now := time.Date(2026, time.September, 1, 23, 0, 0, 0, time.Local)
	assert.Equal(t, time.Hour, UntilNextMidnight(now))

	justAfter := time.Date(2026, time.September, 1, 0, 0, 1, 0, time.Local)
	remaining := UntilNextMidnight(justAfter)
	assert.Equal(t, 24*time.Hour-time.Second, remaining)

	// Crossing the boundary lands on the next day's midnight.
	next := justAfter.Add(remaining)
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 2, next.Day())
}
