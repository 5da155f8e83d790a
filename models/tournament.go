package models

import "time"

// Weekday mirrors the stored day_of_week column: 0=Sunday through 6=Saturday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekdayNames holds the display names shown on the schedule, indexed by Weekday.
var WeekdayNames = [7]string{
	"Domingo",
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
}

func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d Weekday) Name() string {
	if !d.Valid() {
		return ""
	}
	return WeekdayNames[d]
}

// Tournament is a recurring weekly event. Each record belongs to exactly one
// fixed day of the week; there is no multi-day recurrence.
type Tournament struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Time        string    `json:"time"`
	DayOfWeek   Weekday   `json:"day_of_week"`
	BuyIn       float64   `json:"buy_in"`
	Prize       float64   `json:"prize"`
	Players     int       `json:"players"`
	Rebuy       bool      `json:"rebuy"`
	Description string    `json:"description"`
	Link        *string   `json:"link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
