package domain

import "time"

type Template struct {
	ID          string
	Name        string
	Version     int
	Status      TemplateStatus
	Description string
	Steps       []StepDefinition
	CreatedAt   time.Time
}

// Case is a running instance of a template working toward a goal date.
type Case struct {
	ID         string
	TemplateID string
	Title      string
	GoalDate   time.Time
	CalendarID string
	// Version is bumped on every schedule write; writers compare it to detect
	// a concurrent replan.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Calendar struct {
	ID   string
	Name string
}

type Holiday struct {
	CalendarID string
	Date       time.Time
	Name       string
}
