package service

import (
	"context"
	"time"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/domain"
)

// loadBook resolves the calendar a calculation over defs needs. Every date it
// can produce lies within the summed offsets of the goal or a stored date.
func loadBook(ctx context.Context, src calendar.Source, calendarID string, defs []domain.StepDefinition, goal time.Time, instances []*domain.StepInstance) (*calendar.Book, error) {
	span := 0
	for _, d := range defs {
		if d.OffsetDays < 0 {
			span -= d.OffsetDays
		} else {
			span += d.OffsetDays
		}
	}
	anchors := []time.Time{goal}
	for _, inst := range instances {
		if inst.DueDate != nil {
			anchors = append(anchors, *inst.DueDate)
		}
	}
	from, to := calendar.Window(span, anchors...)
	cal, err := calendar.Load(ctx, src, calendarID, from, to)
	if err != nil {
		return nil, err
	}
	return calendar.NewBook(cal), nil
}

func instancesByDefinition(instances []*domain.StepInstance) map[string]*domain.StepInstance {
	out := make(map[string]*domain.StepInstance, len(instances))
	for _, inst := range instances {
		out[inst.DefinitionID] = inst
	}
	return out
}
