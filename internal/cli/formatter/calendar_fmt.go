package formatter

import (
	"strconv"

	"github.com/alexanderramin/casetrack/internal/domain"
)

// CalendarRow is one line of the calendar list.
type CalendarRow struct {
	Calendar     domain.Calendar
	HolidayCount int
	IsDefault    bool
}

func FormatCalendarList(rows []CalendarRow) string {
	headers := []string{"ID", "NAME", "HOLIDAYS", ""}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		def := ""
		if r.IsDefault {
			def = StyleGreen.Render("default")
		}
		out = append(out, []string{
			Bold(r.Calendar.ID),
			r.Calendar.Name,
			strconv.Itoa(r.HolidayCount),
			def,
		})
	}
	return RenderBox("Calendars", RenderTable(headers, out))
}
