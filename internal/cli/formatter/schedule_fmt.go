package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/scheduler"
)

// FormatCaseList renders cases with their goal and calendar.
func FormatCaseList(cases []*domain.Case) string {
	headers := []string{"ID", "TITLE", "GOAL", "CALENDAR", "VERSION"}
	rows := make([][]string, 0, len(cases))
	for _, c := range cases {
		rows = append(rows, []string{
			Dim(c.ID),
			Bold(c.Title),
			FormatDate(&c.GoalDate),
			c.CalendarID,
			fmt.Sprintf("%d", c.Version),
		})
	}
	return RenderBox("Cases", RenderTable(headers, rows))
}

// FormatSchedule renders a case's stored dates in plan order, marking locked
// and critical steps.
func FormatSchedule(c *domain.Case, tmpl *domain.Template, instances []*domain.StepInstance, plan *scheduler.Plan) string {
	var b strings.Builder
	writeCaseHeading(&b, c, tmpl)

	byDef := make(map[string]*domain.StepInstance, len(instances))
	for _, inst := range instances {
		byDef[inst.DefinitionID] = inst
	}

	headers := []string{"STEP", "TITLE", "DUE", "LOCK", "CRITICAL"}
	rows := make([][]string, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		due := FormatDate(nil)
		locked := ""
		if inst, ok := byDef[e.DefinitionID]; ok {
			due = FormatDate(inst.DueDate)
			if inst.Locked {
				locked = lockBadge()
			}
		}
		rows = append(rows, []string{
			Bold(e.DefinitionID),
			stepTitle(tmpl, e.DefinitionID),
			due,
			locked,
			criticalMark(plan, e.DefinitionID),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	writeCriticalPath(&b, plan)
	return RenderBox("Schedule", b.String())
}

// FormatReplan renders a replan preview or its applied result.
func FormatReplan(c *domain.Case, tmpl *domain.Template, plan *scheduler.Plan, diffs []domain.StepDiff, applied int, preview bool) string {
	var b strings.Builder
	writeCaseHeading(&b, c, tmpl)
	fmt.Fprintf(&b, "  %s  %s\n\n", StyleDim.Render("NEW GOAL"), plan.GoalDate.Format(dateLayout))

	headers := []string{"STEP", "TITLE", "OLD", "NEW", "SHIFT", "LOCK", "CRITICAL"}
	rows := make([][]string, 0, len(diffs))
	for _, d := range diffs {
		locked := ""
		if d.IsLocked {
			locked = lockBadge()
		}
		rows = append(rows, []string{
			Bold(d.DefinitionID),
			stepTitle(tmpl, d.DefinitionID),
			FormatDate(d.OldDueDate),
			d.NewDueDate.Format(dateLayout),
			Shift(d.OldDueDate, d.NewDueDate),
			locked,
			criticalMark(plan, d.DefinitionID),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	writeCriticalPath(&b, plan)

	changed := len(scheduler.Applicable(diffs))
	b.WriteString("\n")
	switch {
	case preview && changed == 0:
		b.WriteString(Dim("No date changes."))
	case preview:
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d step(s) would move.", changed)) + Dim(" Re-run with --apply to save."))
	default:
		b.WriteString(StyleGreen.Render(fmt.Sprintf("Applied %d change(s).", applied)))
	}

	title := "Replan"
	if preview {
		title = "Replan preview"
	}
	return RenderBox(title, b.String())
}

func lockBadge() string {
	return StyleYellow.Render("locked")
}

func writeCaseHeading(b *strings.Builder, c *domain.Case, tmpl *domain.Template) {
	fmt.Fprintf(b, "%s  %s\n", StyleBold.Render(c.Title), Dim(c.ID))
	if tmpl != nil {
		fmt.Fprintf(b, "  %s  %s v%d\n", StyleDim.Render("TEMPLATE"), tmpl.Name, tmpl.Version)
	}
	fmt.Fprintf(b, "  %s  %s\n", StyleDim.Render("GOAL    "), c.GoalDate.Format(dateLayout))
	fmt.Fprintf(b, "  %s  %s\n", StyleDim.Render("CALENDAR"), c.CalendarID)
}

func writeCriticalPath(b *strings.Builder, plan *scheduler.Plan) {
	if len(plan.CriticalPath) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s %s\n", StyleDim.Render("Critical path:"), StyleRed.Render(strings.Join(plan.CriticalPath, " → ")))
}

func criticalMark(plan *scheduler.Plan, definitionID string) string {
	if plan.IsCritical(definitionID) {
		return StyleRed.Render("●")
	}
	return ""
}

func stepTitle(tmpl *domain.Template, definitionID string) string {
	if tmpl == nil {
		return ""
	}
	for _, s := range tmpl.Steps {
		if s.ID == definitionID {
			return s.Title
		}
	}
	return ""
}
