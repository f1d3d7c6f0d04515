package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/casetrack/internal/domain"
)

// FormatTemplateList renders stored templates inside a bordered box.
func FormatTemplateList(templates []*domain.Template) string {
	headers := []string{"NAME", "VERSION", "STATUS", "ID"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{
			Bold(t.Name),
			Dim("v" + strconv.Itoa(t.Version)),
			StatusBadge(t.Status),
			Dim(t.ID),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplateShow renders a template and its step definitions.
func FormatTemplateShow(t *domain.Template) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s\n", StyleBold.Render(t.Name), Dim("v"+strconv.Itoa(t.Version)), StatusBadge(t.Status))
	if t.Description != "" {
		fmt.Fprintf(&b, "%s\n", Dim(t.Description))
	}
	fmt.Fprintf(&b, "\n  %s  %s\n\n", StyleDim.Render("ID"), Dim(t.ID))

	b.WriteString(Header("Steps"))
	b.WriteString("\n")
	headers := []string{"SEQ", "ID", "TITLE", "BASIS", "OFFSET", "DEPENDS ON"}
	rows := make([][]string, 0, len(t.Steps))
	for _, s := range t.Steps {
		deps := Dim("—")
		if len(s.DependsOn) > 0 {
			deps = strings.Join(s.DependsOn, ", ")
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Sequence),
			Bold(s.ID),
			s.Title,
			BasisBadge(s.Basis),
			fmt.Sprintf("%+d", s.OffsetDays),
			deps,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return RenderBox("", b.String())
}

// FormatValidationErrors lists template problems one per line.
func FormatValidationErrors(path string, errs []error) string {
	if len(errs) == 0 {
		return StyleGreen.Render("✔ ") + path + Dim(" is valid") + "\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s\n", StyleRed.Render("✘ "), path, Dim(fmt.Sprintf("(%d problems)", len(errs))))
	for _, e := range errs {
		fmt.Fprintf(&b, "  - %s\n", e.Error())
	}
	return b.String()
}
