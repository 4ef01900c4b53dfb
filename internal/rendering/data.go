package rendering

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/freelance-desk/internal/format"
	"github.com/jonathan/freelance-desk/internal/types"
)

// Fixed infrastructure lines added to every budget estimate.
const (
	HostingCost = 500000
	DomainCost  = 200000

	validityDays    = 30
	defaultDuration = "2 - 4 Weeks"
)

// buildData extends the record context with the derived doc, money, dates,
// budget_sections and skills values the layouts use.
func (r *Renderer) buildData(spec DocumentSpec, rc types.RenderContext) map[string]any {
	now := r.now()
	data := rc.Data()

	id := strings.TrimSpace(rc.Project.ProjectID.String())
	if id == "" {
		id = r.newID()
	}

	doc := map[string]any{
		"id":          id,
		"title":       spec.Title,
		"today":       format.LongDate(now),
		"today_short": format.ShortDate(now),
		"valid_until": format.LongDate(now.AddDate(0, 0, validityDays)),
		"year":        now.Year(),
	}
	doc["reference"] = r.references[spec.Kind].Render(map[string]any{"doc": doc})
	data["doc"] = doc

	code := rc.Settings.Currency()
	budget := rc.Project.Budget.Float64()
	data["money"] = map[string]any{
		"budget": format.Money(budget, code),
		"tax":    format.MoneyIn(format.DefaultLocale, 0, code),
		"total":  format.Money(budget+HostingCost+DomainCost, code),
	}

	data["dates"] = map[string]any{
		"start":    format.DocumentDate(rc.Project.StartDate, "TBD"),
		"end":      format.DocumentDate(rc.Project.EndDate, "TBD"),
		"duration": duration(rc.Project.StartDate, rc.Project.EndDate),
	}

	data["budget_sections"] = budgetSections(budget, code)

	skills := make([]any, len(r.catalog.Skills))
	for i, s := range r.catalog.Skills {
		skills[i] = s
	}
	data["skills"] = skills

	return data
}

func budgetSections(budget float64, code string) []any {
	return []any{
		map[string]any{
			"title": "Pengembangan Aplikasi",
			"lines": []any{
				budgetLine("Full Stack Development", "Frontend, Backend, DB", format.Money(budget, code)),
				budgetLine("UI/UX Design", "Mockups & Assets", "Included"),
			},
		},
		map[string]any{
			"title": "Infrastruktur & Deployment",
			"lines": []any{
				budgetLine("Cloud Hosting / VPS", "Per Tahun", format.Money(HostingCost, code)),
				budgetLine("Domain (.com/.id)", "Per Tahun", format.Money(DomainCost, code)),
			},
		},
	}
}

func budgetLine(item, note, cost string) map[string]any {
	return map[string]any{"item": item, "note": note, "cost": cost}
}

// duration estimates the project length in weeks from its dates, falling
// back to the standard estimate when either date is missing or reversed.
func duration(start, end string) string {
	s, okStart := format.ParseDate(start)
	e, okEnd := format.ParseDate(end)
	if !okStart || !okEnd || !e.After(s) {
		return defaultDuration
	}
	weeks := int(math.Ceil(e.Sub(s).Hours() / 24 / 7))
	if weeks == 1 {
		return "1 Week"
	}
	return fmt.Sprintf("%d Weeks", weeks)
}
