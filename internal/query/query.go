// Package query filters and aggregates part records for the dashboard.
package query

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/part-monitoring/internal/model"
	"github.com/you-humble/part-monitoring/internal/wear"
)

// Filter derives the wear of every part once and keeps those matching f.
// Order of parts is preserved. An empty status set matches nothing.
func Filter(parts []model.Part, f model.PartsFilter, now time.Time, policy wear.Policy) []model.PartReport {
	res := make([]model.PartReport, 0, len(parts))
	if len(f.Statuses) == 0 {
		return res
	}

	statuses := lo.Keyify(f.Statuses)

	for _, p := range parts {
		if !matches(f.Machine, p.MachineName) ||
			!matches(f.Material, p.Material) ||
			!matches(f.Category, string(p.Category)) {
			continue
		}

		w := wear.Derive(p, now, policy)
		if _, ok := statuses[w.Status]; !ok {
			continue
		}

		res = append(res, model.PartReport{Part: p, Wear: w})
	}

	return res
}

// Summarize counts reports per status and per category. Every known status
// and category is present in the result.
func Summarize(reports []model.PartReport) model.Summary {
	s := model.Summary{
		Total:          len(reports),
		StatusCounts:   make(map[model.Status]int, len(model.Statuses())),
		CategoryCounts: make(map[model.Category]int, len(model.Categories())),
	}

	for _, st := range model.Statuses() {
		s.StatusCounts[st] = 0
	}
	for _, c := range model.Categories() {
		s.CategoryCounts[c] = 0
	}

	for _, r := range reports {
		s.StatusCounts[r.Wear.Status]++
		s.CategoryCounts[r.Part.Category]++
	}

	return s
}

// Options lists the distinct values of every scalar filter, sorted and
// prefixed with model.FilterAll.
func Options(parts []model.Part) model.FilterOptions {
	return model.FilterOptions{
		Machines:   distinct(parts, func(p model.Part) string { return p.MachineName }),
		Materials:  distinct(parts, func(p model.Part) string { return p.Material }),
		Categories: distinct(parts, func(p model.Part) string { return string(p.Category) }),
	}
}

func distinct(parts []model.Part, field func(model.Part) string) []string {
	values := lo.Uniq(lo.Map(parts, func(p model.Part, _ int) string { return field(p) }))
	slices.Sort(values)

	return append([]string{model.FilterAll}, values...)
}

func matches(want, got string) bool {
	return want == "" || want == model.FilterAll || want == got
}
