package converter

import (
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/you-humble/part-monitoring/internal/model"
	partsv1 "github.com/you-humble/part-monitoring/pkg/api/parts/v1"
)

const dateReason = "must be a date in YYYY-MM-DD format"

// PartFromAPI converts a request body into a model part. Only the date can
// fail here; the remaining rules are enforced by the part service.
func PartFromAPI(p partsv1.Part) (model.Part, error) {
	out := model.Part{
		PartNumber:       p.PartNumber,
		PartCode:         p.PartCode,
		MachineName:      p.MachineName,
		Material:         p.Material,
		RecommendedUsage: p.RecommendedUsage,
		Category:         model.Category(p.Category),
	}

	if d := strings.TrimSpace(p.InstallDate); d != "" {
		installDate, err := model.ParseDate(d)
		if err != nil {
			return model.Part{}, model.NewValidationError(0, strings.TrimSpace(p.PartNumber), model.FieldError{
				Field:  "install_date",
				Reason: dateReason,
			})
		}
		out.InstallDate = installDate
	}

	return out, nil
}

func PartToAPI(p model.Part) partsv1.Part {
	return partsv1.Part{
		PartNumber:       p.PartNumber,
		PartCode:         p.PartCode,
		MachineName:      p.MachineName,
		Material:         p.Material,
		InstallDate:      model.FormatDate(p.InstallDate),
		RecommendedUsage: p.RecommendedUsage,
		Category:         string(p.Category),
	}
}

func ReportToAPI(r model.PartReport) partsv1.PartReport {
	return partsv1.PartReport{
		Part:            PartToAPI(r.Part),
		ElapsedHours:    r.Wear.ElapsedHours,
		RemainingHours:  r.Wear.RemainingHours,
		ReplacementDate: model.FormatDate(r.Wear.ReplacementDate),
		Status:          string(r.Wear.Status),
	}
}

func ReportsToAPI(reports []model.PartReport) []partsv1.PartReport {
	return lo.Map(reports, func(r model.PartReport, _ int) partsv1.PartReport {
		return ReportToAPI(r)
	})
}

func DashboardToAPI(d *model.Dashboard) partsv1.DashboardResponse {
	return partsv1.DashboardResponse{
		Parts: ReportsToAPI(d.Parts),
		Summary: partsv1.Summary{
			Total: d.Summary.Total,
			StatusCounts: lo.MapKeys(d.Summary.StatusCounts, func(_ int, s model.Status) string {
				return string(s)
			}),
			CategoryCounts: lo.MapKeys(d.Summary.CategoryCounts, func(_ int, c model.Category) string {
				return string(c)
			}),
		},
		Options: partsv1.FilterOptions{
			Machines:   d.Options.Machines,
			Materials:  d.Options.Materials,
			Categories: d.Options.Categories,
		},
	}
}

func ImportResultToAPI(r *model.ImportResult) partsv1.ImportResponse {
	keys := r.DuplicateKeys
	if keys == nil {
		keys = []string{}
	}

	return partsv1.ImportResponse{
		Mode:          string(r.Mode),
		Received:      r.Received,
		Imported:      r.Imported,
		Duplicates:    r.Duplicates,
		DuplicateKeys: keys,
	}
}

// FilterFromQuery reads dashboard filters from query parameters. A missing
// status parameter selects every status, a present but empty one selects
// none. Statuses may repeat or be comma separated.
func FilterFromQuery(q url.Values) (model.PartsFilter, error) {
	f := model.NewPartsFilter()

	if raw, ok := q["status"]; ok {
		statuses := make([]model.Status, 0, len(raw))
		var bad []string
		for _, v := range raw {
			for _, s := range strings.Split(v, ",") {
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
				st := model.Status(s)
				if !st.Valid() {
					bad = append(bad, s)
					continue
				}
				statuses = append(statuses, st)
			}
		}
		if len(bad) > 0 {
			return model.PartsFilter{}, model.NewValidationError(0, "", model.FieldError{
				Field:  "status",
				Reason: "unknown status " + strings.Join(bad, ", "),
			})
		}
		f.Statuses = lo.Uniq(statuses)
	}

	f.Machine = scalar(q, "machine")
	f.Material = scalar(q, "material")
	f.Category = scalar(q, "category")

	return f, nil
}

func scalar(q url.Values, key string) string {
	if v := strings.TrimSpace(q.Get(key)); v != "" {
		return v
	}
	return model.FilterAll
}
