package converter

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/part-monitoring/internal/model"
)

// Telegram rejects messages over 4096 characters.
const maxItemsPerSection = 40

var (
	//go:embed templates/replacement_digest.tmpl
	digestFS       embed.FS
	digestTemplate = template.Must(template.ParseFS(digestFS, "templates/replacement_digest.tmpl"))
)

type digestItem struct {
	PartNumber      string
	MachineName     string
	Category        string
	RemainingHours  int
	ReplacementDate string
}

type digestSection struct {
	Total int
	Items []digestItem
	More  int
}

type digest struct {
	Date        string
	MustReplace *digestSection
	Warning     *digestSection
}

// BuildReplacementDigest renders the parts that need attention. It reports
// false when no part is in Warning or MustReplace.
func BuildReplacementDigest(now time.Time, reports []model.PartReport) (string, bool, error) {
	d := digest{
		Date:        model.FormatDate(now),
		MustReplace: section(reports, model.StatusMustReplace),
		Warning:     section(reports, model.StatusWarning),
	}
	if d.MustReplace == nil && d.Warning == nil {
		return "", false, nil
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, d); err != nil {
		return "", false, err
	}

	return buf.String(), true, nil
}

func section(reports []model.PartReport, status model.Status) *digestSection {
	matched := lo.Filter(reports, func(r model.PartReport, _ int) bool {
		return r.Wear.Status == status
	})
	if len(matched) == 0 {
		return nil
	}

	shown := matched
	if len(shown) > maxItemsPerSection {
		shown = shown[:maxItemsPerSection]
	}

	return &digestSection{
		Total: len(matched),
		Items: lo.Map(shown, func(r model.PartReport, _ int) digestItem {
			return digestItem{
				PartNumber:      r.Part.PartNumber,
				MachineName:     r.Part.MachineName,
				Category:        string(r.Part.Category),
				RemainingHours:  r.Wear.RemainingHours,
				ReplacementDate: model.FormatDate(r.Wear.ReplacementDate),
			}
		}),
		More: len(matched) - len(shown),
	}
}
