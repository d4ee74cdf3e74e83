package converter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/you-humble/part-monitoring/internal/model"
)

const utf8BOM = "\ufeff"

// PartColumns is the import header in canonical order.
var PartColumns = []string{
	"part_number",
	"part_code",
	"machine_name",
	"material",
	"install_date",
	"recommended_usage",
	"category",
}

// ExportColumns extends PartColumns with the derived wear.
var ExportColumns = append(slices.Clone(PartColumns), "replacement_date", "remaining_hours", "status")

// PartsFromCSV parses an import file. Columns may come in any order and
// extra columns are ignored. A missing column fails with
// *model.SchemaMismatchError; bad cells fail with one *model.ValidationError
// per row, joined.
func PartsFromCSV(r io.Reader) ([]model.Part, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &model.SchemaMismatchError{
				Expected: PartColumns,
				Found:    []string{},
				Missing:  PartColumns,
			}
		}
		var perr *csv.ParseError
		if !errors.As(err, &perr) {
			return nil, fmt.Errorf("read csv header: %w", err)
		}
		return nil, model.NewValidationError(0, "", model.FieldError{Field: "header", Reason: err.Error()})
	}

	index := make(map[string]int, len(header))
	found := make([]string, 0, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		found = append(found, h)
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range PartColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &model.SchemaMismatchError{Expected: PartColumns, Found: found, Missing: missing}
	}

	var (
		parts []model.Part
		errs  []error
		row   int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, fmt.Errorf("read csv: %w", err)
			}
			errs = append(errs, model.NewValidationError(row, "", model.FieldError{Field: "row", Reason: err.Error()}))
			continue
		}
		if blank(rec) {
			continue
		}

		cell := func(col string) string {
			i := index[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		p, err := partFromCells(row, cell)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		parts = append(parts, p)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return parts, nil
}

func partFromCells(row int, cell func(string) string) (model.Part, error) {
	p := model.Part{
		PartNumber:  cell("part_number"),
		PartCode:    cell("part_code"),
		MachineName: cell("machine_name"),
		Material:    cell("material"),
		Category:    model.Category(cell("category")),
	}

	var fields []model.FieldError

	if v := cell("install_date"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			fields = append(fields, model.FieldError{Field: "install_date", Reason: dateReason})
		}
		p.InstallDate = d
	}

	if v := cell("recommended_usage"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields = append(fields, model.FieldError{Field: "recommended_usage", Reason: "must be an integer"})
		}
		p.RecommendedUsage = n
	}

	if len(fields) > 0 {
		return model.Part{}, model.NewValidationError(row, p.PartNumber, fields...)
	}

	return p, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ReportsToCSV writes the export file: the import columns followed by the
// derived wear columns.
func ReportsToCSV(w io.Writer, reports []model.PartReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range reports {
		rec := append(partCells(r.Part),
			model.FormatDate(r.Wear.ReplacementDate),
			strconv.Itoa(r.Wear.RemainingHours),
			string(r.Wear.Status),
		)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write part %q: %w", r.Part.PartNumber, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// TemplateCSV writes an import file holding the template parts.
func TemplateCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(PartColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range model.TemplateParts() {
		if err := cw.Write(partCells(p)); err != nil {
			return fmt.Errorf("write part %q: %w", p.PartNumber, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func partCells(p model.Part) []string {
	return []string{
		p.PartNumber,
		p.PartCode,
		p.MachineName,
		p.Material,
		model.FormatDate(p.InstallDate),
		strconv.Itoa(p.RecommendedUsage),
		string(p.Category),
	}
}
