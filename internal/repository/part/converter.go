package repository

import (
	"errors"
	"fmt"

	"github.com/you-humble/part-monitoring/internal/model"
)

var (
	errMissingField    = errors.New("stored part has an empty required field")
	errBadEntity       = errors.New("stored part has an invalid value")
	errDuplicateEntity = errors.New("stored part number is not unique")
)

func EntityToModel(e PartEntity) (model.Part, error) {
	if e.PartNumber == "" || e.PartCode == "" || e.MachineName == "" || e.Material == "" {
		return model.Part{}, fmt.Errorf("part %q: %w", e.PartNumber, errMissingField)
	}
	if e.RecommendedUsage < 1 {
		return model.Part{}, fmt.Errorf("part %q recommended_usage %d: %w", e.PartNumber, e.RecommendedUsage, errBadEntity)
	}
	if !model.Category(e.Category).Valid() {
		return model.Part{}, fmt.Errorf("part %q category %q: %w", e.PartNumber, e.Category, errBadEntity)
	}

	installDate, err := model.ParseDate(e.InstallDate)
	if err != nil {
		return model.Part{}, fmt.Errorf("part %q install_date: %w", e.PartNumber, err)
	}

	return model.Part{
		PartNumber:       e.PartNumber,
		PartCode:         e.PartCode,
		MachineName:      e.MachineName,
		Material:         e.Material,
		InstallDate:      installDate,
		RecommendedUsage: e.RecommendedUsage,
		Category:         model.Category(e.Category),
	}, nil
}

func EntityFromModel(p model.Part, position int) PartEntity {
	return PartEntity{
		PartNumber:       p.PartNumber,
		PartCode:         p.PartCode,
		MachineName:      p.MachineName,
		Material:         p.Material,
		InstallDate:      model.FormatDate(p.InstallDate),
		RecommendedUsage: p.RecommendedUsage,
		Category:         string(p.Category),
		Position:         position,
	}
}

// EntitiesToModels converts stored records and rejects a set that breaks
// the store invariants: every record complete and part numbers unique.
func EntitiesToModels(ents []PartEntity) ([]model.Part, error) {
	out := make([]model.Part, 0, len(ents))
	seen := make(map[string]struct{}, len(ents))
	for _, e := range ents {
		p, err := EntityToModel(e)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[p.PartNumber]; ok {
			return nil, fmt.Errorf("part %q: %w", p.PartNumber, errDuplicateEntity)
		}
		seen[p.PartNumber] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func EntitiesFromModels(parts []model.Part) []PartEntity {
	out := make([]PartEntity, 0, len(parts))
	for i, p := range parts {
		out = append(out, EntityFromModel(p, i))
	}
	return out
}
