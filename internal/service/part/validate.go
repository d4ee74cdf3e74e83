package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/you-humble/part-monitoring/internal/model"
)

type partInput struct {
	PartNumber       string    `json:"part_number" validate:"required"`
	PartCode         string    `json:"part_code" validate:"required"`
	MachineName      string    `json:"machine_name" validate:"required"`
	Material         string    `json:"material" validate:"required"`
	InstallDate      time.Time `json:"install_date" validate:"required"`
	RecommendedUsage int       `json:"recommended_usage" validate:"min=1,max=2147483647"`
	Category         string    `json:"category" validate:"required,oneof=Mechanical Electrical Pneumatic"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// normalize trims text fields and drops the time of day of the install date.
func normalize(p model.Part) model.Part {
	p.PartNumber = strings.TrimSpace(p.PartNumber)
	p.PartCode = strings.TrimSpace(p.PartCode)
	p.MachineName = strings.TrimSpace(p.MachineName)
	p.Material = strings.TrimSpace(p.Material)
	p.Category = model.Category(strings.TrimSpace(string(p.Category)))
	if !p.InstallDate.IsZero() {
		p.InstallDate = model.Date(p.InstallDate)
	}
	return p
}

// validatePart returns a *model.ValidationError naming every invalid field,
// or nil. row is the 1-based row of an import batch, zero otherwise.
func validatePart(row int, p model.Part) error {
	err := validate.Struct(partInput{
		PartNumber:       p.PartNumber,
		PartCode:         p.PartCode,
		MachineName:      p.MachineName,
		Material:         p.Material,
		InstallDate:      p.InstallDate,
		RecommendedUsage: p.RecommendedUsage,
		Category:         string(p.Category),
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.NewValidationError(row, p.PartNumber, model.FieldError{Field: "part", Reason: err.Error()})
	}

	fields := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, model.FieldError{Field: fe.Field(), Reason: reason(fe)})
	}

	return model.NewValidationError(row, p.PartNumber, fields...)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}
