package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/you-humble/part-monitoring/internal/model"
	partsv1 "github.com/you-humble/part-monitoring/pkg/api/parts/v1"
	"github.com/you-humble/part-monitoring/platform/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(r.Context(), "write json response", logger.ErrorF(err))
	}
}

func writeCSV(w http.ResponseWriter, r *http.Request, filename string, body []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		logger.Error(r.Context(), "write csv response", logger.ErrorF(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := mapError(err)

	if res.Code >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", logger.Int("status", res.Code), logger.ErrorF(err))
	} else {
		logger.Warn(r.Context(), "request rejected", logger.Int("status", res.Code), logger.ErrorF(err))
	}

	writeJSON(w, r, res.Code, res)
}

func mapError(err error) partsv1.ErrorResponse {
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, model.ErrSchemaMismatch):
		res := partsv1.ErrorResponse{ // 422
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		}
		var serr *model.SchemaMismatchError
		if errors.As(err, &serr) {
			res.Details = map[string]any{
				"expected": serr.Expected,
				"found":    serr.Found,
				"missing":  serr.Missing,
			}
		}
		return res
	case errors.Is(err, model.ErrValidation):
		return partsv1.ErrorResponse{ // 400
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Details: map[string]any{"fields": fieldErrors(err)},
		}
	case errors.As(err, &maxErr):
		return partsv1.ErrorResponse{ // 413
			Code:    http.StatusRequestEntityTooLarge,
			Message: err.Error(),
		}
	case errors.Is(err, model.ErrPartNotFound):
		return partsv1.ErrorResponse{ // 404
			Code:    http.StatusNotFound,
			Message: err.Error(),
		}
	case errors.Is(err, model.ErrDuplicateKey):
		res := partsv1.ErrorResponse{ // 409
			Code:    http.StatusConflict,
			Message: err.Error(),
		}
		var derr *model.DuplicateKeyError
		if errors.As(err, &derr) {
			res.Details = map[string]any{"part_numbers": derr.PartNumbers}
		}
		return res
	case errors.Is(err, model.ErrPersistence):
		return partsv1.ErrorResponse{ // 503
			Code:    http.StatusServiceUnavailable,
			Message: err.Error(),
		}
	default:
		return partsv1.ErrorResponse{ // 500
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		}
	}
}

// fieldErrors flattens every *model.ValidationError found in the error tree.
func fieldErrors(err error) []partsv1.FieldError {
	out := make([]partsv1.FieldError, 0)

	var walk func(error)
	walk = func(e error) {
		switch x := e.(type) {
		case nil:
			return
		case *model.ValidationError:
			for _, f := range x.Fields {
				out = append(out, partsv1.FieldError{
					Row:        x.Row,
					PartNumber: x.PartNumber,
					Field:      f.Field,
					Reason:     f.Reason,
				})
			}
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)

	return out
}
