package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/you-humble/part-monitoring/internal/converter"
	"github.com/you-humble/part-monitoring/internal/model"
	partsv1 "github.com/you-humble/part-monitoring/pkg/api/parts/v1"
)

const (
	maxImportBytes = 10 << 20
	maxBodyBytes   = 1 << 20

	exportFileName   = "parts_export.csv"
	templateFileName = "template_import.csv"
)

type PartService interface {
	Dashboard(ctx context.Context, filter model.PartsFilter) (*model.Dashboard, error)
	Export(ctx context.Context, filter model.PartsFilter) ([]model.PartReport, error)
	Part(ctx context.Context, partNumber string) (*model.PartReport, error)
	Create(ctx context.Context, part model.Part) (*model.PartReport, error)
	Update(ctx context.Context, partNumber string, part model.Part) (*model.PartReport, error)
	Delete(ctx context.Context, partNumber string) error
	MarkReplaced(ctx context.Context, partNumber string) (*model.PartReport, error)
	BulkImport(ctx context.Context, batch []model.Part, mode model.ImportMode) (*model.ImportResult, error)
}

type handler struct {
	svc PartService
}

func NewPartHandler(service PartService) *handler {
	return &handler{svc: service}
}

// Routes mounts under /api/v1.
func (h *handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/parts", func(r chi.Router) {
		r.Get("/", h.Dashboard)
		r.Post("/", h.CreatePart)
		r.Post("/import", h.ImportParts)
		r.Get("/export", h.ExportParts)
		r.Get("/template", h.Template)

		r.Route("/{partNumber}", func(r chi.Router) {
			r.Get("/", h.GetPart)
			r.Put("/", h.UpdatePart)
			r.Delete("/", h.DeletePart)
			r.Post("/replaced", h.MarkReplaced)
		})
	})

	return r
}

func (h *handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := converter.FilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.Dashboard(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.DashboardToAPI(res))
}

func (h *handler) GetPart(w http.ResponseWriter, r *http.Request) {
	partNumber, err := partNumberParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.Part(r.Context(), partNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.ReportToAPI(*res))
}

func (h *handler) CreatePart(w http.ResponseWriter, r *http.Request) {
	part, err := decodePart(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.Create(r.Context(), part)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/parts/"+url.PathEscape(res.Part.PartNumber))
	writeJSON(w, r, http.StatusCreated, converter.ReportToAPI(*res))
}

func (h *handler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	partNumber, err := partNumberParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	part, err := decodePart(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.Update(r.Context(), partNumber, part)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.ReportToAPI(*res))
}

func (h *handler) DeletePart(w http.ResponseWriter, r *http.Request) {
	partNumber, err := partNumberParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); !confirmed {
		writeError(w, r, model.NewValidationError(0, partNumber, model.FieldError{
			Field:  "confirm",
			Reason: "must be true to delete a part",
		}))
		return
	}

	if err := h.svc.Delete(r.Context(), partNumber); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) MarkReplaced(w http.ResponseWriter, r *http.Request) {
	partNumber, err := partNumberParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.MarkReplaced(r.Context(), partNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.ReportToAPI(*res))
}

// ImportParts accepts the CSV either as the raw body or as the "file" field
// of a multipart form.
func (h *handler) ImportParts(w http.ResponseWriter, r *http.Request) {
	mode, err := model.ParseImportMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	src, closeSrc, err := importSource(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer closeSrc()

	batch, err := converter.PartsFromCSV(src)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.BulkImport(r.Context(), batch, mode)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.ImportResultToAPI(res))
}

func (h *handler) ExportParts(w http.ResponseWriter, r *http.Request) {
	filter, err := converter.FilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	reports, err := h.svc.Export(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := converter.ReportsToCSV(&buf, reports); err != nil {
		writeError(w, r, err)
		return
	}

	writeCSV(w, r, exportFileName, buf.Bytes())
}

func (h *handler) Template(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := converter.TemplateCSV(&buf); err != nil {
		writeError(w, r, err)
		return
	}

	writeCSV(w, r, templateFileName, buf.Bytes())
}

// partNumberParam returns the decoded part number. chi routes on RawPath
// when the request carries one, otherwise on the already decoded Path.
func partNumberParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "partNumber")
	if r.URL.RawPath == "" {
		return raw, nil
	}

	partNumber, err := url.PathUnescape(raw)
	if err != nil {
		return "", model.NewValidationError(0, raw, model.FieldError{
			Field:  "part_number",
			Reason: "is not a valid path segment",
		})
	}
	return partNumber, nil
}

func decodePart(w http.ResponseWriter, r *http.Request) (model.Part, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var req partsv1.Part
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return model.Part{}, err
		}
		return model.Part{}, model.NewValidationError(0, "", model.FieldError{
			Field:  "body",
			Reason: err.Error(),
		})
	}

	return converter.PartFromAPI(req)
}

func importSource(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, err
		}
		return nil, nil, model.NewValidationError(0, "", model.FieldError{
			Field:  "file",
			Reason: "multipart field \"file\" is required",
		})
	}

	return file, func() { _ = file.Close() }, nil
}
