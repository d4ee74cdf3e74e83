package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/you-humble/part-monitoring/internal/model"
	"github.com/you-humble/part-monitoring/internal/query"
	"github.com/you-humble/part-monitoring/internal/wear"
	"github.com/you-humble/part-monitoring/platform/logger"
)

type PartRepository interface {
	Load(ctx context.Context) ([]model.Part, error)
	Save(ctx context.Context, parts []model.Part) error
}

type PartEventSender interface {
	Send(ctx context.Context, event model.PartEvent) error
}

type service struct {
	// serializes writers; readers load without it
	mu sync.Mutex

	repo   PartRepository
	events PartEventSender
	policy wear.Policy
	now    func() time.Time

	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewPartService(
	repo PartRepository,
	events PartEventSender,
	policy wear.Policy,
	now func() time.Time,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	if events == nil {
		events = nopSender{}
	}
	if now == nil {
		now = time.Now
	}

	return &service{
		repo:           repo,
		events:         events,
		policy:         policy,
		now:            now,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

func (s *service) Dashboard(ctx context.Context, filter model.PartsFilter) (*model.Dashboard, error) {
	const op = "part.service.Dashboard"

	parts, err := s.load(ctx)
	if err != nil {
		logger.Error(ctx, "repository load parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reports := query.Filter(parts, filter, s.now(), s.policy)

	return &model.Dashboard{
		Parts:   reports,
		Summary: query.Summarize(reports),
		Options: query.Options(parts),
	}, nil
}

func (s *service) Export(ctx context.Context, filter model.PartsFilter) ([]model.PartReport, error) {
	const op = "part.service.Export"

	parts, err := s.load(ctx)
	if err != nil {
		logger.Error(ctx, "repository load parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return query.Filter(parts, filter, s.now(), s.policy), nil
}

func (s *service) Part(ctx context.Context, partNumber string) (*model.PartReport, error) {
	const op = "part.service.Part"
	partNumber = strings.TrimSpace(partNumber)
	log := logger.With(logger.String("part_number", partNumber))

	parts, err := s.load(ctx)
	if err != nil {
		log.Error(ctx, "repository load parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idx := indexOf(parts, partNumber)
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w", op, model.ErrPartNotFound)
	}

	return s.report(parts[idx]), nil
}

func (s *service) Create(ctx context.Context, part model.Part) (*model.PartReport, error) {
	const op = "part.service.Create"
	part = normalize(part)
	log := logger.With(logger.String("part_number", part.PartNumber))

	if err := validatePart(0, part); err != nil {
		log.Warn(ctx, "invalid part", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	parts, err := s.load(ctx)
	if err != nil {
		log.Error(ctx, "repository load parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if indexOf(parts, part.PartNumber) >= 0 {
		log.Warn(ctx, "part number already exists")
		return nil, fmt.Errorf("%s: %w", op, &model.DuplicateKeyError{PartNumbers: []string{part.PartNumber}})
	}

	if err := s.save(ctx, append(parts, part)); err != nil {
		log.Error(ctx, "repository save parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "part created")
	s.publish(ctx, model.PartEvent{Type: model.PartEventCreated, PartNumber: part.PartNumber, Part: &part})

	return s.report(part), nil
}

// Update replaces the record stored under partNumber with part. The new
// record keeps its position and may carry a different part number.
func (s *service) Update(ctx context.Context, partNumber string, part model.Part) (*model.PartReport, error) {
	const op = "part.service.Update"
	partNumber = strings.TrimSpace(partNumber)
	part = normalize(part)
	log := logger.With(
		logger.String("part_number", partNumber),
		logger.String("new_part_number", part.PartNumber),
	)

	if err := validatePart(0, part); err != nil {
		log.Warn(ctx, "invalid part", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	parts, err := s.load(ctx)
	if err != nil {
		log.Error(ctx, "repository load parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idx := indexOf(parts, partNumber)
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w", op, model.ErrPartNotFound)
	}

	if part.PartNumber != partNumber && indexOf(parts, part.PartNumber) >= 0 {
		log.Warn(ctx, "new part number already exists")
		return nil, fmt.Errorf("%s: %w", op, &model.DuplicateKeyError{PartNumbers: []string{part.PartNumber}})
	}

	parts[idx] = part
	if err := s.save(ctx, parts); err != nil {
		log.Error(ctx, "repository save parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "part updated")
	s.publish(ctx, model.PartEvent{Type: model.PartEventUpdated, PartNumber: partNumber, Part: &part})

	return s.report(part), nil
}

func (s *service) Delete(ctx context.Context, partNumber string) error {
	const op = "part.service.Delete"
	partNumber = strings.TrimSpace(partNumber)
	log := logger.With(logger.String("part_number", partNumber))

	s.mu.Lock()
	defer s.mu.Unlock()

	parts, err := s.load(ctx)
	if err != nil {
		log.Error(ctx, "repository load parts", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	idx := indexOf(parts, partNumber)
	if idx < 0 {
		return fmt.Errorf("%s: %w", op, model.ErrPartNotFound)
	}

	if err := s.save(ctx, slices.Delete(parts, idx, idx+1)); err != nil {
		log.Error(ctx, "repository save parts", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "part deleted")
	s.publish(ctx, model.PartEvent{Type: model.PartEventDeleted, PartNumber: partNumber})

	return nil
}

// MarkReplaced restarts the wear clock of a part from today.
func (s *service) MarkReplaced(ctx context.Context, partNumber string) (*model.PartReport, error) {
	const op = "part.service.MarkReplaced"
	partNumber = strings.TrimSpace(partNumber)
	log := logger.With(logger.String("part_number", partNumber))

	s.mu.Lock()
	defer s.mu.Unlock()

	parts, err := s.load(ctx)
	if err != nil {
		log.Error(ctx, "repository load parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idx := indexOf(parts, partNumber)
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w", op, model.ErrPartNotFound)
	}

	parts[idx].InstallDate = model.Date(s.now())
	if err := s.save(ctx, parts); err != nil {
		log.Error(ctx, "repository save parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	part := parts[idx]
	log.Info(ctx, "part marked replaced", logger.String("install_date", model.FormatDate(part.InstallDate)))
	s.publish(ctx, model.PartEvent{Type: model.PartEventReplaced, PartNumber: partNumber, Part: &part})

	return s.report(part), nil
}

type importRow struct {
	row  int
	part model.Part
}

// BulkImport writes a batch in one save. In append mode rows whose key is
// already stored are skipped and reported as duplicates. Any invalid row or
// a key repeated inside the batch rejects the whole batch.
func (s *service) BulkImport(ctx context.Context, batch []model.Part, mode model.ImportMode) (*model.ImportResult, error) {
	const op = "part.service.BulkImport"
	log := logger.With(
		logger.String("mode", string(mode)),
		logger.Int("received", len(batch)),
	)

	if mode != model.ImportModeAppend && mode != model.ImportModeReplace {
		return nil, fmt.Errorf("%s: %w", op, model.NewValidationError(0, "", model.FieldError{
			Field:  "mode",
			Reason: fmt.Sprintf("must be %q or %q", model.ImportModeAppend, model.ImportModeReplace),
		}))
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("%s: %w", op, model.NewValidationError(0, "", model.FieldError{
			Field:  "rows",
			Reason: "must not be empty",
		}))
	}

	rows := lo.Map(batch, func(p model.Part, i int) importRow {
		return importRow{row: i + 1, part: normalize(p)}
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	parts, err := s.load(ctx)
	if err != nil {
		log.Error(ctx, "repository load parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := &model.ImportResult{Mode: mode, Received: len(batch)}

	if mode == model.ImportModeAppend {
		stored := lo.Keyify(lo.Map(parts, func(p model.Part, _ int) string { return p.PartNumber }))

		var dropped []importRow
		rows, dropped = lo.FilterReject(rows, func(r importRow, _ int) bool {
			_, ok := stored[r.part.PartNumber]
			return !ok
		})

		res.Duplicates = len(dropped)
		res.DuplicateKeys = lo.Uniq(lo.Map(dropped, func(r importRow, _ int) string { return r.part.PartNumber }))
	}

	var errs []error
	for _, r := range rows {
		if err := validatePart(r.row, r.part); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		log.Warn(ctx, "invalid rows", logger.Int("invalid", len(errs)))
		return nil, fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	repeated := lo.FindDuplicatesBy(rows, func(r importRow) string { return r.part.PartNumber })
	if len(repeated) > 0 {
		keys := lo.Map(repeated, func(r importRow, _ int) string { return r.part.PartNumber })
		log.Warn(ctx, "repeated part numbers in batch", logger.Strings("part_numbers", keys))
		return nil, fmt.Errorf("%s: %w", op, &model.DuplicateKeyError{PartNumbers: keys})
	}

	incoming := lo.Map(rows, func(r importRow, _ int) model.Part { return r.part })

	next := incoming
	if mode == model.ImportModeAppend {
		next = append(parts, incoming...)
	}

	if len(incoming) == 0 {
		log.Info(ctx, "nothing to import", logger.Int("duplicates", res.Duplicates))
		return res, nil
	}

	if err := s.save(ctx, next); err != nil {
		log.Error(ctx, "repository save parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res.Imported = len(incoming)
	log.Info(ctx, "parts imported",
		logger.Int("imported", res.Imported),
		logger.Int("duplicates", res.Duplicates),
	)
	s.publish(ctx, model.PartEvent{Type: model.PartEventImported, Imported: res.Imported, Mode: mode})

	return res, nil
}

func (s *service) report(p model.Part) *model.PartReport {
	return &model.PartReport{Part: p, Wear: wear.Derive(p, s.now(), s.policy)}
}

func (s *service) load(ctx context.Context) ([]model.Part, error) {
	ctx, cancel := withTimeout(ctx, s.readDBTimeout)
	defer cancel()

	parts, err := s.repo.Load(ctx)
	if err != nil {
		return nil, errors.Join(model.ErrPersistence, err)
	}
	return parts, nil
}

func (s *service) save(ctx context.Context, parts []model.Part) error {
	ctx, cancel := withTimeout(ctx, s.writeDBTimeout)
	defer cancel()

	if err := s.repo.Save(ctx, parts); err != nil {
		return errors.Join(model.ErrPersistence, err)
	}
	return nil
}

// publish never fails the calling mutation; the record is already stored.
func (s *service) publish(ctx context.Context, ev model.PartEvent) {
	ev.ID = uuid.New()
	ev.OccurredAt = s.now()

	if err := s.events.Send(ctx, ev); err != nil {
		logger.Warn(ctx, "failed to publish part event",
			logger.String("event_type", string(ev.Type)),
			logger.String("part_number", ev.PartNumber),
			logger.ErrorF(err),
		)
	}
}

func indexOf(parts []model.Part, partNumber string) int {
	return slices.IndexFunc(parts, func(p model.Part) bool { return p.PartNumber == partNumber })
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

type nopSender struct{}

func (nopSender) Send(context.Context, model.PartEvent) error { return nil }
