package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/part-monitoring/internal/model"
	"github.com/you-humble/part-monitoring/internal/service/mocks"
	"github.com/you-humble/part-monitoring/internal/wear"
)

var testNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return testNow }

type deps struct {
	repository *mocks.MockPartRepository
	events     *mocks.MockPartEventSender
}

func newDeps(t *testing.T) deps {
	return deps{
		repository: mocks.NewMockPartRepository(t),
		events:     mocks.NewMockPartEventSender(t),
	}
}

func newSvc(d deps) *service {
	return NewPartService(d.repository, d.events, wear.DefaultPolicy(), clock, time.Second, time.Second)
}

// stored returns a fresh copy on every call, the service mutates what it loads.
func stored() []model.Part {
	return model.TemplateParts()
}

func newPart(number string) model.Part {
	return model.Part{
		PartNumber:       number,
		PartCode:         gofakeit.LetterN(4),
		MachineName:      "Mesin " + gofakeit.LetterN(1),
		Material:         gofakeit.ProductMaterial(),
		InstallDate:      time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		RecommendedUsage: 1000,
		Category:         model.CategoryPneumatic,
	}
}

func eventOf(typ model.PartEventType, number string) any {
	return mock.MatchedBy(func(ev model.PartEvent) bool {
		return ev.Type == typ && ev.PartNumber == number && !ev.OccurredAt.IsZero()
	})
}

func partNumbers(parts []model.Part) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, p.PartNumber)
	}
	return out
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		part   model.Part
		setup  func(d deps)
		assert func(t *testing.T, res *model.PartReport, err error, d deps)
	}

	tests := []testCase{
		{
			name: "validation error: blank fields",
			part: model.Part{PartNumber: "  ", RecommendedUsage: 10, Category: model.CategoryMechanical},
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
				assert.ElementsMatch(t,
					[]string{"part_number", "part_code", "machine_name", "material", "install_date"},
					fieldNames(t, err),
				)

				d.repository.AssertNotCalled(t, "Load", mock.Anything)
			},
		},
		{
			name: "validation error: usage and category",
			part: func() model.Part {
				p := newPart("PART003")
				p.RecommendedUsage = 0
				p.Category = "Hydraulic"
				return p
			}(),
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.ErrorIs(t, err, model.ErrValidation)
				assert.ElementsMatch(t, []string{"recommended_usage", "category"}, fieldNames(t, err))
				assert.ErrorContains(t, err, "must be at least 1")
				assert.ErrorContains(t, err, "Mechanical, Electrical, Pneumatic")
			},
		},
		{
			name: "validation error: usage above storable range",
			part: func() model.Part {
				p := newPart("PART003")
				p.RecommendedUsage = math.MaxInt32 + 1
				return p
			}(),
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
				assert.Equal(t, []string{"recommended_usage"}, fieldNames(t, err))
				assert.ErrorContains(t, err, "must be at most 2147483647")

				d.repository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			},
		},
		{
			name: "duplicate key leaves store untouched",
			part: newPart(" PART001 "),
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
			},
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.ErrorIs(t, err, model.ErrDuplicateKey)
				assert.Nil(t, res)

				var dup *model.DuplicateKeyError
				require.ErrorAs(t, err, &dup)
				assert.Equal(t, []string{"PART001"}, dup.PartNumbers)

				d.repository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			},
		},
		{
			name: "load failure is a persistence error",
			part: newPart("PART003"),
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(nil, errors.New("disk gone")).Once()
			},
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.ErrorIs(t, err, model.ErrPersistence)
				assert.ErrorContains(t, err, "disk gone")
				assert.Nil(t, res)
			},
		},
		{
			name: "save failure is reported and publishes nothing",
			part: newPart("PART003"),
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
				d.repository.On("Save", mock.Anything, mock.Anything).Return(errors.New("no space left")).Once()
			},
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.ErrorIs(t, err, model.ErrPersistence)
				assert.Nil(t, res)

				d.events.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
			},
		},
		{
			name: "success: trims input, appends and publishes",
			part: func() model.Part {
				p := newPart("  PART003\t")
				p.MachineName = " Mesin C "
				return p
			}(),
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
				d.repository.On("Save", mock.Anything, mock.MatchedBy(func(parts []model.Part) bool {
					return slices.Equal(partNumbers(parts), []string{"PART001", "PART002", "PART003"}) &&
						parts[2].MachineName == "Mesin C"
				})).Return(nil).Once()
				d.events.On("Send", mock.Anything, eventOf(model.PartEventCreated, "PART003")).Return(nil).Once()
			},
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.Equal(t, "PART003", res.Part.PartNumber)
				assert.Equal(t, 1000-43*8, res.Wear.RemainingHours)
				assert.Equal(t, model.StatusNormal, res.Wear.Status)
			},
		},
		{
			name: "event failure does not fail the operation",
			part: newPart("PART003"),
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
				d.repository.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
				d.events.On("Send", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			if tt.setup != nil {
				tt.setup(d)
			}

			res, err := newSvc(d).Create(context.Background(), tt.part)
			tt.assert(t, res, err, d)
		})
	}
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name       string
		partNumber string
		part       model.Part
		setup      func(d deps)
		assert     func(t *testing.T, res *model.PartReport, err error, d deps)
	}

	tests := []testCase{
		{
			name:       "not found",
			partNumber: "NOPE",
			part:       newPart("NOPE"),
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
			},
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.ErrorIs(t, err, model.ErrPartNotFound)
				assert.Nil(t, res)
				d.repository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			},
		},
		{
			name:       "rename onto another record",
			partNumber: "PART001",
			part:       newPart("PART002"),
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
			},
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.ErrorIs(t, err, model.ErrDuplicateKey)
				d.repository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			},
		},
		{
			name:       "invalid replacement",
			partNumber: "PART001",
			part: func() model.Part {
				p := newPart("PART001")
				p.Material = " "
				return p
			}(),
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.ErrorIs(t, err, model.ErrValidation)
				assert.Equal(t, []string{"material"}, fieldNames(t, err))
			},
		},
		{
			name:       "success: rename keeps position",
			partNumber: "PART001",
			part:       newPart("PART001-B"),
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
				d.repository.On("Save", mock.Anything, mock.MatchedBy(func(parts []model.Part) bool {
					return slices.Equal(partNumbers(parts), []string{"PART001-B", "PART002"}) &&
						parts[0].Category == model.CategoryPneumatic
				})).Return(nil).Once()
				d.events.On("Send", mock.Anything, eventOf(model.PartEventUpdated, "PART001")).Return(nil).Once()
			},
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, "PART001-B", res.Part.PartNumber)
			},
		},
		{
			name:       "success: same key",
			partNumber: "PART002",
			part:       newPart("PART002"),
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
				d.repository.On("Save", mock.Anything, mock.MatchedBy(func(parts []model.Part) bool {
					return slices.Equal(partNumbers(parts), []string{"PART001", "PART002"}) &&
						parts[1].RecommendedUsage == 1000
				})).Return(nil).Once()
				d.events.On("Send", mock.Anything, eventOf(model.PartEventUpdated, "PART002")).Return(nil).Once()
			},
			assert: func(t *testing.T, res *model.PartReport, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, 1000, res.Part.RecommendedUsage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			if tt.setup != nil {
				tt.setup(d)
			}

			res, err := newSvc(d).Update(context.Background(), tt.partNumber, tt.part)
			tt.assert(t, res, err, d)
		})
	}
}

func TestServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()

		err := newSvc(d).Delete(context.Background(), "PART404")
		require.ErrorIs(t, err, model.ErrPartNotFound)
		d.repository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
		d.repository.On("Save", mock.Anything, mock.MatchedBy(func(parts []model.Part) bool {
			return slices.Equal(partNumbers(parts), []string{"PART002"})
		})).Return(nil).Once()
		d.events.On("Send", mock.Anything, eventOf(model.PartEventDeleted, "PART001")).Return(nil).Once()

		require.NoError(t, newSvc(d).Delete(context.Background(), " PART001 "))
	})
}

func TestServiceMarkReplaced(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()

		res, err := newSvc(d).MarkReplaced(context.Background(), "PART404")
		require.ErrorIs(t, err, model.ErrPartNotFound)
		assert.Nil(t, res)
	})

	t.Run("resets install date only", func(t *testing.T) {
		t.Parallel()

		before := stored()
		today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

		d := newDeps(t)
		d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
		d.repository.On("Save", mock.Anything, mock.MatchedBy(func(parts []model.Part) bool {
			want := before[1]
			want.InstallDate = today
			return len(parts) == 2 && parts[0] == before[0] && parts[1] == want
		})).Return(nil).Once()
		d.events.On("Send", mock.Anything, eventOf(model.PartEventReplaced, "PART002")).Return(nil).Once()

		res, err := newSvc(d).MarkReplaced(context.Background(), "PART002")
		require.NoError(t, err)
		assert.Equal(t, today, res.Part.InstallDate)
		assert.Equal(t, before[1].RecommendedUsage, res.Wear.RemainingHours)
		assert.Equal(t, model.StatusNormal, res.Wear.Status)
	})
}

func TestServiceBulkImport(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		batch  []model.Part
		mode   model.ImportMode
		setup  func(d deps)
		assert func(t *testing.T, res *model.ImportResult, err error, d deps)
	}

	tests := []testCase{
		{
			name:  "append: one existing one new",
			batch: []model.Part{newPart("PART001"), newPart("PART003")},
			mode:  model.ImportModeAppend,
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
				d.repository.On("Save", mock.Anything, mock.MatchedBy(func(parts []model.Part) bool {
					return slices.Equal(partNumbers(parts), []string{"PART001", "PART002", "PART003"}) &&
						parts[0].PartCode == "CODE001"
				})).Return(nil).Once()
				d.events.On("Send", mock.Anything, eventOf(model.PartEventImported, "")).Return(nil).Once()
			},
			assert: func(t *testing.T, res *model.ImportResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, &model.ImportResult{
					Mode:          model.ImportModeAppend,
					Received:      2,
					Imported:      1,
					Duplicates:    1,
					DuplicateKeys: []string{"PART001"},
				}, res)
			},
		},
		{
			name:  "append: everything already stored",
			batch: []model.Part{newPart("PART001"), newPart("PART002")},
			mode:  model.ImportModeAppend,
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
			},
			assert: func(t *testing.T, res *model.ImportResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, 0, res.Imported)
				assert.Equal(t, 2, res.Duplicates)
				d.repository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				d.events.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "append: key repeated inside the batch",
			batch: []model.Part{newPart("PART003"), newPart("PART004"), newPart("PART003")},
			mode:  model.ImportModeAppend,
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
			},
			assert: func(t *testing.T, res *model.ImportResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrDuplicateKey)
				assert.Nil(t, res)
				d.repository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "replace: key repeated inside the batch",
			batch: []model.Part{newPart("PART009"), newPart("PART009")},
			mode:  model.ImportModeReplace,
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
			},
			assert: func(t *testing.T, res *model.ImportResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrDuplicateKey)

				var dup *model.DuplicateKeyError
				require.ErrorAs(t, err, &dup)
				assert.Equal(t, []string{"PART009"}, dup.PartNumbers)
				d.repository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "replace: swaps the whole store",
			batch: []model.Part{newPart("PART001"), newPart("PART010")},
			mode:  model.ImportModeReplace,
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
				d.repository.On("Save", mock.Anything, mock.MatchedBy(func(parts []model.Part) bool {
					return slices.Equal(partNumbers(parts), []string{"PART001", "PART010"}) &&
						parts[0].Category == model.CategoryPneumatic
				})).Return(nil).Once()
				d.events.On("Send", mock.Anything, eventOf(model.PartEventImported, "")).Return(nil).Once()
			},
			assert: func(t *testing.T, res *model.ImportResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, 2, res.Imported)
				assert.Equal(t, 0, res.Duplicates)
			},
		},
		{
			name: "invalid rows reject the batch",
			batch: func() []model.Part {
				bad := newPart("PART011")
				bad.RecommendedUsage = -5
				worse := newPart("")
				return []model.Part{newPart("PART010"), bad, worse}
			}(),
			mode: model.ImportModeReplace,
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
			},
			assert: func(t *testing.T, res *model.ImportResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)

				var verr *model.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, 2, verr.Row)
				assert.ErrorContains(t, err, "row 3")
				d.repository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "empty batch",
			batch: nil,
			mode:  model.ImportModeReplace,
			assert: func(t *testing.T, res *model.ImportResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrValidation)
				d.repository.AssertNotCalled(t, "Load", mock.Anything)
			},
		},
		{
			name:  "unknown mode",
			batch: []model.Part{newPart("PART010")},
			mode:  "merge",
			assert: func(t *testing.T, res *model.ImportResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrValidation)
				assert.Equal(t, []string{"mode"}, fieldNames(t, err))
			},
		},
		{
			name:  "save failure keeps batch unacknowledged",
			batch: []model.Part{newPart("PART010")},
			mode:  model.ImportModeAppend,
			setup: func(d deps) {
				d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()
				d.repository.On("Save", mock.Anything, mock.Anything).Return(errors.New("read-only fs")).Once()
			},
			assert: func(t *testing.T, res *model.ImportResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrPersistence)
				assert.Nil(t, res)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			if tt.setup != nil {
				tt.setup(d)
			}

			res, err := newSvc(d).BulkImport(context.Background(), tt.batch, tt.mode)
			tt.assert(t, res, err, d)
		})
	}
}

func TestServiceReads(t *testing.T) {
	t.Parallel()

	t.Run("dashboard", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()

		f := model.NewPartsFilter()
		f.Machine = "Mesin B"

		res, err := newSvc(d).Dashboard(context.Background(), f)
		require.NoError(t, err)
		require.Len(t, res.Parts, 1)
		assert.Equal(t, "PART002", res.Parts[0].Part.PartNumber)
		assert.Equal(t, 1, res.Summary.Total)
		assert.Equal(t, 1, res.Summary.CategoryCounts[model.CategoryElectrical])
		assert.Equal(t, []string{model.FilterAll, "Mesin A", "Mesin B"}, res.Options.Machines)
	})

	t.Run("part not found", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()

		res, err := newSvc(d).Part(context.Background(), "PART404")
		require.ErrorIs(t, err, model.ErrPartNotFound)
		assert.Nil(t, res)
	})

	t.Run("part", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.repository.On("Load", mock.Anything).Return(stored(), nil).Once()

		res, err := newSvc(d).Part(context.Background(), "PART001")
		require.NoError(t, err)
		assert.Equal(t, wear.Derive(stored()[0], testNow, wear.DefaultPolicy()), res.Wear)
	})

	t.Run("export load failure", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.repository.On("Load", mock.Anything).Return(nil, errors.New("timeout")).Once()

		res, err := newSvc(d).Export(context.Background(), model.NewPartsFilter())
		require.ErrorIs(t, err, model.ErrPersistence)
		assert.Nil(t, res)
	})
}

type memRepository struct {
	mu    sync.Mutex
	parts []model.Part
}

func (r *memRepository) Load(context.Context) ([]model.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.parts), nil
}

func (r *memRepository) Save(_ context.Context, parts []model.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parts = slices.Clone(parts)
	return nil
}

func TestServiceConcurrentWriters(t *testing.T) {
	t.Parallel()

	repo := &memRepository{}
	svc := NewPartService(repo, nil, wear.DefaultPolicy(), clock, 0, 0)

	const writers = 50
	batch := make([]model.Part, 0, writers)
	for i := range writers {
		batch = append(batch, newPart(fmt.Sprintf("P%03d", i)))
	}

	var wg sync.WaitGroup
	for _, p := range batch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), p)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	parts, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, parts, writers)

	_, err = svc.Create(context.Background(), newPart("P007"))
	require.ErrorIs(t, err, model.ErrDuplicateKey)
}
