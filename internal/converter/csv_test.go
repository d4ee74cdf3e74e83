package converter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/part-monitoring/internal/model"
	"github.com/you-humble/part-monitoring/internal/wear"
)

func TestPartsFromCSV(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		input  string
		assert func(t *testing.T, parts []model.Part, err error)
	}

	tests := []testCase{
		{
			name: "canonical file",
			input: "part_number,part_code,machine_name,material,install_date,recommended_usage,category\n" +
				"PART001,CODE001,Mesin A,Steel,2024-01-01,2000,Mechanical\n" +
				"PART002,CODE002,Mesin B,Aluminum,2024-01-15,1500,Electrical\n",
			assert: func(t *testing.T, parts []model.Part, err error) {
				require.NoError(t, err)
				assert.Equal(t, model.TemplateParts(), parts)
			},
		},
		{
			name: "bom, shuffled columns, padding and extra columns",
			input: "\ufeff category , part_number,notes,part_code,machine_name,material,install_date,recommended_usage\n" +
				"Pneumatic, P-9 ,ignored,C9,  Press 1 ,Rubber,2024-02-29, 750\n" +
				",,,,,,,\n",
			assert: func(t *testing.T, parts []model.Part, err error) {
				require.NoError(t, err)
				require.Len(t, parts, 1)
				assert.Equal(t, model.Part{
					PartNumber:       "P-9",
					PartCode:         "C9",
					MachineName:      "Press 1",
					Material:         "Rubber",
					InstallDate:      time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
					RecommendedUsage: 750,
					Category:         model.CategoryPneumatic,
				}, parts[0])
			},
		},
		{
			name:  "missing columns",
			input: "part_number,part_code,machine,install_date\nP1,C1,M,2024-01-01\n",
			assert: func(t *testing.T, parts []model.Part, err error) {
				require.ErrorIs(t, err, model.ErrSchemaMismatch)

				var serr *model.SchemaMismatchError
				require.ErrorAs(t, err, &serr)
				assert.Equal(t, PartColumns, serr.Expected)
				assert.Equal(t, []string{"part_number", "part_code", "machine", "install_date"}, serr.Found)
				assert.Equal(t, []string{"machine_name", "material", "recommended_usage", "category"}, serr.Missing)
			},
		},
		{
			name:  "empty file",
			input: "",
			assert: func(t *testing.T, parts []model.Part, err error) {
				require.ErrorIs(t, err, model.ErrSchemaMismatch)
			},
		},
		{
			name: "bad cells name row and field",
			input: "part_number,part_code,machine_name,material,install_date,recommended_usage,category\n" +
				"P1,C1,M1,Steel,2024-01-01,100,Mechanical\n" +
				"P2,C2,M2,Steel,01/02/2024,1e3,Mechanical\n" +
				"P3,C3,M3,Steel,2024-13-01,100,Mechanical\n",
			assert: func(t *testing.T, parts []model.Part, err error) {
				require.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, parts)

				var verr *model.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, 2, verr.Row)
				assert.Equal(t, "P2", verr.PartNumber)
				require.Len(t, verr.Fields, 2)
				assert.Equal(t, "install_date", verr.Fields[0].Field)
				assert.Equal(t, "recommended_usage", verr.Fields[1].Field)
				assert.ErrorContains(t, err, "row 3")
			},
		},
		{
			name: "empty cells are left to the service",
			input: "part_number,part_code,machine_name,material,install_date,recommended_usage,category\n" +
				"P1,,M1,Steel,,,Mechanical\n",
			assert: func(t *testing.T, parts []model.Part, err error) {
				require.NoError(t, err)
				require.Len(t, parts, 1)
				assert.True(t, parts[0].InstallDate.IsZero())
				assert.Zero(t, parts[0].RecommendedUsage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parts, err := PartsFromCSV(strings.NewReader(tt.input))
			tt.assert(t, parts, err)
		})
	}
}

func TestReportsToCSV(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	parts := model.TemplateParts()
	parts[1].Material = `Alu, "6061"`

	reports := make([]model.PartReport, 0, len(parts))
	for _, p := range parts {
		reports = append(reports, model.PartReport{Part: p, Wear: wear.Derive(p, now, wear.DefaultPolicy())})
	}

	var buf bytes.Buffer
	require.NoError(t, ReportsToCSV(&buf, reports))

	want := "part_number,part_code,machine_name,material,install_date,recommended_usage,category," +
		"replacement_date,remaining_hours,status\n" +
		"PART001,CODE001,Mesin A,Steel,2024-01-01,2000,Mechanical,2024-09-07,1408,Normal\n" +
		"PART002,CODE002,Mesin B,\"Alu, \"\"6061\"\"\",2024-01-15,1500,Electrical,2024-07-21,1020,Normal\n"
	assert.Equal(t, want, buf.String())

	t.Run("export can be imported again", func(t *testing.T) {
		back, err := PartsFromCSV(&buf)
		require.NoError(t, err)
		assert.Equal(t, parts, back)
	})
}

func TestTemplateCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, TemplateCSV(&buf))

	parts, err := PartsFromCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, model.TemplateParts(), parts)
}
