package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/part-monitoring/internal/model"
)

func TestEntitiesToModels(t *testing.T) {
	t.Parallel()

	valid := func(partNumber string) PartEntity {
		return PartEntity{
			PartNumber:       partNumber,
			PartCode:         "CODE001",
			MachineName:      "Mesin A",
			Material:         "Steel",
			InstallDate:      "2024-01-01",
			RecommendedUsage: 1000,
			Category:         string(model.CategoryMechanical),
		}
	}

	t.Run("keeps stored order", func(t *testing.T) {
		t.Parallel()

		parts, err := EntitiesToModels([]PartEntity{valid("P2"), valid("P1")})
		require.NoError(t, err)
		require.Len(t, parts, 2)
		assert.Equal(t, "P2", parts[0].PartNumber)
		assert.Equal(t, "P1", parts[1].PartNumber)
		assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), parts[1].InstallDate)
	})

	tests := []struct {
		name    string
		ents    func() []PartEntity
		wantErr error
	}{
		{
			name:    "repeated part number",
			ents:    func() []PartEntity { return []PartEntity{valid("P1"), valid("P2"), valid("P1")} },
			wantErr: errDuplicateEntity,
		},
		{
			name: "empty part code",
			ents: func() []PartEntity {
				e := valid("P1")
				e.PartCode = ""
				return []PartEntity{e}
			},
			wantErr: errMissingField,
		},
		{
			name: "negative usage",
			ents: func() []PartEntity {
				e := valid("P1")
				e.RecommendedUsage = -1
				return []PartEntity{e}
			},
			wantErr: errBadEntity,
		},
		{
			name: "unknown category",
			ents: func() []PartEntity {
				e := valid("P1")
				e.Category = "Hydraulic"
				return []PartEntity{e}
			},
			wantErr: errBadEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parts, err := EntitiesToModels(tt.ents())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, parts)
		})
	}
}
