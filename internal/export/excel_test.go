package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wilding96/baby-tracker/internal/models"
)

func intPtr(v int) *int { return &v }

func TestWorkbook(t *testing.T) {
	start := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	logs := []models.LogRecord{
		{
			Type:      models.LogTypeFeeding,
			StartTime: start,
			CreatedAt: start,
			Details:   &models.LogDetails{SubType: models.FeedingFormula, Amount: intPtr(120)},
		},
		{
			Type:      models.LogTypeSleep,
			StartTime: start,
			EndTime:   &end,
			CreatedAt: end,
			Details:   &models.LogDetails{DurationMinutes: intPtr(90)},
		},
		{
			Type:      models.LogTypeDiaper,
			StartTime: start,
			CreatedAt: start,
			Details:   &models.LogDetails{SubType: models.DiaperDirty},
		},
	}

	data, err := Workbook("Beanie", logs)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 records

	assert.Equal(t, "Type", rows[0][0])
	assert.Equal(t, "feeding", rows[1][0])
	assert.Equal(t, "formula", rows[1][1])
	assert.Equal(t, "120", rows[1][4])
	assert.Equal(t, "sleep", rows[2][0])
	assert.Equal(t, "90", rows[2][5])
	assert.Equal(t, "diaper", rows[3][0])
	assert.Equal(t, "dirty", rows[3][1])
}

func TestWorkbookEmpty(t *testing.T) {
	data, err := Workbook("Beanie", nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
