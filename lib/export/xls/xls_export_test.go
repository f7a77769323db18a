package xlsexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"promptsync-backend/models"
	historyapimodels "promptsync-backend/models/api/history"
)

func TestExportHistoryList(t *testing.T) {
	list := []historyapimodels.HistoryItemView{
		{
			ID:           "1",
			LazyPrompt:   "help me write a blog post about dogs",
			Purpose:      models.PurposeDrafting,
			TargetModels: []models.TargetModel{models.TargetClaude, models.TargetGrok},
			Refined:      true,
			Tier:         models.TierFree,
			CreatedAt:    time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC),
		},
	}

	t.Run("content check", func(t *testing.T) {
		buf, err := NewHandler().ExportHistoryList(list)
		require.NoError(t, err)
		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()

		header, err := f.GetCellValue("История", "A1")
		require.NoError(t, err)
		require.Equal(t, "Дата", header)
		prompt, err := f.GetCellValue("История", "B2")
		require.NoError(t, err)
		require.Equal(t, "help me write a blog post about dogs", prompt)
		targets, err := f.GetCellValue("История", "D2")
		require.NoError(t, err)
		require.Equal(t, "Claude, Grok", targets)
		refined, err := f.GetCellValue("История", "F2")
		require.NoError(t, err)
		require.Equal(t, "Да", refined)
	})
	t.Run("empty list check", func(t *testing.T) {
		buf, err := NewHandler().ExportHistoryList(nil)
		require.NoError(t, err)
		require.NotZero(t, buf.Len())
	})
}
