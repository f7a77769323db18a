package pdfexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	jsonexport "promptsync-backend/lib/export/json-export"
	"promptsync-backend/models"
)

func TestGenerateSession(t *testing.T) {
	snapshot := jsonexport.Snapshot{
		LazyPrompt:   "help me write a blog post about dogs",
		Purpose:      models.PurposeDrafting,
		TargetModels: []models.TargetModel{models.TargetClaude, models.TargetGemini},
		SuperPrompts: map[models.TargetModel]string{
			models.TargetClaude: "# Content Creation Super Prompt\n\n## Objective 🎯\n> States the outcome.\n\n- [ ] Item",
			models.TargetGemini: "Plain text with ünïcode and кириллица",
		},
		Tier: models.TierPremium,
	}

	t.Run("document check", func(t *testing.T) {
		body, err := GenerateSession(snapshot, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	})
	t.Run("sanitize check", func(t *testing.T) {
		require.Equal(t, "## Objective ", sanitize("## Objective 🎯"))
		require.Equal(t, "Quality ", sanitize("Quality ✅"))
	})
	t.Run("file name check", func(t *testing.T) {
		require.Equal(t, "promptsync-super-prompts-20260102-030405.pdf", FileName(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	})
}
