package jsonexport

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"promptsync-backend/models"
)

func TestExport(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	exportedAt := time.Date(2026, 3, 1, 15, 4, 5, 123_000_000, moscow)
	snapshot := Snapshot{
		LazyPrompt:   "help me write a blog post about dogs",
		Purpose:      models.PurposeDrafting,
		TargetModels: []models.TargetModel{models.TargetClaude, models.TargetChatGPT},
		SuperPrompts: map[models.TargetModel]string{
			models.TargetClaude:  "claude prompt",
			models.TargetChatGPT: "chatgpt prompt",
		},
		Tier: models.TierFree,
	}

	t.Run("field order check", func(t *testing.T) {
		body, err := Export(snapshot, exportedAt)
		require.NoError(t, err)
		text := string(body)
		last := -1
		for _, field := range []string{"lazyPrompt", "purposeType", "selectedTargetModels", "generatedSuperPrompts", "userTier", "exportedAt"} {
			pos := strings.Index(text, `"`+field+`"`)
			require.Greater(t, pos, last, field)
			last = pos
		}
		require.True(t, strings.HasPrefix(text, "{\n  \"lazyPrompt\""))
	})
	t.Run("timestamp check", func(t *testing.T) {
		body, err := Export(snapshot, exportedAt)
		require.NoError(t, err)
		doc := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(body, &doc))
		require.Equal(t, "2026-03-01T12:04:05.123Z", doc["exportedAt"])
		require.Equal(t, "drafting", doc["purposeType"])
		require.Equal(t, []interface{}{"claude", "chatgpt"}, doc["selectedTargetModels"])
		require.Equal(t, "free", doc["userTier"])
	})
	t.Run("exact document check", func(t *testing.T) {
		body, err := Export(Snapshot{
			LazyPrompt:   "dogs & cats <3",
			Purpose:      models.PurposeDrafting,
			TargetModels: []models.TargetModel{models.TargetGrok, models.TargetChatGPT},
			SuperPrompts: map[models.TargetModel]string{
				models.TargetChatGPT: "a < b && c > d",
				models.TargetGrok:    "## 🎯 Objective\n> States the single outcome",
			},
			Tier: models.TierPremium,
		}, exportedAt)
		require.NoError(t, err)
		expected := `{
  "lazyPrompt": "dogs & cats <3",
  "purposeType": "drafting",
  "selectedTargetModels": [
    "grok",
    "chatgpt"
  ],
  "generatedSuperPrompts": {
    "grok": "## 🎯 Objective\n> States the single outcome",
    "chatgpt": "a < b && c > d"
  },
  "userTier": "premium",
  "exportedAt": "2026-03-01T12:04:05.123Z"
}`
		require.Equal(t, expected, string(body))
	})
	t.Run("empty prompts check", func(t *testing.T) {
		body, err := Export(Snapshot{LazyPrompt: "x", TargetModels: []models.TargetModel{models.TargetClaude}}, exportedAt)
		require.NoError(t, err)
		require.Contains(t, string(body), `"generatedSuperPrompts": {},`)
	})
	t.Run("file name check", func(t *testing.T) {
		require.Equal(t, "promptsync-super-prompts-1772366645123.json", FileName(exportedAt))
	})
}
