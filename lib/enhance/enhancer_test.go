package enhance

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	backendfake "promptsync-backend/lib/ai/backend/backend-fake"
	"promptsync-backend/lib/preprocess"
	"promptsync-backend/models"
)

func TestSynthesize(t *testing.T) {
	pre := preprocess.Heuristic("help me write a blog post about dogs")

	t.Run("deterministic check", func(t *testing.T) {
		require.Equal(t, Synthesize(pre), Synthesize(pre))
	})
	t.Run("sections and checklist check", func(t *testing.T) {
		text := Synthesize(pre)
		require.True(t, strings.HasPrefix(text, "# Content Creation Super Prompt\n"))
		for _, s := range pre.SuggestedSections {
			require.Contains(t, text, "## "+s+" ")
		}
		require.Contains(t, text, "> "+pre.SectionRationale["Target Audience"])
		require.Contains(t, text, "- [ ] SEO considerations are addressed")
		require.Equal(t, 1, strings.Count(text, "## Quality Checklist"))
		require.Contains(t, text, "Help me write a blog post about dogs")
	})
	t.Run("generic checklist check", func(t *testing.T) {
		text := Synthesize(models.PreprocessResult{
			CorrectedPrompt: "Plan a trip",
			Domain:          models.ParseDomain("travel"),
			Complexity:      models.ComplexitySimple,
		})
		require.Contains(t, text, "# General Super Prompt")
		require.Contains(t, text, "## Objective 🎯")
		require.Contains(t, text, "- [ ] Success metrics are defined")
		require.Equal(t, 5, strings.Count(text, "- [ ] "))
	})
	t.Run("checklist appended when missing check", func(t *testing.T) {
		text := Synthesize(models.PreprocessResult{
			Domain:            models.DomainSoftware,
			SuggestedSections: []string{"Custom Part"},
		})
		require.Contains(t, text, "## Custom Part 📌")
		require.Contains(t, text, "[Content for Custom Part]")
		require.Contains(t, text, "## Quality Checklist ✅")
		require.Contains(t, text, "- [ ] Security measures are included")
	})
}

func TestBuildInstruction(t *testing.T) {
	pre := preprocess.Heuristic("build a todo app")
	t.Run("content check", func(t *testing.T) {
		text, err := BuildInstruction(pre, models.PurposeCode, models.TargetClaude, nil)
		require.NoError(t, err)
		require.Contains(t, text, "Build a todo app")
		require.Contains(t, text, "Domain: software_development")
		require.Contains(t, text, "- Testing Strategy: ")
		require.Contains(t, text, "Target model: Claude")
		require.Contains(t, text, GuidanceFor(models.TargetClaude, models.PurposeCode))
		require.NotContains(t, text, "ADDITIONAL CONTEXT")
	})
	t.Run("improvement check", func(t *testing.T) {
		ic, err := models.NewImprovementContext(
			[]string{"Which platform?", "Which tone?", "Any examples?"},
			[]string{"iOS", "", "Things app"},
		)
		require.NoError(t, err)
		text, err := BuildInstruction(pre, models.PurposeCode, models.TargetGrok, ic)
		require.NoError(t, err)
		require.Contains(t, text, "ADDITIONAL CONTEXT FROM THE USER")
		require.Contains(t, text, "- Q: Which platform?\n  A: iOS")
		require.Contains(t, text, "A: Things app")
		require.NotContains(t, text, "Which tone?")
	})
}

func TestGuidanceFor(t *testing.T) {
	require.Equal(t, GuidanceFor(models.TargetGemini, models.PurposeStandard), GuidanceFor(models.TargetGemini, "unknown"))
	require.Equal(t, defaultGuidance, GuidanceFor("mistral", models.PurposeCode))
	for _, m := range models.TargetModelCatalog() {
		require.NotEqual(t, defaultGuidance, GuidanceFor(m, models.PurposeDrafting))
	}
}

func TestEnhance(t *testing.T) {
	ctx := context.Background()
	pre := preprocess.Heuristic("help me write a blog post about dogs")

	t.Run("backend ok check", func(t *testing.T) {
		fake := &backendfake.Fake{
			EnhanceFunc: func(ctx context.Context, instruction string, variant models.BackendVariant) (string, error) {
				require.Equal(t, models.VariantAdvanced, variant)
				return "  # Dogs blog super prompt  ", nil
			},
		}
		res := NewHandler(fake).Enhance(ctx, pre, models.PurposeDrafting, models.TargetChatGPT, models.TierPremium, nil)
		require.False(t, res.IsFallback())
		require.Equal(t, "# Dogs blog super prompt", res.Value)
	})
	t.Run("unreachable check", func(t *testing.T) {
		h := NewHandler(backendfake.Unreachable())
		first := h.Enhance(ctx, pre, models.PurposeDrafting, models.TargetChatGPT, models.TierFree, nil)
		second := h.Enhance(ctx, pre, models.PurposeDrafting, models.TargetChatGPT, models.TierFree, nil)
		require.True(t, first.IsFallback())
		require.ErrorIs(t, first.Reason, ErrEnhancementUnavailable)
		require.Equal(t, Synthesize(pre), first.Value)
		require.Equal(t, first.Value, second.Value)
	})
	t.Run("empty answer check", func(t *testing.T) {
		fake := &backendfake.Fake{
			EnhanceFunc: func(ctx context.Context, instruction string, variant models.BackendVariant) (string, error) {
				return " \n ", nil
			},
		}
		res := NewHandler(fake).Enhance(ctx, pre, models.PurposeDrafting, models.TargetGrok, models.TierFree, nil)
		require.True(t, res.IsFallback())
		require.NotEmpty(t, res.Value)
	})
	t.Run("nil backend check", func(t *testing.T) {
		res := NewHandler(nil).Enhance(ctx, pre, models.PurposeDrafting, models.TargetGrok, models.TierFree, nil)
		require.True(t, res.IsFallback())
	})
}
