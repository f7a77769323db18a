package preprocess

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	backendfake "promptsync-backend/lib/ai/backend/backend-fake"
	"promptsync-backend/models"
)

func TestHeuristic(t *testing.T) {
	t.Run("content domain check", func(t *testing.T) {
		res := Heuristic("help me write a blog post about dogs")
		require.Equal(t, models.DomainContent, res.Domain)
		require.Equal(t, string(models.IntentInstruct), res.Intent)
		require.Equal(t, models.ComplexitySimple, res.Complexity)
		require.Equal(t, "Help me write a blog post about dogs", res.CorrectedPrompt)
		require.Equal(t, []string{
			"Objective", "Key Requirements", "Quality Checklist",
			"Target Audience", "Content Structure", "Key Messages", "Style Guidelines", "Research Requirements",
		}, res.SuggestedSections)
		require.Len(t, res.GrammarCorrections, 1)
		for _, s := range res.SuggestedSections {
			require.NotEmpty(t, res.SectionRationale[s], s)
		}
	})
	t.Run("software domain check", func(t *testing.T) {
		res := Heuristic("Fix the bug in my app code")
		require.Equal(t, models.DomainSoftware, res.Domain)
		require.Contains(t, res.SuggestedSections, "Testing Strategy")
		require.Empty(t, res.GrammarCorrections)
	})
	t.Run("substring is not a keyword check", func(t *testing.T) {
		res := Heuristic("I am happy today")
		require.Equal(t, models.DomainGeneral, res.Domain)
		require.Equal(t, BaselineSections, res.SuggestedSections)
		require.Equal(t, string(models.IntentInform), res.Intent)
	})
	t.Run("research domain check", func(t *testing.T) {
		res := Heuristic("why do cats purr? research and study the evidence")
		require.Equal(t, models.DomainResearch, res.Domain)
		require.Equal(t, string(models.IntentExplain), res.Intent)
		require.Equal(t, "Why do cats purr? Research and study the evidence", res.CorrectedPrompt)
	})
	t.Run("complexity thresholds check", func(t *testing.T) {
		require.Equal(t, models.ComplexitySimple, Heuristic(strings.Repeat("word ", 20)).Complexity)
		require.Equal(t, models.ComplexityModerate, Heuristic(strings.Repeat("word ", 21)).Complexity)
		require.Equal(t, models.ComplexityModerate, Heuristic(strings.Repeat("word ", 100)).Complexity)
		require.Equal(t, models.ComplexityComplex, Heuristic(strings.Repeat("word ", 101)).Complexity)
		require.Equal(t, models.ComplexityComplex, Heuristic("design a microservice architecture").Complexity)
		require.Equal(t, models.ComplexityComplex, Heuristic("Optimize my query").Complexity)
	})
}

func TestNormalizeGrammar(t *testing.T) {
	t.Run("whitespace and sentences check", func(t *testing.T) {
		require.Equal(t, "Hello world. How are you? Fine!", NormalizeGrammar("  hello   world.  how are you?\tfine! "))
	})
	t.Run("no semantic rewrite check", func(t *testing.T) {
		require.Equal(t, "Use node.js and v2.5 here", NormalizeGrammar("use node.js and v2.5 here"))
	})
	t.Run("idempotent check", func(t *testing.T) {
		once := NormalizeGrammar("make it. better")
		require.Equal(t, once, NormalizeGrammar(once))
	})
}

func TestPreprocess(t *testing.T) {
	ctx := context.Background()
	t.Run("fallback check", func(t *testing.T) {
		h := NewHandler(backendfake.Unreachable())
		res := h.Preprocess(ctx, "help me write a blog post about dogs", models.TierFree)
		require.True(t, res.IsFallback())
		require.ErrorIs(t, res.Reason, ErrClassificationUnavailable)
		require.Equal(t, Heuristic("help me write a blog post about dogs"), res.Value)
	})
	t.Run("remote ok check", func(t *testing.T) {
		var gotVariant models.BackendVariant
		fake := &backendfake.Fake{
			ClassifyFunc: func(ctx context.Context, prompt string, variant models.BackendVariant) (models.PreprocessResult, error) {
				gotVariant = variant
				return models.PreprocessResult{
					CorrectedPrompt:   "Write a haiku about rain.",
					Domain:            models.ParseDomain("poetry"),
					DomainLabel:       "poetry",
					Intent:            "instruct",
					Complexity:        models.ComplexitySimple,
					SuggestedSections: []string{"Imagery", "Objective"},
				}, nil
			},
		}
		res := NewHandler(fake).Preprocess(ctx, "write a haiku about rain", models.TierPremium)
		require.False(t, res.IsFallback())
		require.Equal(t, models.VariantAdvanced, gotVariant)
		require.Equal(t, models.DomainGeneral, res.Value.Domain)
		require.Equal(t, "poetry", res.Value.DomainLabel)
		require.Equal(t, []string{"Objective", "Key Requirements", "Quality Checklist", "Imagery"}, res.Value.SuggestedSections)
		require.NotNil(t, res.Value.GrammarCorrections)
		require.NotEmpty(t, res.Value.SectionRationale["Objective"])
	})
	t.Run("remote error check", func(t *testing.T) {
		fake := &backendfake.Fake{
			ClassifyFunc: func(ctx context.Context, prompt string, variant models.BackendVariant) (models.PreprocessResult, error) {
				return models.PreprocessResult{}, errors.New("malformed")
			},
		}
		res := NewHandler(fake).Preprocess(ctx, "analyze sales data", models.TierFree)
		require.True(t, res.IsFallback())
		require.Equal(t, models.DomainResearch, res.Value.Domain)
	})
}
