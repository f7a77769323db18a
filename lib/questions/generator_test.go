package questions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	backendfake "promptsync-backend/lib/ai/backend/backend-fake"
	"promptsync-backend/models"
)

func askReturning(list []string, err error) *backendfake.Fake {
	return &backendfake.Fake{
		AskQuestionsFunc: func(ctx context.Context, lazyPrompt, artifact, systemInstruction string, variant models.BackendVariant) ([]string, error) {
			return list, err
		},
	}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("backend ok check", func(t *testing.T) {
		var gotInstruction string
		fake := &backendfake.Fake{
			AskQuestionsFunc: func(ctx context.Context, lazyPrompt, artifact, systemInstruction string, variant models.BackendVariant) ([]string, error) {
				gotInstruction = systemInstruction
				return []string{"Who reads it?", "How long?", "Which breed?", "Extra?"}, nil
			},
		}
		res := NewHandler(fake).Generate(ctx, "dogs blog", "# artifact", models.TierFree)
		require.False(t, res.IsFallback())
		require.Equal(t, []string{"Who reads it?", "How long?", "Which breed?"}, res.Value.Questions)
		require.Equal(t, SystemInstruction, gotInstruction)
	})
	t.Run("unreachable check", func(t *testing.T) {
		res := NewHandler(backendfake.Unreachable()).Generate(ctx, "dogs blog", "# artifact", models.TierFree)
		require.True(t, res.IsFallback())
		require.ErrorIs(t, res.Reason, ErrQuestionGenerationUnavailable)
		require.Equal(t, DefaultQuestions(), res.Value)
	})
	t.Run("too few questions check", func(t *testing.T) {
		res := NewHandler(askReturning([]string{"Only one?", " ", "only one?"}, nil)).Generate(ctx, "x", "y", models.TierPremium)
		require.True(t, res.IsFallback())
		require.Len(t, res.Value.Questions, models.QuestionSetSize)
	})
	t.Run("always three check", func(t *testing.T) {
		cases := [][]string{nil, {}, {"a?"}, {"a?", "b?"}, {"a?", "b?", "c?"}, {"a?", "b?", "c?", "d?", "e?"}}
		for _, list := range cases {
			res := NewHandler(askReturning(list, nil)).Generate(ctx, "x", "y", models.TierFree)
			require.Len(t, res.Value.Questions, models.QuestionSetSize)
		}
	})
	t.Run("default set is a copy check", func(t *testing.T) {
		set := DefaultQuestions()
		set.Questions[0] = "changed"
		require.NotEqual(t, "changed", DefaultQuestions().Questions[0])
	})
}
