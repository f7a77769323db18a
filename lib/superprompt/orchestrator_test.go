package superprompt

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	backendfake "promptsync-backend/lib/ai/backend/backend-fake"
	"promptsync-backend/lib/enhance"
	"promptsync-backend/lib/history"
	historystore "promptsync-backend/lib/history/store"
	"promptsync-backend/lib/preprocess"
	"promptsync-backend/lib/questions"
	"promptsync-backend/lib/usage"
	usagestore "promptsync-backend/lib/usage/store"
	"promptsync-backend/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testEnv struct {
	orchestrator Provider
	backend      *backendfake.Fake
	usage        *usagestore.MemoryStore
	history      *historystore.MemoryStore
}

func newTestEnv(fake *backendfake.Fake) testEnv {
	usageStore := usagestore.NewMemoryInstance()
	usageStore.Put(models.UsageRecord{UserID: "u1", Tier: models.TierFree, LastUsageDate: "2000-01-01"})
	historyStore := historystore.NewMemoryInstance()
	governor := usage.NewHandler(usageStore, nil, usage.Config{Limits: usage.Limits{Free: 50, Premium: 999}})
	return testEnv{
		orchestrator: NewHandler(
			preprocess.NewHandler(fake),
			enhance.NewHandler(fake),
			questions.NewHandler(fake),
			governor,
			history.NewHandler(historyStore, history.Limits{}),
		),
		backend: fake,
		usage:   usageStore,
		history: historyStore,
	}
}

func blogRequest(targets ...models.TargetModel) models.GenerationRequest {
	return models.GenerationRequest{
		LazyPrompt: models.LazyPrompt{
			Text:    "help me write a blog post about dogs",
			Purpose: models.PurposeDrafting,
		},
		TargetModels: targets,
		Tier:         models.TierFree,
	}
}

func TestGenerateSuperPrompts(t *testing.T) {
	ctx := context.Background()

	t.Run("keys equal requested set check", func(t *testing.T) {
		env := newTestEnv(backendfake.Unreachable())
		catalog := models.TargetModelCatalog()
		for mask := 1; mask < 1<<len(catalog); mask++ {
			targets := []models.TargetModel{}
			for idx, m := range catalog {
				if mask&(1<<idx) != 0 {
					targets = append(targets, m)
				}
			}
			result, err := env.orchestrator.GenerateSuperPrompts(ctx, blogRequest().LazyPrompt, targets, models.TierFree, nil)
			require.NoError(t, err)
			require.Len(t, result, len(targets))
			for _, m := range targets {
				require.Contains(t, result, m)
				require.NotEmpty(t, result[m].Value)
			}
		}
	})
	t.Run("invalid target set check", func(t *testing.T) {
		env := newTestEnv(backendfake.Unreachable())
		lazy := blogRequest().LazyPrompt
		for _, targets := range [][]models.TargetModel{
			nil,
			{},
			{models.TargetClaude, "llama"},
			{models.TargetClaude, models.TargetClaude},
		} {
			result, err := env.orchestrator.GenerateSuperPrompts(ctx, lazy, targets, models.TierFree, nil)
			require.ErrorIs(t, err, ErrInvalidRequest)
			require.Nil(t, result)
		}
	})
	t.Run("unreachable backend blog scenario check", func(t *testing.T) {
		env := newTestEnv(backendfake.Unreachable())
		lazy := blogRequest().LazyPrompt
		targets := []models.TargetModel{models.TargetChatGPT, models.TargetClaude}
		first, err := env.orchestrator.GenerateSuperPrompts(ctx, lazy, targets, models.TierFree, nil)
		require.NoError(t, err)
		second, err := env.orchestrator.GenerateSuperPrompts(ctx, lazy, targets, models.TierFree, nil)
		require.NoError(t, err)
		require.Len(t, first, 2)
		for _, m := range targets {
			res := first[m]
			require.True(t, res.IsFallback())
			require.ErrorIs(t, res.Reason, enhance.ErrEnhancementUnavailable)
			for _, section := range []string{"Objective", "Key Requirements", "Quality Checklist", "Target Audience", "Content Structure"} {
				require.Contains(t, res.Value, "## "+section)
			}
			require.Equal(t, res.Value, second[m].Value)
		}
	})
	t.Run("one target failure does not abort others check", func(t *testing.T) {
		fake := &backendfake.Fake{
			EnhanceFunc: func(ctx context.Context, instruction string, variant models.BackendVariant) (string, error) {
				if strings.Contains(instruction, "Target model: Grok") {
					return "", errors.New("timeout")
				}
				return "enhanced prompt", nil
			},
		}
		env := newTestEnv(fake)
		result, err := env.orchestrator.GenerateSuperPrompts(ctx, blogRequest().LazyPrompt,
			[]models.TargetModel{models.TargetGrok, models.TargetClaude}, models.TierFree, nil)
		require.NoError(t, err)
		require.True(t, result[models.TargetGrok].IsFallback())
		require.False(t, result[models.TargetClaude].IsFallback())
		require.Equal(t, "enhanced prompt", result[models.TargetClaude].Value)
	})
	t.Run("preprocess runs once per request check", func(t *testing.T) {
		var classifyCalls atomic.Int32
		fake := &backendfake.Fake{
			ClassifyFunc: func(ctx context.Context, prompt string, variant models.BackendVariant) (models.PreprocessResult, error) {
				classifyCalls.Add(1)
				return models.PreprocessResult{}, errors.New("malformed")
			},
		}
		env := newTestEnv(fake)
		_, err := env.orchestrator.GenerateSuperPrompts(ctx, blogRequest().LazyPrompt, models.TargetModelCatalog(), models.TierFree, nil)
		require.NoError(t, err)
		require.Equal(t, int32(1), classifyCalls.Load())
	})
	t.Run("cancelled context check", func(t *testing.T) {
		started := make(chan struct{}, 4)
		fake := &backendfake.Fake{
			EnhanceFunc: func(ctx context.Context, instruction string, variant models.BackendVariant) (string, error) {
				started <- struct{}{}
				<-ctx.Done()
				return "", ctx.Err()
			},
		}
		env := newTestEnv(fake)
		cctx, cancel := context.WithCancel(ctx)
		go func() {
			<-started
			cancel()
		}()
		result, err := env.orchestrator.GenerateSuperPrompts(cctx, blogRequest().LazyPrompt, models.TargetModelCatalog(), models.TierFree, nil)
		require.ErrorIs(t, err, context.Canceled)
		require.Nil(t, result)
	})
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("full flow check", func(t *testing.T) {
		fake := &backendfake.Fake{
			EnhanceFunc: func(ctx context.Context, instruction string, variant models.BackendVariant) (string, error) {
				return "super prompt", nil
			},
			AskQuestionsFunc: func(ctx context.Context, lazyPrompt, artifact, systemInstruction string, variant models.BackendVariant) ([]string, error) {
				return []string{"Who reads it?", "How long?", "Which breed?", "Extra?"}, nil
			},
		}
		env := newTestEnv(fake)
		session, err := env.orchestrator.Generate(ctx, "u1", blogRequest(models.TargetClaude, models.TargetChatGPT))
		require.NoError(t, err)
		require.Len(t, session.Artifacts, 2)
		require.Equal(t, "super prompt", session.Artifacts[models.TargetClaude].Text)
		require.Equal(t, []string{"Who reads it?", "How long?", "Which breed?"}, session.Questions)
		require.False(t, session.QuestionsFallback)
		require.Equal(t, 1, session.Usage.DailyUsage)
		require.Equal(t, 49, session.Usage.Remaining)
		require.NotEmpty(t, session.HistoryID)
		require.Equal(t, models.DomainContent, session.Preprocess.Domain)
		require.Equal(t, 1, env.history.Len())
	})
	t.Run("questions use first target artifact check", func(t *testing.T) {
		var seen atomic.Value
		fake := &backendfake.Fake{
			EnhanceFunc: func(ctx context.Context, instruction string, variant models.BackendVariant) (string, error) {
				if strings.Contains(instruction, "Target model: Gemini") {
					return "gemini artifact", nil
				}
				return "other artifact", nil
			},
			AskQuestionsFunc: func(ctx context.Context, lazyPrompt, artifact, systemInstruction string, variant models.BackendVariant) ([]string, error) {
				seen.Store(artifact)
				return nil, errors.New("unparseable")
			},
		}
		env := newTestEnv(fake)
		session, err := env.orchestrator.Generate(ctx, "u1", blogRequest(models.TargetGemini, models.TargetClaude))
		require.NoError(t, err)
		require.Equal(t, "gemini artifact", seen.Load())
		require.True(t, session.QuestionsFallback)
		require.Equal(t, questions.DefaultQuestions().Questions, session.Questions)
	})
	t.Run("quota exceeded check", func(t *testing.T) {
		env := newTestEnv(backendfake.Unreachable())
		env.usage.Put(models.UsageRecord{UserID: "u1", Tier: models.TierFree, DailyUsage: 50, LastUsageDate: time.Now().UTC().Format(models.UsageDateLayout)})
		_, err := env.orchestrator.Generate(ctx, "u1", blogRequest(models.TargetClaude))
		require.ErrorIs(t, err, usage.ErrQuotaExceeded)
		require.Equal(t, int64(0), env.backend.Calls())
		require.Equal(t, 0, env.history.Len())
	})
	t.Run("unauthenticated check", func(t *testing.T) {
		env := newTestEnv(backendfake.Unreachable())
		_, err := env.orchestrator.Generate(ctx, "", blogRequest(models.TargetClaude))
		require.ErrorIs(t, err, ErrUnauthenticated)
		require.Equal(t, int64(0), env.backend.Calls())
		rec, _ := env.usage.Get(ctx, "u1")
		require.Equal(t, 0, rec.DailyUsage)
	})
	t.Run("invalid request check", func(t *testing.T) {
		env := newTestEnv(backendfake.Unreachable())
		_, err := env.orchestrator.Generate(ctx, "u1", blogRequest())
		require.ErrorIs(t, err, ErrInvalidRequest)
		_, err = env.orchestrator.Generate(ctx, "u1", blogRequest(models.TargetClaude, models.TargetClaude))
		require.ErrorIs(t, err, ErrInvalidRequest)
		req := blogRequest(models.TargetClaude)
		req.LazyPrompt.Text = "   "
		_, err = env.orchestrator.Generate(ctx, "u1", req)
		require.ErrorIs(t, err, ErrInvalidRequest)
		rec, _ := env.usage.Get(ctx, "u1")
		require.Equal(t, 0, rec.DailyUsage)
	})
	t.Run("history failure still returns session check", func(t *testing.T) {
		env := newTestEnv(backendfake.Unreachable())
		env.history.FailCreate = errors.New("db is down")
		session, err := env.orchestrator.Generate(ctx, "u1", blogRequest(models.TargetClaude))
		require.NoError(t, err)
		require.Empty(t, session.HistoryID)
		require.NotEmpty(t, session.Artifacts[models.TargetClaude].Text)
		require.Len(t, session.Questions, models.QuestionSetSize)
	})
	t.Run("tier comes from profile check", func(t *testing.T) {
		var variants []models.BackendVariant
		fake := &backendfake.Fake{
			EnhanceFunc: func(ctx context.Context, instruction string, variant models.BackendVariant) (string, error) {
				variants = append(variants, variant)
				return "ok", nil
			},
		}
		env := newTestEnv(fake)
		env.usage.Put(models.UsageRecord{UserID: "u1", Tier: models.TierPremium, LastUsageDate: "2000-01-01"})
		req := blogRequest(models.TargetClaude)
		req.Tier = models.TierFree
		session, err := env.orchestrator.Generate(ctx, "u1", req)
		require.NoError(t, err)
		require.Equal(t, models.TierPremium, session.Tier)
		require.Equal(t, []models.BackendVariant{models.VariantAdvanced}, variants)
	})
}

func TestImprove(t *testing.T) {
	ctx := context.Background()
	questionList := []string{"Who reads it?", "How long?", "Which breed?"}

	t.Run("answers reach instruction check", func(t *testing.T) {
		fake := &backendfake.Fake{
			EnhanceFunc: func(ctx context.Context, instruction string, variant models.BackendVariant) (string, error) {
				return "refined", nil
			},
		}
		env := newTestEnv(fake)
		session, err := env.orchestrator.Improve(ctx, "u1", blogRequest(models.TargetClaude), questionList,
			[]string{"Dog owners", "800 words", "Beagles"})
		require.NoError(t, err)
		require.Equal(t, "refined", session.Artifacts[models.TargetClaude].Text)
		require.Equal(t, 1, session.Usage.DailyUsage)
		instructions := fake.Instructions()
		require.Len(t, instructions, 1)
		require.Contains(t, instructions[0], "Beagles")
		require.Contains(t, instructions[0], "Which breed?")
	})
	t.Run("answer mismatch rejected before quota check", func(t *testing.T) {
		env := newTestEnv(backendfake.Unreachable())
		_, err := env.orchestrator.Improve(ctx, "u1", blogRequest(models.TargetClaude), questionList, []string{"only one"})
		require.ErrorIs(t, err, models.ErrAnswersMismatch)
		_, err = env.orchestrator.Improve(ctx, "u1", blogRequest(models.TargetClaude), questionList[:2], []string{"a", "b"})
		require.ErrorIs(t, err, models.ErrAnswersMismatch)
		rec, _ := env.usage.Get(ctx, "u1")
		require.Equal(t, 0, rec.DailyUsage)
		require.Equal(t, int64(0), env.backend.Calls())
	})
	t.Run("unauthenticated check", func(t *testing.T) {
		env := newTestEnv(backendfake.Unreachable())
		_, err := env.orchestrator.Improve(ctx, "", blogRequest(models.TargetClaude), questionList, []string{"a", "b", "c"})
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}
