package backend

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	llmclient "promptsync-backend/lib/ai/llm-client"
	"promptsync-backend/models"
	dbmodels "promptsync-backend/models/db"
)

type fakeClient struct {
	answer string
	err    error
	delay  time.Duration
	last   llmclient.Request
}

func (f *fakeClient) Generate(ctx context.Context, req llmclient.Request) (string, error) {
	f.last = req
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.answer, f.err
}

func (f *fakeClient) Name() dbmodels.AiName { return "fake" }

func (f *fakeClient) ModelName(variant models.BackendVariant) string { return "fake-" + string(variant) }

type fakeLogStore struct {
	mu   sync.Mutex
	recs []dbmodels.AiLog
}

func (s *fakeLogStore) Save(rec dbmodels.AiLog) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return "id", nil
}

func (s *fakeLogStore) DeleteOlderThan(ctx context.Context, moment time.Time) (int64, error) { return 0, nil }

func TestClassify(t *testing.T) {
	t.Run("parse check", func(t *testing.T) {
		client := &fakeClient{answer: "```json\n" + `{
			"correctedPrompt": "Write a blog post about dogs.",
			"domain": "Content Creation",
			"intent": "instruct",
			"complexity": "Simple",
			"suggestedSections": ["Objective", " Target Audience ", ""],
			"grammarCorrections": [{"original": "write", "corrected": "Write"}],
			"visualIndicators": {"sectionReasons": {"Target Audience": "readers matter"}}
		}` + "\n```"}
		logs := &fakeLogStore{}
		h := NewHandler(client, logs, Timeouts{Classify: time.Second}, nil)
		res, err := h.Classify(context.Background(), "write blog post about dogs", models.VariantStandard)
		require.NoError(t, err)
		require.Equal(t, models.DomainContent, res.Domain)
		require.Equal(t, "Content Creation", res.DomainLabel)
		require.Equal(t, models.ComplexitySimple, res.Complexity)
		require.Equal(t, []string{"Objective", "Target Audience"}, res.SuggestedSections)
		require.Equal(t, "readers matter", res.SectionRationale["Target Audience"])
		require.True(t, client.last.JSONAnswer)
		require.Len(t, logs.recs, 1)
		require.Equal(t, dbmodels.AiClassifyType, logs.recs[0].ReqestType)
	})
	t.Run("malformed check", func(t *testing.T) {
		h := NewHandler(&fakeClient{answer: "I think this is about dogs"}, nil, Timeouts{}, nil)
		_, err := h.Classify(context.Background(), "dogs", models.VariantStandard)
		require.Error(t, err)
	})
	t.Run("unknown complexity check", func(t *testing.T) {
		h := NewHandler(&fakeClient{answer: `{"correctedPrompt": "x", "complexity": "huge"}`}, nil, Timeouts{}, nil)
		_, err := h.Classify(context.Background(), "x", models.VariantStandard)
		require.Error(t, err)
	})
	t.Run("timeout check", func(t *testing.T) {
		logs := &fakeLogStore{}
		h := NewHandler(&fakeClient{answer: "{}", delay: time.Second}, logs, Timeouts{Classify: 20 * time.Millisecond}, nil)
		start := time.Now()
		_, err := h.Classify(context.Background(), "x", models.VariantStandard)
		require.Error(t, err)
		require.Less(t, time.Since(start), 500*time.Millisecond)
		require.Len(t, logs.recs, 1)
		require.NotEmpty(t, logs.recs[0].Error)
	})
}

func TestParseQuestionsAnswer(t *testing.T) {
	t.Run("json array check", func(t *testing.T) {
		q, err := ParseQuestionsAnswer(`["Who reads it?", "How long?", "Which tone?", "Extra?"]`)
		require.NoError(t, err)
		require.Equal(t, []string{"Who reads it?", "How long?", "Which tone?"}, q)
	})
	t.Run("wrapped object check", func(t *testing.T) {
		q, err := ParseQuestionsAnswer(`{"questions": ["A?", "B?", "C?"]}`)
		require.NoError(t, err)
		require.Len(t, q, 3)
	})
	t.Run("plain lines check", func(t *testing.T) {
		q, err := ParseQuestionsAnswer("Here are my questions:\n1. Who is the audience?\n- What length do you need?\n* Any examples to follow?\nThanks")
		require.NoError(t, err)
		require.Equal(t, []string{"Who is the audience?", "What length do you need?", "Any examples to follow?"}, q)
	})
	t.Run("no questions check", func(t *testing.T) {
		_, err := ParseQuestionsAnswer("nothing to ask")
		require.Error(t, err)
	})
	t.Run("think tag check", func(t *testing.T) {
		q, err := ParseQuestionsAnswer(`<think>hmm?</think>["A?", "B?", "C?"]`)
		require.NoError(t, err)
		require.Equal(t, []string{"A?", "B?", "C?"}, q)
	})
}

func TestEnhance(t *testing.T) {
	t.Run("error passthrough check", func(t *testing.T) {
		h := NewHandler(&fakeClient{err: errors.New("boom")}, nil, Timeouts{}, nil)
		_, err := h.Enhance(context.Background(), "instruction", models.VariantAdvanced)
		require.Error(t, err)
	})
	t.Run("variant check", func(t *testing.T) {
		client := &fakeClient{answer: "  # Super prompt  "}
		h := NewHandler(client, nil, Timeouts{}, nil)
		text, err := h.Enhance(context.Background(), "instruction", models.VariantAdvanced)
		require.NoError(t, err)
		require.Equal(t, "# Super prompt", text)
		require.Equal(t, models.VariantAdvanced, client.last.Variant)
		require.Equal(t, 4096, client.last.MaxTokens)
	})
}

func TestParseAnalyzeAnswer(t *testing.T) {
	a, err := ParseAnalyzeAnswer(`{"complexity": "Complex", "suggestedModels": ["claude"], "estimatedTokens": -4}`)
	require.NoError(t, err)
	require.Equal(t, models.ComplexityComplex, a.Complexity)
	require.Equal(t, 0, a.EstimatedTokens)
}
