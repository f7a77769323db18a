package backendfake

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"promptsync-backend/lib/ai/backend"
	"promptsync-backend/models"
)

var ErrUnreachable = errors.New("генеративный бэкенд недоступен")

// Fake настраиваемый бэкенд для тестов. Пустые функции означают недоступный бэкенд.
type Fake struct {
	ClassifyFunc     func(ctx context.Context, prompt string, variant models.BackendVariant) (models.PreprocessResult, error)
	EnhanceFunc      func(ctx context.Context, instruction string, variant models.BackendVariant) (string, error)
	AskQuestionsFunc func(ctx context.Context, lazyPrompt, artifact, systemInstruction string, variant models.BackendVariant) ([]string, error)
	AnalyzeFunc      func(ctx context.Context, prompt string, variant models.BackendVariant) (backend.AnalyzeAnswer, error)

	calls        atomic.Int64
	mu           sync.Mutex
	instructions []string
}

// Unreachable бэкенд, у которого все вызовы завершаются ошибкой
func Unreachable() *Fake {
	return &Fake{}
}

func (f *Fake) Calls() int64 {
	return f.calls.Load()
}

func (f *Fake) Instructions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.instructions))
	copy(out, f.instructions)
	return out
}

func (f *Fake) Classify(ctx context.Context, prompt string, variant models.BackendVariant) (models.PreprocessResult, error) {
	f.calls.Add(1)
	if f.ClassifyFunc == nil {
		return models.PreprocessResult{}, ErrUnreachable
	}
	return f.ClassifyFunc(ctx, prompt, variant)
}

func (f *Fake) Enhance(ctx context.Context, instruction string, variant models.BackendVariant) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.instructions = append(f.instructions, instruction)
	f.mu.Unlock()
	if f.EnhanceFunc == nil {
		return "", ErrUnreachable
	}
	return f.EnhanceFunc(ctx, instruction, variant)
}

func (f *Fake) AskQuestions(ctx context.Context, lazyPrompt, artifact, systemInstruction string, variant models.BackendVariant) ([]string, error) {
	f.calls.Add(1)
	if f.AskQuestionsFunc == nil {
		return nil, ErrUnreachable
	}
	return f.AskQuestionsFunc(ctx, lazyPrompt, artifact, systemInstruction, variant)
}

func (f *Fake) Analyze(ctx context.Context, prompt string, variant models.BackendVariant) (backend.AnalyzeAnswer, error) {
	f.calls.Add(1)
	if f.AnalyzeFunc == nil {
		return backend.AnalyzeAnswer{}, ErrUnreachable
	}
	return f.AnalyzeFunc(ctx, prompt, variant)
}
