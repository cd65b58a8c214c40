package analyzer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/helmcode/configlint-ai/pkg/llm"
	"github.com/helmcode/configlint-ai/pkg/model"
	"github.com/helmcode/configlint-ai/pkg/parser"
	"github.com/helmcode/configlint-ai/pkg/prompts"
)

// AnalysisError is the single failure type of Analyze. Its message embeds
// the underlying cause.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("failed to analyze code: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Analyzer turns a snippet into an AnalysisResult with one LLM call. It
// holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	llm    llm.LLM
	logger *zap.Logger
}

func NewWithLLM(l llm.LLM, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{llm: l, logger: logger}
}

// NewFromEnv builds the provider from the environment. A missing
// credential is returned here so callers can stop before serving anything.
func NewFromEnv(ctx context.Context, providerOverride, modelOverride string, logger *zap.Logger) (*Analyzer, error) {
	l, err := llm.CreateFromEnv(ctx, providerOverride, modelOverride)
	if err != nil {
		return nil, err
	}
	return NewWithLLM(l, logger), nil
}

// Name identifies the provider and model in use.
func (a *Analyzer) Name() string { return a.llm.Name() }

func (a *Analyzer) Analyze(ctx context.Context, source string, category model.Category) (result *model.AnalysisResult, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &AnalysisError{Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			a.logger.Warn("analysis failed",
				zap.String("category", string(category)),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
			return
		}
		a.logger.Info("analysis complete",
			zap.String("category", string(category)),
			zap.Bool("valid", result.IsValid),
			zap.Int("errors", len(result.Errors)),
			zap.Duration("elapsed", time.Since(start)))
	}()

	prompt := prompts.BuildAnalysisPrompt(source, category)

	rawResp, err := a.llm.Chat(ctx, prompt)
	if err != nil {
		return nil, &AnalysisError{Err: fmt.Errorf("LLM chat: %w", err)}
	}

	result, err = parser.ParseAnalysisResponse(rawResp)
	if err != nil {
		return nil, &AnalysisError{Err: fmt.Errorf("parse response: %w", err)}
	}
	return result, nil
}
