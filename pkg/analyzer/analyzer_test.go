package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/helmcode/configlint-ai/pkg/llm"
	"github.com/helmcode/configlint-ai/pkg/model"
	"github.com/helmcode/configlint-ai/pkg/parser"
)

type stubLLM struct {
	prompt string
	resp   string
	err    error
	panic  any
}

func (s *stubLLM) Name() string { return "stub" }

func (s *stubLLM) Chat(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.panic != nil {
		panic(s.panic)
	}
	return s.resp, s.err
}

func TestAnalyze(t *testing.T) {
	stub := &stubLLM{resp: "```json\n" + `{"isValid":false,"errors":[{"lineNumber":3,"error":"Bad indent","explanation":"..."}],"correctedCode":"fixed","bestPractices":["p1","p2"]}` + "\n```"}
	a := NewWithLLM(stub, zaptest.NewLogger(t))

	got, err := a.Analyze(context.Background(), "name: ci\non: push", model.CategoryGitHubActions)
	require.NoError(t, err)

	assert.Contains(t, stub.prompt, "name: ci\non: push")
	assert.Contains(t, stub.prompt, "GitHub Actions Workflow")
	assert.False(t, got.IsValid)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, 3, got.Errors[0].LineNumber)
	assert.Equal(t, "fixed", got.CorrectedCode)
	assert.Equal(t, "stub", a.Name())
}

func TestAnalyzeWrapsServiceFailure(t *testing.T) {
	cause := errors.New("connection reset by peer")
	a := NewWithLLM(&stubLLM{err: cause}, nil)

	got, err := a.Analyze(context.Background(), "x", model.CategoryDockerfile)
	assert.Nil(t, got)

	var aerr *AnalysisError
	require.ErrorAs(t, err, &aerr)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestAnalyzeWrapsMalformedResponse(t *testing.T) {
	a := NewWithLLM(&stubLLM{resp: `{"isValid":true,"errors":[],"bestPractices":[]}`}, nil)

	_, err := a.Analyze(context.Background(), "x", model.CategoryDockerfile)

	var aerr *AnalysisError
	require.ErrorAs(t, err, &aerr)
	assert.ErrorIs(t, err, parser.ErrMissingField)
	assert.Contains(t, err.Error(), "correctedCode")
}

func TestAnalyzeRecoversPanic(t *testing.T) {
	a := NewWithLLM(&stubLLM{panic: "boom"}, nil)

	got, err := a.Analyze(context.Background(), "x", model.CategoryTerraform)
	assert.Nil(t, got)

	var aerr *AnalysisError
	require.ErrorAs(t, err, &aerr)
	assert.Contains(t, err.Error(), "boom")
}

func TestNewFromEnvMissingCredential(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	_, err := NewFromEnv(context.Background(), "", "", nil)
	require.ErrorIs(t, err, llm.ErrMissingCredential)
}
