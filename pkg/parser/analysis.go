package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/helmcode/configlint-ai/pkg/model"
)

var (
	ErrEmptyResponse = errors.New("empty response from model")
	ErrMissingField  = errors.New("missing required field")
)

var fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z0-9_-]*[ \t]*\r?\n?(.*?)\r?\n?```$")

// ParseAnalysisResponse turns the raw model output into an AnalysisResult.
// Every field of the contract must be present; null arrays count as empty.
func ParseAnalysisResponse(raw string) (*model.AnalysisResult, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	result := &model.AnalysisResult{
		Errors:        []model.ErrorDetail{},
		BestPractices: []string{},
	}

	if err := decodeRequired(fields, "isValid", &result.IsValid); err != nil {
		return nil, err
	}
	if err := decodeRequired(fields, "correctedCode", &result.CorrectedCode); err != nil {
		return nil, err
	}

	var entries []errorEntry
	if err := decodeList(fields, "errors", &entries); err != nil {
		return nil, err
	}
	for i, e := range entries {
		detail, err := e.detail()
		if err != nil {
			return nil, fmt.Errorf("errors[%d]: %w", i, err)
		}
		result.Errors = append(result.Errors, detail)
	}

	if err := decodeList(fields, "bestPractices", &result.BestPractices); err != nil {
		return nil, err
	}
	if result.BestPractices == nil {
		result.BestPractices = []string{}
	}

	return result, nil
}

type errorEntry struct {
	LineNumber  *int    `json:"lineNumber"`
	Error       *string `json:"error"`
	Explanation *string `json:"explanation"`
}

func (e errorEntry) detail() (model.ErrorDetail, error) {
	switch {
	case e.LineNumber == nil:
		return model.ErrorDetail{}, fmt.Errorf("%w: lineNumber", ErrMissingField)
	case e.Error == nil:
		return model.ErrorDetail{}, fmt.Errorf("%w: error", ErrMissingField)
	case e.Explanation == nil:
		return model.ErrorDetail{}, fmt.Errorf("%w: explanation", ErrMissingField)
	case *e.LineNumber < 1:
		return model.ErrorDetail{}, fmt.Errorf("lineNumber must be positive, got %d", *e.LineNumber)
	}
	return model.ErrorDetail{
		LineNumber:  *e.LineNumber,
		Error:       *e.Error,
		Explanation: *e.Explanation,
	}, nil
}

func decodeRequired(fields map[string]json.RawMessage, name string, dst any) error {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	return nil
}

func decodeList(fields map[string]json.RawMessage, name string, dst any) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	if isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// stripFences removes a markdown code fence such as ```json ... ``` wrapping
// the whole payload. Fences inside the payload are left alone.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}
