package model

// AnalysisRequest is what the user submits for one analysis run.
type AnalysisRequest struct {
	Source   string   `json:"source"`
	Category Category `json:"category"`
}

// AnalysisResult is the structured verdict returned by the model.
type AnalysisResult struct {
	IsValid       bool          `json:"isValid" yaml:"isValid"`
	Errors        []ErrorDetail `json:"errors" yaml:"errors"`
	CorrectedCode string        `json:"correctedCode" yaml:"correctedCode"`
	BestPractices []string      `json:"bestPractices" yaml:"bestPractices"`
}

// ErrorDetail is one issue reported against a 1-based line of the snippet.
type ErrorDetail struct {
	LineNumber  int    `json:"lineNumber" yaml:"lineNumber"`
	Error       string `json:"error" yaml:"error"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// MissingDetails reports the model flagging the snippet as invalid
// without naming any specific error.
func (r *AnalysisResult) MissingDetails() bool {
	return r != nil && !r.IsValid && len(r.Errors) == 0
}
