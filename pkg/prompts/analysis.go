package prompts

import (
	"fmt"

	"github.com/helmcode/configlint-ai/pkg/model"
)

// BuildAnalysisPrompt embeds the snippet and the output contract into a
// single instruction for the model.
func BuildAnalysisPrompt(source string, category model.Category) string {
	return fmt.Sprintf(`You are an expert DevOps engineer reviewing a %[1]s file.

Analyze the following %[1]s code for syntax errors, invalid keys or values,
and deviations from common best practices.

Code:
%[2]s
%[3]s
%[2]s

Respond in JSON format with exactly this structure:
{
  "isValid": true or false,
  "errors": [
    {
      "lineNumber": 1-based line number of the problem,
      "error": "short label of the error",
      "explanation": "why it is wrong and how to fix it"
    }
  ],
  "correctedCode": "the complete corrected file",
  "bestPractices": ["2-3 short best practice suggestions"]
}

Rules:
- If the code has no errors, set "isValid" to true and return an empty "errors" array.
- "correctedCode" must contain the full file, not a diff.
- Do not wrap the JSON in markdown.`, category.Label(), "```", source)
}
