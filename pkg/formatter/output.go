package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/configlint-ai/pkg/controller"
	"github.com/helmcode/configlint-ai/pkg/model"
)

// Formats accepted by DisplayResults.
var Formats = []string{"human", "json", "yaml"}

// DisplayResults writes the analysis result to w in the given format.
func DisplayResults(w io.Writer, result *model.AnalysisResult, category model.Category, format string) error {
	switch format {
	case "json":
		return displayJSON(w, result)
	case "yaml":
		return displayYAML(w, result)
	case "human", "":
		displayHuman(w, result, category)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

func displayJSON(w io.Writer, result *model.AnalysisResult) error {
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, result *model.AnalysisResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return err
	}
	return enc.Close()
}

func displayHuman(w io.Writer, result *model.AnalysisResult, category model.Category) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)

	if result.MissingDetails() {
		yellow.Fprintln(w, "⚠️  "+controller.AdvisoryMessage)
		fmt.Fprintln(w)
	}

	if result.IsValid && len(result.Errors) == 0 {
		green.Fprintf(w, "✅ Looks good! No errors were found in your %s.\n", category.Label())
		fmt.Fprintln(w)
		printBestPractices(w, cyan, result.BestPractices)
		printFooter(w)
		return
	}

	if len(result.Errors) > 0 {
		red.Fprintf(w, "❌ ERRORS FOUND (%d):\n", len(result.Errors))
		for i, e := range result.Errors {
			fmt.Fprintf(w, "   %d. %s %s\n", i+1, color.YellowString("Line %d:", e.LineNumber), e.Error)
			if e.Explanation != "" {
				fmt.Fprintln(w, wrapText(e.Explanation, 80, "      "))
			}
			fmt.Fprintln(w)
		}
	}

	if result.CorrectedCode != "" {
		green.Fprintln(w, "🛠  CORRECTED CODE:")
		fmt.Fprintln(w, strings.Repeat("─", 80))
		fmt.Fprintln(w, strings.TrimRight(result.CorrectedCode, "\n"))
		fmt.Fprintln(w, strings.Repeat("─", 80))
		fmt.Fprintln(w)
	}

	printBestPractices(w, cyan, result.BestPractices)
	printFooter(w)
}

func printBestPractices(w io.Writer, title *color.Color, practices []string) {
	if len(practices) == 0 {
		return
	}
	title.Fprintln(w, "💡 BEST PRACTICES:")
	for i, p := range practices {
		fmt.Fprintf(w, "   %d. %s\n", i+1, strings.TrimSpace(wrapText(p, 80, "      ")))
	}
	fmt.Fprintln(w)
}

func printFooter(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		current := indent
		for _, word := range words {
			switch {
			case current == indent:
				current += word
			case len(current)+len(word)+1 > width:
				result.WriteString(current + "\n")
				current = indent + word
			default:
				current += " " + word
			}
		}
		result.WriteString(current + "\n")
	}
	return strings.TrimSuffix(result.String(), "\n")
}
