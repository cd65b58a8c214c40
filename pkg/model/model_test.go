package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"", DefaultCategory},
		{"  ", DefaultCategory},
		{"gitlab-ci", CategoryGitLabCI},
		{"GITLAB-CI", CategoryGitLabCI},
		{"GitHub Actions Workflow", CategoryGitHubActions},
		{"terraform (hcl)", CategoryTerraform},
		{" dockerfile ", CategoryDockerfile},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategoryRejectsUnknown(t *testing.T) {
	_, err := ParseCategory("makefile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "makefile")
	assert.Contains(t, err.Error(), "ansible")
}

func TestCategoriesAreLabelledAndSupported(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, len(CategoryIDs()))
	for _, c := range cats {
		assert.True(t, c.Supported(), c)
		assert.NotEqual(t, string(c), c.Label(), "missing label for %s", c)
	}
	assert.False(t, Category("makefile").Supported())
	assert.Equal(t, "makefile", Category("makefile").Label())
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cats := Categories()
	cats[0] = "changed"
	assert.Equal(t, CategoryAnsible, Categories()[0])
}

func TestMissingDetails(t *testing.T) {
	assert.True(t, (&AnalysisResult{IsValid: false}).MissingDetails())
	assert.False(t, (&AnalysisResult{IsValid: true}).MissingDetails())
	assert.False(t, (&AnalysisResult{Errors: []ErrorDetail{{LineNumber: 1}}}).MissingDetails())

	var nilResult *AnalysisResult
	assert.False(t, nilResult.MissingDetails())
}
