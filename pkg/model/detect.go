package model

import (
	"path/filepath"
	"strings"
)

// DetectCategory guesses the category from a file path using well-known
// file names and locations.
func DetectCategory(path string) (Category, bool) {
	slashed := filepath.ToSlash(path)
	base := strings.ToLower(filepath.Base(path))
	ext := strings.ToLower(filepath.Ext(base))

	switch {
	case base == "dockerfile" || strings.HasPrefix(base, "dockerfile.") || ext == ".dockerfile":
		return CategoryDockerfile, true
	case base == "jenkinsfile" || strings.HasPrefix(base, "jenkinsfile."):
		return CategoryJenkinsfile, true
	case base == ".gitlab-ci.yml" || base == ".gitlab-ci.yaml":
		return CategoryGitLabCI, true
	case strings.HasPrefix(base, "docker-compose") || base == "compose.yml" || base == "compose.yaml":
		return CategoryDockerCompose, true
	case ext == ".tf" || ext == ".tfvars" || ext == ".hcl":
		return CategoryTerraform, true
	case (ext == ".yml" || ext == ".yaml") && strings.Contains(slashed, ".github/workflows/"):
		return CategoryGitHubActions, true
	}
	return "", false
}
