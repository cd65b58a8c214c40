package model

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Category is the declared kind of file being analyzed.
type Category string

const (
	CategoryAnsible       Category = "ansible"
	CategoryGitHubActions Category = "github-actions"
	CategoryGitLabCI      Category = "gitlab-ci"
	CategoryJenkinsfile   Category = "jenkinsfile"
	CategoryDockerfile    Category = "dockerfile"
	CategoryDockerCompose Category = "docker-compose"
	CategoryKubernetes    Category = "kubernetes"
	CategoryTerraform     Category = "terraform"

	DefaultCategory = CategoryAnsible
)

var categoryLabels = map[Category]string{
	CategoryAnsible:       "Ansible Playbook",
	CategoryGitHubActions: "GitHub Actions Workflow",
	CategoryGitLabCI:      "GitLab CI",
	CategoryJenkinsfile:   "Jenkinsfile",
	CategoryDockerfile:    "Dockerfile",
	CategoryDockerCompose: "Docker Compose",
	CategoryKubernetes:    "Kubernetes Manifest",
	CategoryTerraform:     "Terraform (HCL)",
}

// display order for selectors
var categoryOrder = []Category{
	CategoryAnsible,
	CategoryGitHubActions,
	CategoryGitLabCI,
	CategoryJenkinsfile,
	CategoryDockerfile,
	CategoryDockerCompose,
	CategoryKubernetes,
	CategoryTerraform,
}

var supportedCategories = sets.New(categoryOrder...)

// Categories returns every supported category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Label returns the human readable name, or the raw value for unknown categories.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Supported reports whether c is one of the known categories.
func (c Category) Supported() bool {
	return supportedCategories.Has(c)
}

// ParseCategory accepts either an identifier ("gitlab-ci") or a label
// ("GitLab CI"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCategory, nil
	}
	c := Category(strings.ToLower(s))
	if supportedCategories.Has(c) {
		return c, nil
	}
	for _, known := range categoryOrder {
		if strings.EqualFold(categoryLabels[known], s) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unsupported category %q (supported: %s)", s, strings.Join(CategoryIDs(), ", "))
}

// CategoryIDs returns the identifiers of every supported category in display order.
func CategoryIDs() []string {
	ids := make([]string, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		ids = append(ids, string(c))
	}
	return ids
}
