package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/configlint-ai/pkg/config"
	"github.com/helmcode/configlint-ai/pkg/llm"
	"github.com/helmcode/configlint-ai/pkg/model"
)

func TestResolveCategory(t *testing.T) {
	c, err := resolveCategory("", "Dockerfile")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryDockerfile, c)

	c, err = resolveCategory("Kubernetes Manifest", "Dockerfile")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryKubernetes, c)

	c, err = resolveCategory("", "site.yml")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCategory, c)

	_, err = resolveCategory("makefile", "Makefile")
	assert.ErrorContains(t, err, "unsupported category")
}

func TestReadSource(t *testing.T) {
	got, err := readSource("-", strings.NewReader("FROM alpine"))
	require.NoError(t, err)
	assert.Equal(t, "FROM alpine", got)

	path := filepath.Join(t.TempDir(), "main.tf")
	require.NoError(t, os.WriteFile(path, []byte(`resource "x" "y" {}`), 0o600))
	got, err = readSource(path, nil)
	require.NoError(t, err)
	assert.Equal(t, `resource "x" "y" {}`, got)

	_, err = readSource(filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorContains(t, err, "failed to read")
}

func TestCheckRejectsEmptyInput(t *testing.T) {
	cmd := NewCheckCmd()
	cmd.SetArgs([]string{"-"})
	cmd.SetIn(strings.NewReader("  \n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "stdin is empty")
}

func TestCheckRequiresCredential(t *testing.T) {
	for _, k := range []string{"LLM_PROVIDER", "LLM_MODEL", "ANTHROPIC_API_KEY"} {
		t.Setenv(k, "")
	}

	cmd := NewCheckCmd()
	cmd.SetArgs([]string{"-", "--provider", "claude"})
	cmd.SetIn(strings.NewReader("- hosts: all"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, llm.ErrMissingCredential)
}

func TestProviderAndModelDefaults(t *testing.T) {
	orig := appConfig
	t.Cleanup(func() { appConfig = orig })
	appConfig = &config.Config{Provider: "openai", Model: "gpt-4o-mini"}

	assert.Equal(t, "openai", providerOrDefault(""))
	assert.Equal(t, "claude", providerOrDefault("claude"))
	assert.Equal(t, "gpt-4o-mini", modelOrDefault(""))
}
