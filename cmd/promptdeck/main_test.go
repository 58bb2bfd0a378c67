package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

const testCatalog = `
- id: 1
  title: English translator
  prompt: I want you to act as an English translator
  tags: [language]
  weight: 14572
- id: 2
  title: Writing assistant
  prompt: "  As a writing improvement assistant\n"
  tags: [favorite, write]
  weight: 61198
- id: 3
  title: Voice input
  prompt: Using concise and clear language
  tags: [write]
  weight: 1466
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTestCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", "--file", writeTestCatalog(t, testCatalog))
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 3 prompts")

	out, err = execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "(embedded)")

	_, err = execute(t, "validate", "--file", writeTestCatalog(t, "- id: 1\n  title: a\n  prompt: a\n- id: 1\n  title: b\n  prompt: b\n"))
	assert.ErrorIs(t, err, domain.ErrCatalogLoad)
}

func TestSearch(t *testing.T) {
	file := writeTestCatalog(t, testCatalog)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "query",
			args: []string{"search", "translator", "-f", file},
			want: []string{"1\t14572\tEnglish translator"},
		},
		{
			name: "tag in catalog order",
			args: []string{"search", "--tag", "write", "-f", file},
			want: []string{"2\t61198\tWriting assistant", "3\t1466\tVoice input"},
		},
		{
			name: "weight sort",
			args: []string{"search", "--sort-weight", "-f", file},
			want: []string{"2\t61198\tWriting assistant", "1\t14572\tEnglish translator", "3\t1466\tVoice input"},
		},
		{
			name: "no match",
			args: []string{"search", "nothing matches", "-f", file},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)

			var lines []string
			if trimmed := strings.TrimRight(out, "\n"); trimmed != "" {
				lines = strings.Split(trimmed, "\n")
			}
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestCopy(t *testing.T) {
	file := writeTestCatalog(t, testCatalog)

	out, err := execute(t, "copy", "2", "-f", file)
	require.NoError(t, err)
	assert.Equal(t, "  As a writing improvement assistant\n", out, "text must be written verbatim")

	out, err = execute(t, "copy", "999", "-f", file)
	assert.ErrorIs(t, err, domain.ErrPromptNotFound)
	assert.Empty(t, out)

	_, err = execute(t, "copy", "abc", "-f", file)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "promptdeck "))
}
