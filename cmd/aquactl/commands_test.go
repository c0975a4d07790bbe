package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aqua-health-go/pkg/hash"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, "analyze", "fever", "diarrhea", "vomiting", "dehydration")
	require.NoError(t, err)

	var resp struct {
		Results []struct {
			ID          string `json:"id"`
			Probability int    `json:"probability"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "cholera", resp.Results[0].ID)
	assert.Equal(t, 67, resp.Results[0].Probability)

	_, err = run(t, "analyze", "itching")
	assert.Error(t, err)
}

func TestChatCommand(t *testing.T) {
	out, err := run(t, "chat", "What", "are", "the", "symptoms", "of", "cholera?")
	require.NoError(t, err)
	assert.Equal(t, "Symptoms of Cholera: Profuse watery (rice-water) diarrhea, vomiting, leg cramps and rapid dehydration.\n", out)

	out, err = run(t, "--lang", "hi", "chat", "--json", "namaste")
	require.NoError(t, err)
	assert.Contains(t, out, `"intent": "greeting"`)
	assert.Contains(t, out, `"language": "hi"`)
}

func TestKBExportAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")

	_, err := run(t, "kb", "export", "-o", path)
	require.NoError(t, err)

	out, err := run(t, "kb", "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "ok: 23 symptoms, 7 diseases, base language en\n", out)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"version":1,"symptoms":[{"id":"fever","labels":{"en":"Fever"}}],"diseases":[{"id":"cholera","name":"Cholera","scoringKeywords":[]}]}`), 0o644))
	out, err = run(t, "kb", "validate", bad)
	require.Error(t, err)
	assert.True(t, strings.Contains(out, `disease "cholera" has no scoring keywords`))
}

func TestKBPushRequiresConfig(t *testing.T) {
	_, err := run(t, "kb", "push")
	assert.Error(t, err)
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := run(t, "hash-password", "s3cret")
	require.NoError(t, err)
	assert.True(t, hash.CheckPasswordHash("s3cret", strings.TrimSpace(out)))
}
