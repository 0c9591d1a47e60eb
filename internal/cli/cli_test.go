package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/prompto/internal/detect"
	"github.com/sant0-9/prompto/internal/enhance"
	"github.com/sant0-9/prompto/internal/llm"
)

const fixPrefix = "Fix the following issue: Button is not working correctly when clicked."

type staticDetector detect.Backend

func (s staticDetector) Detect(ctx context.Context) (detect.Backend, error) {
	return detect.Backend(s), nil
}

type stubProvider struct {
	reply string
	err   error
}

func (p stubProvider) Name() string { return "stub" }

func (p stubProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompletionResponse{Content: p.reply}, nil
}

func (p stubProvider) Ping(ctx context.Context) error { return nil }

type testRuntime struct {
	*runtime
	copied string
}

func newTestRuntime(t *testing.T) *testRuntime {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, env := range []string{"PROMPTO_MODE", "PROMPTO_PROVIDER", "PROMPTO_API_KEY", "PROMPTO_MODEL", "PROMPTO_BASE_URL"} {
		t.Setenv(env, "")
	}

	tr := &testRuntime{runtime: newRuntime()}
	tr.detector = staticDetector{}
	tr.clipboard = func(s string) error {
		tr.copied = s
		return nil
	}
	return tr
}

func (tr *testRuntime) execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(tr.runtime)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEnhanceRuleOnly(t *testing.T) {
	tr := newTestRuntime(t)

	out, err := tr.execute(t, "", "enhance", "--mode", "ruleOnly", "button", "not", "work", "when", "click")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, fixPrefix), out)
}

func TestEnhanceFromStdinAsJSON(t *testing.T) {
	tr := newTestRuntime(t)

	out, err := tr.execute(t, "button not work when click\n", "enhance", "--mode", "ruleOnly", "--json")
	require.NoError(t, err)

	var got struct {
		Intent        string `json:"intent"`
		Prompt        string `json:"prompt"`
		Preview       string `json:"preview"`
		WasAIEnhanced bool   `json:"was_ai_enhanced"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "fix", got.Intent)
	assert.True(t, strings.HasPrefix(got.Prompt, fixPrefix))
	assert.Equal(t, enhance.Preview(got.Prompt), got.Preview)
	assert.False(t, got.WasAIEnhanced)
}

func TestEnhanceIntentOverride(t *testing.T) {
	tr := newTestRuntime(t)

	out, err := tr.execute(t, "", "enhance", "--mode", "ruleOnly", "--intent", "explain", "the auth middleware")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Explain the following:"), out)

	_, err = tr.execute(t, "", "enhance", "--intent", "dance", "anything")
	assert.Error(t, err)
}

func TestEnhanceRequiresText(t *testing.T) {
	tr := newTestRuntime(t)

	_, err := tr.execute(t, "   \n", "enhance", "--mode", "ruleOnly")
	assert.ErrorContains(t, err, "nothing to enhance")
}

func TestEnhanceWithFileContext(t *testing.T) {
	tr := newTestRuntime(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {\n\tpanic(1)\n}\n"), 0644))

	out, err := tr.execute(t, "", "enhance", "--mode", "ruleOnly", "--file", path, "--lines", "3:5", "fix the panic")
	require.NoError(t, err)
	assert.Contains(t, out, "File: main.go (go)")
	assert.Contains(t, out, "```go\nfunc main() {\n\tpanic(1)\n}\n```")
	assert.NotContains(t, out, "package main")
}

func TestEnhanceBadLineRange(t *testing.T) {
	tr := newTestRuntime(t)

	_, err := tr.execute(t, "", "enhance", "--mode", "ruleOnly", "--lines", "1:2", "fix it")
	assert.ErrorContains(t, err, "failed to collect context")
}

func TestEnhanceCopy(t *testing.T) {
	tr := newTestRuntime(t)

	out, err := tr.execute(t, "", "enhance", "--mode", "ruleOnly", "--copy", "button not work when click")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(out, "\n"), tr.copied)
}

func TestEnhanceCopyFailureStillPrints(t *testing.T) {
	tr := newTestRuntime(t)
	tr.clipboard = func(string) error { return errors.New("no clipboard utility") }

	out, err := tr.execute(t, "", "enhance", "--mode", "ruleOnly", "--copy", "button not work when click")
	require.NoError(t, err)
	assert.Contains(t, out, "could not copy")
	assert.Contains(t, out, fixPrefix)
}

func TestEnhanceManualProvider(t *testing.T) {
	tr := newTestRuntime(t)
	tr.aiOptions = []enhance.AIOption{
		enhance.WithProviderFactory(func(s llm.Settings, opts ...llm.Option) (llm.Provider, error) {
			return stubProvider{reply: "Investigate the click handler on the submit button."}, nil
		}),
	}

	out, err := tr.execute(t, "", "enhance", "--mode", "manual", "--json", "button not work when click")
	require.NoError(t, err)

	var got enhance.Result
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.WasAIEnhanced)
	assert.Equal(t, "Investigate the click handler on the submit button.", got.Prompt)
}

func TestEnhanceManualFailureFallsBack(t *testing.T) {
	tr := newTestRuntime(t)
	tr.aiOptions = []enhance.AIOption{
		enhance.WithProviderFactory(func(s llm.Settings, opts ...llm.Option) (llm.Provider, error) {
			return stubProvider{err: errors.New("boom")}, nil
		}),
	}

	out, err := tr.execute(t, "", "enhance", "--mode", "manual", "button not work when click")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, fixPrefix), out)
}

func TestEnhanceRejectsUnknownMode(t *testing.T) {
	tr := newTestRuntime(t)

	_, err := tr.execute(t, "", "enhance", "--mode", "turbo", "anything")
	assert.ErrorContains(t, err, "unknown mode")
}

func TestClassify(t *testing.T) {
	tr := newTestRuntime(t)

	out, err := tr.execute(t, "", "classify", "write", "unit", "tests", "for", "the", "parser")
	require.NoError(t, err)
	assert.Equal(t, "test\n", out)

	out, err = tr.execute(t, "", "classify", "--scores", "write unit tests")
	require.NoError(t, err)
	assert.Contains(t, out, "INTENT")
	assert.Contains(t, out, "fix        0")
}

func TestTemplates(t *testing.T) {
	tr := newTestRuntime(t)

	out, err := tr.execute(t, "", "templates")
	require.NoError(t, err)
	for _, id := range []string{"fix-bug", "add-feature", "document-code"} {
		assert.Contains(t, out, id)
	}

	out, err = tr.execute(t, "", "templates", "--intent", "fix")
	require.NoError(t, err)
	assert.Contains(t, out, "fix-bug")
	assert.Contains(t, out, "fix-error")
	assert.NotContains(t, out, "add-feature")

	out, err = tr.execute(t, "", "templates", "fix-bug")
	require.NoError(t, err)
	assert.Contains(t, out, "Fix the following issue: {issue}")

	_, err = tr.execute(t, "", "templates", "nope")
	assert.ErrorContains(t, err, "unknown template")
}

func TestConfigSetGetShow(t *testing.T) {
	tr := newTestRuntime(t)

	_, err := tr.execute(t, "", "config", "set", "mode", "ruleOnly")
	require.NoError(t, err)
	_, err = tr.execute(t, "", "config", "set", "api_key", "sk-test-1234567890")
	require.NoError(t, err)

	out, err := tr.execute(t, "", "config", "get", "mode")
	require.NoError(t, err)
	assert.Equal(t, "ruleOnly\n", out)

	out, err = tr.execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "sk-t****7890")
	assert.NotContains(t, out, "sk-test-1234567890")

	_, err = tr.execute(t, "", "config", "set", "mode", "sometimes")
	assert.Error(t, err)
	_, err = tr.execute(t, "", "config", "get", "colour")
	assert.ErrorContains(t, err, "unknown setting")
}

func TestConfigSetIgnoresEnvironment(t *testing.T) {
	tr := newTestRuntime(t)
	t.Setenv("PROMPTO_MODEL", "from-env")

	_, err := tr.execute(t, "", "config", "set", "mode", "manual")
	require.NoError(t, err)

	path, err := tr.execute(t, "", "config", "path")
	require.NoError(t, err)
	data, err := os.ReadFile(strings.TrimSpace(path))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "from-env")
	assert.Contains(t, string(data), "mode: manual")
}

func TestConfigPath(t *testing.T) {
	tr := newTestRuntime(t)

	out, err := tr.execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), filepath.Join(".config", "prompto", "config.yaml")))
}

func TestBackendsLocalDisabled(t *testing.T) {
	tr := newTestRuntime(t)
	tr.detector = staticDetector{Provider: "anthropic", DisplayName: "Claude Code", Available: true, CanEnhance: true}

	_, err := tr.execute(t, "", "config", "set", "local.enabled", "false")
	require.NoError(t, err)

	out, err := tr.execute(t, "", "backends")
	require.NoError(t, err)
	assert.Contains(t, out, "Mode:       auto")
	assert.Contains(t, out, "Local:      disabled")
	assert.Contains(t, out, "Assistant:  Claude Code (ready)")
	assert.Contains(t, out, "Manual:     OpenAI / gpt-4o-mini, API key: Not set")
}

func TestBackendsLocalModels(t *testing.T) {
	tr := newTestRuntime(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest"},{"name":"qwen2.5:7b"}]}`))
	}))
	defer srv.Close()

	_, err := tr.execute(t, "", "config", "set", "local.host", srv.URL)
	require.NoError(t, err)

	out, err := tr.execute(t, "", "backends", "--refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "2 models: llama3.2:latest, qwen2.5:7b")
	assert.Contains(t, out, "Assistant:  none found")
}

func TestUserTemplates(t *testing.T) {
	tr := newTestRuntime(t)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	dir := filepath.Join(home, ".config", "prompto", "templates")
	require.NoError(t, os.MkdirAll(dir, 0755))
	tmpl := "---\nintent: fix\nname: Terse fix\n---\nBug: {issue}\n\n{context}\n\nKeep the diff small.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "terse-fix.md"), []byte(tmpl), 0644))

	out, err := tr.execute(t, "", "enhance", "--mode", "ruleOnly", "button not work when click")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Bug: Button is not working correctly when clicked.\n\nKeep the diff small."), out)

	out, err = tr.execute(t, "", "templates", "--intent", "fix")
	require.NoError(t, err)
	assert.Contains(t, out, "terse-fix")
	assert.Contains(t, out, "fix-bug")
}
