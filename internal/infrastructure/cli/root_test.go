package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/painpoint-go/internal/domain"
)

type harness struct {
	configPath string
	requests   atomic.Int32
	lastBody   atomic.Value
}

func newHarness(t *testing.T, status int, body string) *harness {
	t.Helper()
	h := &harness{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.requests.Add(1)
		raw, _ := io.ReadAll(r.Body)
		h.lastBody.Store(string(raw))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(upstream.Close)

	h.configPath = filepath.Join(t.TempDir(), "config.yaml")
	config := fmt.Sprintf(`config_format_version: "1"
preferences:
  default_model: test
models:
  - name: test
    endpoint: %s/v1/responses
    auth_env_var: PAINPOINT_CLI_TEST_KEY
    model_id: gpt-test
`, upstream.URL)
	require.NoError(t, os.WriteFile(h.configPath, []byte(config), 0o600))
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root, err := NewRootCmd(context.Background(), Options{ConfigPath: h.configPath})
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestQuery_PrintsMarkdown(t *testing.T) {
	h := newHarness(t, http.StatusOK, `{"output":[{"type":"reasoning","summary":"checked forums"},{"type":"message","content":[{"type":"output_text","text":"## Pain points\n- churn"}]}]}`)

	out, err := h.run(t, "query", "--url", "https://acme.io/about", "--api-key", "sk-flag")
	require.NoError(t, err)

	assert.Equal(t, "## Pain points\n- churn\n", out)
	assert.EqualValues(t, 1, h.requests.Load())
	sent := h.lastBody.Load().(string)
	assert.Contains(t, sent, `"allowed_domains":["acme.io"]`)
	assert.Contains(t, sent, `"model":"gpt-test"`)
}

func TestQuery_ShowReasoning(t *testing.T) {
	h := newHarness(t, http.StatusOK, `{"output":[{"type":"reasoning","summary":"checked forums"},{"type":"message","content":"body"}]}`)

	out, err := h.run(t, "query", "--name", "Acme", "--api-key", "sk", "--show-reasoning")
	require.NoError(t, err)

	assert.Contains(t, out, "## Reasoning\n\nchecked forums\n")
	assert.Contains(t, out, "body\n")
}

func TestQuery_Shorthand(t *testing.T) {
	h := newHarness(t, http.StatusOK, `{"output_text":"ok"}`)

	out, err := h.run(t, "Acme", "Corp", "--api-key", "sk")
	require.NoError(t, err)

	assert.Equal(t, "ok\n", out)
	assert.Contains(t, h.lastBody.Load().(string), "Find pain points for company: Acme Corp")
}

func TestQuery_JSONOutputOnAPIError(t *testing.T) {
	h := newHarness(t, http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided"}}`)

	out, err := h.run(t, "query", "--name", "Acme", "--api-key", "bad", "--json")

	var qerr *domain.QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, domain.ErrorKindAPI, qerr.Kind)

	var view domain.StateView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, domain.PhaseFailed, view.Phase)
	require.NotNil(t, view.Error)
	assert.Equal(t, "Incorrect API key provided", view.Error.Message)
	assert.Equal(t, 401, view.Error.StatusCode)
}

func TestQuery_MissingCredentialSendsNothing(t *testing.T) {
	t.Setenv("PAINPOINT_CLI_TEST_KEY", "")
	h := newHarness(t, http.StatusOK, `{}`)

	_, err := h.run(t, "query", "--name", "Acme")

	var qerr *domain.QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, domain.MsgMissingCredential, qerr.Message)
	assert.Zero(t, h.requests.Load())
}

func TestQuery_CredentialFromEnvironment(t *testing.T) {
	t.Setenv("PAINPOINT_CLI_TEST_KEY", "sk-env")
	h := newHarness(t, http.StatusOK, `{"output_text":"ok"}`)

	_, err := h.run(t, "query", "--name", "Acme")
	require.NoError(t, err)
	assert.EqualValues(t, 1, h.requests.Load())
}

func TestQuery_NameAndURLAreExclusive(t *testing.T) {
	h := newHarness(t, http.StatusOK, `{}`)

	_, err := h.run(t, "query", "--name", "Acme", "--url", "https://acme.io", "--api-key", "sk")

	var qerr *domain.QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, domain.ErrorKindValidation, qerr.Kind)
	assert.Equal(t, domain.MsgMissingTarget, qerr.Message)
	assert.Zero(t, h.requests.Load())
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t, http.StatusOK, `{}`)

	out, err := h.run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, h.configPath+"\n", out)

	out, err = h.run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")

	out, err = h.run(t, "config", "diff")
	require.NoError(t, err)
	assert.Contains(t, out, "gpt-test")

	out, err = h.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "model_id: gpt-test")

	_, err = h.run(t, "config", "reset")
	require.NoError(t, err)
	out, err = h.run(t, "config", "diff")
	require.NoError(t, err)
	assert.Contains(t, out, "No differences from default configuration.")
}

func TestDoctorAndVersion(t *testing.T) {
	t.Setenv("PAINPOINT_CLI_TEST_KEY", "sk-env")
	h := newHarness(t, http.StatusOK, `{}`)

	out, err := h.run(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] API key - PAINPOINT_CLI_TEST_KEY set")

	out, err = h.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "painpoint version")
}

func TestModelsCommands(t *testing.T) {
	h := newHarness(t, http.StatusOK, `{}`)

	_, err := h.run(t, "models", "add", "--name", "mini", "--endpoint", "https://api.openai.com/v1/responses", "--model-id", "gpt-4.1-mini")
	require.NoError(t, err)

	_, err = h.run(t, "models", "use", "mini")
	require.NoError(t, err)

	out, err := h.run(t, "models", "list")
	require.NoError(t, err)
	assert.Regexp(t, `mini\s+gpt-4.1-mini\s+https://api.openai.com/v1/responses\s+OPENAI_API_KEY\s+\*`, out)

	_, err = h.run(t, "models", "add", "--name", "bad", "--endpoint", "ftp://nowhere")
	require.Error(t, err)

	_, err = h.run(t, "models", "remove", "mini")
	require.NoError(t, err)
	out, err = h.run(t, "models", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "mini")
	assert.FileExists(t, h.configPath+".bak")
}
