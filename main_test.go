package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"edu-messenger/advisor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupWorkspace moves the test into a temp dir with a YAML config pointing
// the advisor at an OpenAI-compatible stub.
func setupWorkspace(t *testing.T, status int, answer string) string {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "EDU_ADVISOR_PROVIDER"} {
		t.Setenv(key, "")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"unavailable","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]interface{}{{"index": 0, "message": map[string]string{"role": "assistant", "content": answer}, "finish_reason": "stop"}},
		})
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Chdir(dir)

	config := fmt.Sprintf(`advisor:
  provider: openai
  timeout_seconds: 5
  providers:
    openai:
      base_url: %s/v1
      default_model: stub-model
auth:
  hash_cost: 4
data:
  db_path: %s
`, srv.URL, filepath.Join(dir, "data", "edu.db"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0644))

	t.Cleanup(func() {
		configPath = ""
		verbose = false
	})
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRegisterAndListUsers(t *testing.T) {
	path := setupWorkspace(t, http.StatusOK, "ok")

	out, err := execute(t, "--config", path, "users")
	require.NoError(t, err)
	assert.Contains(t, out, "No accounts registered")

	out, err = execute(t, "--config", path, "register", "admin_dev", "secret12")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered admin_dev")

	_, err = execute(t, "--config", path, "register", "admin_dev", "another1")
	require.Error(t, err)
	assert.Equal(t, "Пользователь существует.", err.Error())

	_, err = execute(t, "--config", path, "register", "abc", "secret12")
	require.Error(t, err)
	assert.Equal(t, "Логин должен быть > 3 символов, пароль > 6.", err.Error())

	out, err = execute(t, "--config", path, "users")
	require.NoError(t, err)
	assert.Contains(t, out, "admin_dev\t")
	assert.Contains(t, out, "1 account(s), last change ")
}

func TestAskPrintsAnswer(t *testing.T) {
	path := setupWorkspace(t, http.StatusOK, "Используйте WebSocket.")

	out, err := execute(t, "--config", path, "ask", "Realtime", "WebSocket")
	require.NoError(t, err)
	assert.Equal(t, "Используйте WebSocket.\n", out)
}

func TestAskFailurePrintsFallback(t *testing.T) {
	path := setupWorkspace(t, http.StatusServiceUnavailable, "")

	out, err := execute(t, "--config", path, "ask", "Realtime")
	require.Error(t, err)
	assert.Equal(t, advisor.FailureText+"\n", out)
}

func TestAskRequiresTopic(t *testing.T) {
	path := setupWorkspace(t, http.StatusOK, "ok")

	_, err := execute(t, "--config", path, "ask")
	assert.Error(t, err)
}
