package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// fakeRemote answers remote API operations with canned bodies keyed by the
// path query parameter and records POST payloads.
type fakeRemote struct {
	mu        sync.Mutex
	responses map[string]string
	posted    map[string]map[string]any
}

func newFakeRemote(t *testing.T, responses map[string]string) (*fakeRemote, string) {
	t.Helper()
	f := &fakeRemote{responses: responses, posted: map[string]map[string]any{}}
	srv := httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(srv.Close)
	return f, srv.URL + "/exec"
}

func (f *fakeRemote) handle(w http.ResponseWriter, r *http.Request) {
	op := r.URL.Query().Get("path")

	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Method == http.MethodPost {
		raw, _ := io.ReadAll(r.Body)
		var payload map[string]any
		_ = json.Unmarshal(raw, &payload)
		f.posted[op] = payload
	}

	body, ok := f.responses[op]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write([]byte(body))
}

func (f *fakeRemote) payload(op string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posted[op]
}

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// testEnv is a state file plus API URL shared by the commands of one test.
type testEnv struct {
	stateFile string
	apiURL    string
}

func newTestEnv(t *testing.T, apiURL string) testEnv {
	t.Helper()
	return testEnv{stateFile: filepath.Join(t.TempDir(), "state.json"), apiURL: apiURL}
}

// run executes the CLI in-process and returns its stdout.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	full := append([]string{}, args...)
	full = append(full, "--state-file", e.stateFile)
	if e.apiURL != "" {
		full = append(full, "--api-url", e.apiURL)
	}
	rootCmd.SetArgs(full)

	err := rootCmd.Execute()
	return out.String(), err
}

func (e testEnv) login(t *testing.T) {
	t.Helper()
	_, err := e.run(t, "login")
	require.NoError(t, err)
}
