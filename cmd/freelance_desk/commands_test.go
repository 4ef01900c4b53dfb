package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/freelance-desk/internal/apiclient"
	"github.com/jonathan/freelance-desk/internal/state"
	"github.com/jonathan/freelance-desk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var remoteResponses = map[string]string{
	apiclient.OpClients: `{"ok":true,"clients":[
		{"client_id":1,"name":"Budi Santoso","company":"PT Maju","email":"budi@example.com"},
		{"client_id":2,"name":"Ani","company":"","email":"ani@example.com"}]}`,
	apiclient.OpClient: `{"ok":true,"client":
		{"client_id":1,"name":"Budi Santoso","company":"PT Maju","email":"budi@example.com","phone":628123}}`,
	apiclient.OpClientUpdate: `{"ok":true,"client":{"client_id":1,"name":"Budi Santoso"}}`,
	apiclient.OpClientDelete: `{"ok":false,"message":"Client still has projects"}`,
	apiclient.OpProject: `{"ok":true,"project":
		{"project_id":"P-001","client_id":1,"project_title":"Inventory System",
		 "project_features":"Login\nStock reports","budget":"15000000",
		 "start_date":"2024-03-01","end_date":"2024-03-29"}}`,
	apiclient.OpProjects: `{"ok":true,"projects":[
		{"project_id":"P-001","client_id":1,"project_title":"Inventory System",
		 "budget":"Rp 15.000.000","start_date":"2024-03-01","end_date":"2024-03-29","status":"active"},
		{"project_id":"P-003","client_id":2,"project_title":"Landing Page","budget":"",
		 "start_date":"2024-04-01","end_date":"2024-04-15"}]}`,
	apiclient.OpSettings:    `{"ok":true,"settings":{"your_name":"Sari Dewi","your_email":"sari@example.com"}}`,
	apiclient.OpSetupStatus: `{"ok":true,"is_setup":false}`,
	apiclient.OpDuplicateProjectAsDraft: `{"ok":true,"project":{"project_id":"P-002","project_title":"Inventory System","status":"draft"}}`,
}

func TestLoginLogout(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.run(t, "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in")

	store := state.NewStore(env.stateFile)
	ok, err := store.CheckAuth()
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = env.run(t, "logout")
	require.NoError(t, err)

	ok, err = store.CheckAuth()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDataCommandsRequireLogin(t *testing.T) {
	_, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)

	_, err := env.run(t, "clients", "list")
	assert.ErrorIs(t, err, state.ErrNotAuthenticated)
}

func TestMissingAPIURL(t *testing.T) {
	env := newTestEnv(t, "")
	env.login(t)

	_, err := env.run(t, "clients", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API URL not configured")
}

func TestConfigSetAPIURL(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.run(t, "config", "set-api-url", "https://script.example.com/exec")
	require.NoError(t, err)

	got, err := state.NewStore(env.stateFile).APIBaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://script.example.com/exec", got)

	out, err := env.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"api_base_url": "https://script.example.com/exec"`)

	_, err = env.run(t, "config", "set-api-url", "ftp://nope")
	assert.Error(t, err)
}

func TestClientsList(t *testing.T) {
	_, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	out, err := env.run(t, "clients", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Budi Santoso")
	assert.Contains(t, out, "ani@example.com")
}

func TestProjectsList_FormatsListingColumns(t *testing.T) {
	_, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	out, err := env.run(t, "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory System")
	assert.Contains(t, out, "Rp 15.000.000")
	assert.Contains(t, out, "Mar 1, 2024")
	assert.Contains(t, out, "Apr 15, 2024")
	// Only the Landing Page budget is missing.
	assert.Equal(t, 1, strings.Count(out, "N/A"))
	assert.Contains(t, out, "START")
}

func TestClientsUpdate_KeepsUnsetFields(t *testing.T) {
	fake, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	out, err := env.run(t, "clients", "update", "1", "--email", "new@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "updated")

	payload := fake.payload(apiclient.OpClientUpdate)
	require.NotNil(t, payload)
	assert.Equal(t, "1", payload["client_id"])
	assert.Equal(t, "new@example.com", payload["email"])
	assert.Equal(t, "PT Maju", payload["company"])
	assert.Equal(t, "628123", payload["phone"])
}

func TestClientsDelete_SurfacesServerMessage(t *testing.T) {
	_, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	_, err := env.run(t, "clients", "delete", "1")
	require.Error(t, err)
	assert.Equal(t, "Client still has projects", apiclient.Message(err, ""))
}

func TestClientsCreate_RejectsInvalidInput(t *testing.T) {
	fake, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	_, err := env.run(t, "clients", "create", "--email", "not-an-email")
	require.Error(t, err)

	var inputErr *apiclient.InputError
	assert.ErrorAs(t, err, &inputErr)
	assert.Nil(t, fake.payload(apiclient.OpClientCreate))
}

func TestProjectsDuplicate_WithNewClient(t *testing.T) {
	fake, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	out, err := env.run(t, "projects", "duplicate", "P-001", "--new-client", "--client-name", "Citra")
	require.NoError(t, err)
	assert.Contains(t, out, "Draft P-002 created from P-001")

	payload := fake.payload(apiclient.OpDuplicateProjectAsDraft)
	require.NotNil(t, payload)
	assert.Equal(t, "P-001", payload["original_project_id"])
	assert.Equal(t, map[string]any{"name": "Citra"}, payload["new_client_data"])
}

func TestSetupStatus(t *testing.T) {
	_, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)

	out, err := env.run(t, "setup", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not set up")
}

func TestRender_WritesFile(t *testing.T) {
	_, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	path := filepath.Join(t.TempDir(), "out", "invoice.html")
	out, err := env.run(t, "render", "invoice", "--project-id", "P-001", "--format", "html", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "written to")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "PT Maju")
	assert.Contains(t, string(content), "Rp 15.000.000")
}

func TestRender_TextToStdout(t *testing.T) {
	_, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	out, err := env.run(t, "render", "requirements", "-p", "P-001", "-f", "text", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "FR-1")
	assert.Contains(t, out, "Stock reports")
	assert.NotContains(t, out, "<td>")
}

func TestRender_Errors(t *testing.T) {
	_, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	_, err := env.run(t, "render", "memo", "-p", "P-001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available:")

	_, err = env.run(t, "render", "invoice", "-p", "P-001", "--format", "docx")
	assert.Error(t, err)

	_, err = env.run(t, "render", "invoice", "-p", "P-001", "--format", "pdf", "--copy")
	assert.Error(t, err)

	_, err = env.run(t, "render", "invoice")
	assert.Error(t, err)
}

func TestRenderAll(t *testing.T) {
	_, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	dir := t.TempDir()
	out, err := env.run(t, "render-all", "--project-id", "P-001", "--format", "html", "--out-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "7 documents written")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 7)
	assert.FileExists(t, filepath.Join(dir, "rab_P-001.html"))
}

func TestMergeProjectInput(t *testing.T) {
	base := types.ProjectInput{ClientID: "1", ProjectTitle: "Shop", Budget: 100, Status: "draft"}
	set := types.ProjectInput{ProjectTitle: "ignored", Budget: 250}

	flags := projectsUpdateCmd.Flags()
	resetFlags(projectsUpdateCmd)
	require.NoError(t, flags.Set("budget", "250"))

	got := mergeProjectInput(base, set, flags)
	assert.Equal(t, "Shop", got.ProjectTitle)
	assert.Equal(t, 250.0, got.Budget)
	assert.Equal(t, "draft", got.Status)

	resetFlags(projectsUpdateCmd)
}

func TestGetCommands_PrintSummaryOrJSON(t *testing.T) {
	_, url := newFakeRemote(t, remoteResponses)
	env := newTestEnv(t, url)
	env.login(t)

	out, err := env.run(t, "projects", "get", "P-001")
	require.NoError(t, err)
	assert.Contains(t, out, "PROJECT Inventory System")
	assert.Contains(t, out, "Rp 15.000.000")

	out, err = env.run(t, "clients", "get", "1", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"company": "PT Maju"`)

	out, err = env.run(t, "settings", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "Sari Dewi")
	assert.Contains(t, out, "Currency: IDR")
}

func TestSetupRun_GeneratesAccessKey(t *testing.T) {
	responses := map[string]string{apiclient.OpSetup: `{"ok":true,"message":"Setup complete"}`}
	fake, url := newFakeRemote(t, responses)
	env := newTestEnv(t, url)

	out, err := env.run(t, "setup", "run", "--name", "Sari Dewi", "--email", "sari@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated access key")

	payload := fake.payload(apiclient.OpSetup)
	require.NotNil(t, payload)
	key, _ := payload["access_key"].(string)
	assert.Len(t, key, 16)
}
