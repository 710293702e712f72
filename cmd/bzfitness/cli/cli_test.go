package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/service"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

// run executes the command tree with args against a fresh data directory
// unless --data-dir is already given.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd("1.2.3", "abc123", "2025-03-05")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// isolate points every store-backed command at a temporary directory and
// clears settings inherited from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BZFITNESS_DATA_DIR", dir)
	t.Setenv("BZFITNESS_DATABASE_DRIVER", "sqlite")
	t.Setenv("BZFITNESS_DATABASE_DSN", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("BZFITNESS_AUTH_ADMIN_PASSWORD_HASH", "")
	t.Chdir(dir)
	return dir
}

func TestVersionJSON(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "version", "--json")
	require.NoError(t, err)

	var info buildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2025-03-05", info.Built)
	assert.Equal(t, store.SchemaVersion(), info.Schema)
	assert.Positive(t, info.Schema)
	assert.Equal(t, []string{"mysql", "postgres", "sqlite"}, info.Databases)

	out, err = run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bzfitness 1.2.3 (abc123, built 2025-03-05)")
	assert.Contains(t, out, "databases: mysql, postgres, sqlite")
}

func TestAdminLifecycle(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "admin", "create", "--username", "thabo", "--password", "pw", "--name", "Coach Thabo")
	require.NoError(t, err)
	assert.Contains(t, out, `Created admin "thabo"`)

	_, err = run(t, "", "admin", "create", "--username", "thabo", "--password", "pw")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "", "admin", "create", "--username", "lerato", "--password", "pw", "--role", "root")
	assert.ErrorContains(t, err, "invalid role")

	out, err = run(t, "", "admin", "list", "--json")
	require.NoError(t, err)
	var admins []model.AdminUser
	require.NoError(t, json.Unmarshal([]byte(out), &admins))
	require.Len(t, admins, 1)
	assert.Equal(t, "thabo", admins[0].Username)
	assert.Equal(t, model.RoleAdmin, admins[0].Role)
	assert.NotContains(t, out, "password")

	out, err = run(t, "", "admin", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "USERNAME")
	assert.Contains(t, out, "Coach Thabo")

	out, err = run(t, "", "admin", "delete", "thabo")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted admin user "thabo"`)

	_, err = run(t, "", "admin", "delete", "thabo")
	assert.ErrorContains(t, err, "no admin user")

	out, err = run(t, "", "admin", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No admin users stored")
}

func TestAdminCreateReadsPasswordFromStdin(t *testing.T) {
	isolate(t)

	_, err := run(t, "pw-from-stdin\n", "admin", "create", "--username", "owner", "--role", "superadmin")
	require.NoError(t, err)

	out, err := run(t, "", "admin", "list", "--json")
	require.NoError(t, err)
	var admins []model.AdminUser
	require.NoError(t, json.Unmarshal([]byte(out), &admins))
	require.Len(t, admins, 1)
	assert.Equal(t, model.RoleSuperadmin, admins[0].Role)

	_, err = run(t, "", "admin", "create", "--username", "empty")
	assert.ErrorContains(t, err, "required")
}

func TestAdminDeleteEnvSuperadmin(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "admin", "delete", model.EnvSuperadminID)
	assert.ErrorContains(t, err, "cannot be deleted")
}

func TestAdminHashPassword(t *testing.T) {
	isolate(t)

	out, err := run(t, "secret\n", "admin", "hash-password")
	require.NoError(t, err)
	assert.Equal(t, service.HashPassword("secret")+"\n", out)

	_, err = run(t, "", "admin", "hash-password")
	assert.ErrorContains(t, err, "must not be empty")
}

func TestConfigInitAndShow(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")

	out, err := run(t, "", "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path)

	_, err = run(t, "", "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "", "--config", path, "config", "init", "--force")
	require.NoError(t, err)

	t.Setenv("SESSION_SECRET", "do-not-print-me")
	out, err = run(t, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# Config file: "+path)
	assert.Contains(t, out, "port: 3000")
	assert.Contains(t, out, "timezone: Africa/Johannesburg")
	assert.NotContains(t, out, "do-not-print-me")
}

func TestConfigRejectsUnknownDriver(t *testing.T) {
	isolate(t)
	t.Setenv("BZFITNESS_DATABASE_DRIVER", "oracle")

	_, err := run(t, "", "db", "migrate")
	assert.ErrorContains(t, err, "database.driver")
}

func TestOpenAPIWritesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "openapi.json")

	_, err := run(t, "", "openapi", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		OpenAPI string                 `json:"openapi"`
		Paths   map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/api/contact")
}

func TestDBMigrateCreatesDatabaseFile(t *testing.T) {
	dir := isolate(t)
	other := filepath.Join(dir, "elsewhere")

	out, err := run(t, "", "--data-dir", other, "db", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite")
	assert.FileExists(t, filepath.Join(other, "bzfitness.db"))

	out, err = run(t, "", "--data-dir", other, "db", "ping")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite ok")
	assert.Contains(t, out, "mysql, postgres, sqlite")
}

func TestMCPRejectsUnknownTransport(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "mcp", "--transport", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown transport")
}

func TestVersionString(t *testing.T) {
	defer func(v string) { appVersion = v }(appVersion)

	for in, want := range map[string]string{"": "dev", "dev": "dev", "1.0.0": "v1.0.0", "v2.1.0": "v2.1.0"} {
		appVersion = in
		assert.Equal(t, want, versionString(), "appVersion %q", in)
	}
}
