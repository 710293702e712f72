package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/retshidi-radebe/bzfitness/internal/config"
	"github.com/retshidi-radebe/bzfitness/internal/store"
	"github.com/retshidi-radebe/bzfitness/internal/store/dialect"
	"github.com/retshidi-radebe/bzfitness/internal/store/dialect/mysql"
	"github.com/retshidi-radebe/bzfitness/internal/store/dialect/postgres"
	"github.com/retshidi-radebe/bzfitness/internal/store/dialect/sqlite"
)

// dataDir holds the --data-dir persistent flag value (set on root command).
var dataDir string

// resolveDataDir returns the data directory from --data-dir flag,
// BZFITNESS_DATA_DIR env var, or ~/.bzfitness as fallback.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if envDir := os.Getenv("BZFITNESS_DATA_DIR"); envDir != "" {
		return envDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bzfitness")
}

// loadSettings resolves the effective configuration.
func loadSettings() (config.Settings, error) {
	s, err := config.Load(vcfg)
	if err != nil {
		return config.Settings{}, fmt.Errorf("load config: %w", err)
	}
	return s, nil
}

// newDialects creates a dialect registry with every supported database.
func newDialects() *dialect.Registry {
	registry := dialect.NewRegistry()
	registry.Register("sqlite", sqlite.New)
	registry.Register("postgres", postgres.New)
	registry.Register("mysql", mysql.New)
	return registry
}

// openStore opens and migrates the configured database. SQLite without a
// DSN lives in the data directory.
func openStore(s config.Settings) (*store.Store, error) {
	d, err := newDialects().Lookup(s.Database.Driver)
	if err != nil {
		return nil, err
	}
	dsn := s.Database.DSN
	if dsn == "" && d.Name() == "sqlite" {
		if dsn, err = sqlite.FileDSN(resolveDataDir()); err != nil {
			return nil, err
		}
	}
	return store.Open(store.Options{Dialect: d, DSN: dsn, Location: s.Gym.Location})
}

// newLogger writes text logs to stderr so stdout stays free for command
// output and the MCP stdio transport.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// readPassword prompts without echo on a terminal, and otherwise reads one
// line from the command's input.
func readPassword(cmd *cobra.Command, confirm bool) (string, error) {
	in := cmd.InOrStdin()
	out := cmd.ErrOrStderr()

	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(out, "Password: ")
	pw, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if !confirm {
		return string(pw), nil
	}

	fmt.Fprint(out, "Confirm password: ")
	again, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read confirmation: %w", err)
	}
	if string(pw) != string(again) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pw), nil
}

// versionString returns a display version string.
func versionString() string {
	if appVersion == "" || appVersion == "dev" {
		return "dev"
	}
	if strings.HasPrefix(appVersion, "v") {
		return appVersion
	}
	return "v" + appVersion
}
