// Package config resolves the service settings from defaults, the
// bzfitness.yaml file and the environment.
package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	_ "time/tzdata" // gym.timezone must resolve on hosts without zoneinfo

	"github.com/spf13/viper"
)

// FallbackSessionSecret signs sessions when auth.session_secret is unset.
const FallbackSessionSecret = "bz-fitness-secret-key-change-in-production"

// Drivers lists the accepted database.driver values.
var Drivers = []string{"sqlite", "postgres", "mysql"}

// Settings is the fully resolved configuration.
type Settings struct {
	Server   ServerSettings   `yaml:"server"`
	Database DatabaseSettings `yaml:"database"`
	Auth     AuthSettings     `yaml:"auth"`
	Gym      GymSettings      `yaml:"gym"`
	Notify   NotifySettings   `yaml:"notify"`
	Log      LogSettings      `yaml:"log"`
}

// ServerSettings controls the HTTP listener.
type ServerSettings struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORS            CORSSettings  `yaml:"cors"`
	TLS             TLSSettings   `yaml:"tls"`
}

// CORSSettings lists the browser origins allowed to call the API.
type CORSSettings struct {
	Origins []string `yaml:"origins"`
}

// TLSSettings enables HTTPS when both files are set.
type TLSSettings struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// Enabled reports whether the server should terminate TLS itself.
func (t TLSSettings) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

// DatabaseSettings selects the SQL engine. An empty DSN with sqlite means
// the bzfitness.db file in the data directory.
type DatabaseSettings struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// AuthSettings holds the session secret and the environment superadmin.
type AuthSettings struct {
	SessionSecret     string `yaml:"session_secret"`
	AdminUsername     string `yaml:"admin_username"`
	AdminPasswordHash string `yaml:"admin_password_hash"`
	SecureCookies     bool   `yaml:"secure_cookies"`
}

// UsingFallbackSecret reports whether sessions are signed with the
// built-in secret.
func (a AuthSettings) UsingFallbackSecret() bool {
	return a.SessionSecret == FallbackSessionSecret
}

// GymSettings describes the gym itself.
type GymSettings struct {
	Timezone string         `yaml:"timezone"`
	Location *time.Location `yaml:"-"`
}

// NotifySettings configures contact-form notification email. Sending is
// disabled unless ResendAPIKey, From and To are all set.
type NotifySettings struct {
	ResendAPIKey string `yaml:"resend_api_key"`
	From         string `yaml:"from"`
	To           string `yaml:"to"`
}

// Enabled reports whether notification email can be sent.
func (n NotifySettings) Enabled() bool {
	return n.ResendAPIKey != "" && n.From != "" && n.To != ""
}

// LogSettings controls log verbosity.
type LogSettings struct {
	Level string `yaml:"level"`
}

// SlogLevel converts Level, defaulting to Info.
func (l LogSettings) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// SetDefaults registers the default for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.cors.origins", []string{})
	v.SetDefault("server.tls.cert_file", "")
	v.SetDefault("server.tls.key_file", "")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("auth.secure_cookies", false)
	v.SetDefault("gym.timezone", "Africa/Johannesburg")
	v.SetDefault("notify.resend_api_key", "")
	v.SetDefault("notify.from", "")
	v.SetDefault("notify.to", "")
	v.SetDefault("log.level", "info")
}

// legacyEnv maps keys to the plain variable names older deployments use.
var legacyEnv = map[string]string{
	"auth.admin_username":      "ADMIN_USERNAME",
	"auth.admin_password_hash": "ADMIN_PASSWORD_HASH",
	"auth.session_secret":      "SESSION_SECRET",
	"notify.resend_api_key":    "RESEND_API_KEY",
}

// BindEnv maps BZFITNESS_SECTION_KEY variables onto keys and binds the
// legacy names. The prefixed name wins when both are set.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix("BZFITNESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, name := range legacyEnv {
		prefixed := "BZFITNESS_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		v.BindEnv(key, prefixed, name)
	}
}

// Load resolves Settings from v, which should already have defaults, env
// bindings and any config file applied.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Server: ServerSettings{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
			CORS: CORSSettings{Origins: v.GetStringSlice("server.cors.origins")},
			TLS: TLSSettings{
				CertFile: v.GetString("server.tls.cert_file"),
				KeyFile:  v.GetString("server.tls.key_file"),
			},
		},
		Database: DatabaseSettings{
			Driver: strings.ToLower(v.GetString("database.driver")),
			DSN:    v.GetString("database.dsn"),
		},
		Auth: AuthSettings{
			SessionSecret:     v.GetString("auth.session_secret"),
			AdminUsername:     v.GetString("auth.admin_username"),
			AdminPasswordHash: strings.ToLower(strings.TrimSpace(v.GetString("auth.admin_password_hash"))),
			SecureCookies:     v.GetBool("auth.secure_cookies"),
		},
		Gym: GymSettings{Timezone: v.GetString("gym.timezone")},
		Notify: NotifySettings{
			ResendAPIKey: v.GetString("notify.resend_api_key"),
			From:         v.GetString("notify.from"),
			To:           v.GetString("notify.to"),
		},
		Log: LogSettings{Level: v.GetString("log.level")},
	}

	timeout, err := time.ParseDuration(v.GetString("server.shutdown_timeout"))
	if err != nil {
		return Settings{}, fmt.Errorf("server.shutdown_timeout: %w", err)
	}
	s.Server.ShutdownTimeout = timeout

	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return Settings{}, fmt.Errorf("server.port: %d out of range", s.Server.Port)
	}
	if !slices.Contains(Drivers, s.Database.Driver) {
		return Settings{}, fmt.Errorf("database.driver: unsupported %q (available: %v)", s.Database.Driver, Drivers)
	}
	if s.Database.Driver != "sqlite" && s.Database.DSN == "" {
		return Settings{}, fmt.Errorf("database.dsn: required for %s", s.Database.Driver)
	}
	if (s.Server.TLS.CertFile == "") != (s.Server.TLS.KeyFile == "") {
		return Settings{}, fmt.Errorf("server.tls: cert_file and key_file must be set together")
	}

	loc, err := time.LoadLocation(s.Gym.Timezone)
	if err != nil {
		return Settings{}, fmt.Errorf("gym.timezone: %w", err)
	}
	s.Gym.Location = loc

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return Settings{}, fmt.Errorf("log.level: %w", err)
	}

	if s.Auth.SessionSecret == "" {
		s.Auth.SessionSecret = FallbackSessionSecret
	}
	return s, nil
}
