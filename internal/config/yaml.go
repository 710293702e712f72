package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file written by `bzfitness config init`.
const FileName = "bzfitness.yaml"

// Template is the commented starter configuration. Its values match
// SetDefaults.
const Template = `# BZ Fitness configuration
# Every key can also be set as BZFITNESS_<SECTION>_<KEY>, e.g. BZFITNESS_SERVER_PORT.

server:
  host: 0.0.0.0
  port: 3000
  shutdown_timeout: 10s
  cors:
    origins: []
  tls:
    cert_file: ""
    key_file: ""

database:
  driver: sqlite   # sqlite, postgres or mysql
  dsn: ""          # empty: <data-dir>/bzfitness.db

auth:
  session_secret: ""        # or SESSION_SECRET
  admin_username: admin     # or ADMIN_USERNAME
  admin_password_hash: ""   # or ADMIN_PASSWORD_HASH; see 'bzfitness admin hash-password'
  secure_cookies: false     # true behind an HTTPS proxy

gym:
  timezone: Africa/Johannesburg

# Contact form notifications via Resend
notify:
  resend_api_key: ""
  from: ""
  to: ""

log:
  level: info   # debug, info, warn, error
`

// WriteTemplate writes Template to path, refusing to replace an existing
// file unless force is set.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(Template), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

const redacted = "********"

// Redacted returns a copy of s with secrets masked.
func (s Settings) Redacted() Settings {
	mask := func(v string) string {
		if v == "" {
			return ""
		}
		return redacted
	}
	s.Auth.SessionSecret = mask(s.Auth.SessionSecret)
	s.Auth.AdminPasswordHash = mask(s.Auth.AdminPasswordHash)
	s.Notify.ResendAPIKey = mask(s.Notify.ResendAPIKey)
	s.Database.DSN = redactDSN(s.Database.DSN)
	return s
}

// redactDSN masks the password of URL-style DSNs. Other forms are masked
// entirely since they may embed credentials anywhere.
func redactDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return redacted
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

// YAML renders the settings as they would appear in the config file.
func (s Settings) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
