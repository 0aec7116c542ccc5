// Package config resolves named settings from the process environment first
// and a structured configuration source second, applying typed defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables checked before the structured source.
const (
	EnvConnectionString = "BBQ_DB_CONNECTION_STRING"
	EnvSMTPHost         = "SMTP_HOST"
	EnvSMTPPort         = "SMTP_PORT"
	EnvSMTPUsername     = "SMTP_USERNAME"
	EnvSMTPPassword     = "SMTP_PASSWORD"
	EnvSMTPFromEmail    = "SMTP_FROM_EMAIL"
	EnvSMTPEnableSSL    = "SMTP_ENABLE_SSL"
	EnvSMTPTimeout      = "SMTP_TIMEOUT_SECONDS"
	EnvServerAddr       = "SERVER_ADDR"
	EnvFrontendURL      = "FRONTEND_URL"
	EnvContactRateLimit = "CONTACT_RATE_LIMIT"
	EnvMenuCatalogFile  = "MENU_CATALOG_FILE"
	EnvConfigFile       = "BBQ_CONFIG_FILE"
)

// Keys in the structured source.
const (
	KeySMTPHost         = "Smtp:Host"
	KeySMTPPort         = "Smtp:Port"
	KeySMTPUsername     = "Smtp:Username"
	KeySMTPPassword     = "Smtp:Password"
	KeySMTPFromEmail    = "Smtp:FromEmail"
	KeySMTPEnableSSL    = "Smtp:EnableSsl"
	KeySMTPTimeout      = "Smtp:TimeoutSeconds"
	KeyServerAddr       = "Server:Addr"
	KeyFrontendURL      = "Server:FrontendURL"
	KeyContactRateLimit = "Server:ContactRateLimit"
	KeyMenuCatalogFile  = "Menu:CatalogFile"

	connectionStringsSection = "ConnectionStrings"
)

// DefaultConnectionName is the connection-string entry used by the gateway.
const DefaultConnectionName = "bbqConnectionString"

// DefaultConfigFile is read when BBQ_CONFIG_FILE is unset.
const DefaultConfigFile = "appsettings.yaml"

const (
	defaultSMTPPort         = 587
	defaultSMTPEnableSSL    = true
	defaultSMTPTimeout      = 10 * time.Second
	defaultServerAddr       = ":8080"
	defaultFrontendURL      = "http://localhost:4321"
	defaultContactRateLimit = 5
	defaultMenuCatalogFile  = "menu.yaml"
)

// ErrMissingConnectionString is returned when no connection string is
// available from either the environment or the structured source.
var ErrMissingConnectionString = errors.New("connection string not configured")

// Resolver looks settings up on every call; nothing is cached so hosted
// environments can change variables between requests.
type Resolver struct {
	source Source
	getenv func(string) string
}

// NewResolver creates a Resolver over the process environment and src.
// A nil src behaves as an empty source.
func NewResolver(src Source) *Resolver {
	return NewResolverWithEnv(src, os.Getenv)
}

// NewResolverWithEnv is NewResolver with an explicit environment lookup.
func NewResolverWithEnv(src Source, getenv func(string) string) *Resolver {
	if src == nil {
		src = NewMapSource(nil)
	}
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Resolver{source: src, getenv: getenv}
}

// Resolve returns the environment variable envVar when set and non-empty,
// otherwise the structured value for key when non-empty, otherwise def.
func (r *Resolver) Resolve(key, envVar, def string) string {
	if envVar != "" {
		if v := r.getenv(envVar); v != "" {
			return v
		}
	}
	if v, ok := r.source.Lookup(key); ok && v != "" {
		return v
	}
	return def
}

// Int resolves a setting and parses it as an integer, returning def when
// the value is absent or does not parse.
func (r *Resolver) Int(key, envVar string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.Resolve(key, envVar, "")))
	if err != nil {
		return def
	}
	return n
}

// Bool resolves a setting accepting only "true" or "false" in any case.
func (r *Resolver) Bool(key, envVar string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(r.Resolve(key, envVar, ""))) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// ConnectionString resolves the named connection string. Unlike the other
// settings a missing value is an error: the service cannot run without a
// store address.
func (r *Resolver) ConnectionString(name string) (string, error) {
	if v := r.getenv(EnvConnectionString); v != "" {
		return v, nil
	}
	if v, ok := r.source.Lookup(connectionStringsSection + ":" + name); ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q (set %s or %s:%s in the config file)",
		ErrMissingConnectionString, name, EnvConnectionString, connectionStringsSection, name)
}

func (r *Resolver) SMTPHost() string     { return r.Resolve(KeySMTPHost, EnvSMTPHost, "") }
func (r *Resolver) SMTPUsername() string { return r.Resolve(KeySMTPUsername, EnvSMTPUsername, "") }
func (r *Resolver) SMTPPassword() string { return r.Resolve(KeySMTPPassword, EnvSMTPPassword, "") }
func (r *Resolver) SMTPFromEmail() string {
	return r.Resolve(KeySMTPFromEmail, EnvSMTPFromEmail, "")
}

// SMTPPort defaults to 587 when unset or not an integer.
func (r *Resolver) SMTPPort() int { return r.Int(KeySMTPPort, EnvSMTPPort, defaultSMTPPort) }

// SMTPEnableSSL defaults to true when unset or not a boolean.
func (r *Resolver) SMTPEnableSSL() bool {
	return r.Bool(KeySMTPEnableSSL, EnvSMTPEnableSSL, defaultSMTPEnableSSL)
}

// SMTPTimeout is the dial and I/O timeout for a single delivery.
func (r *Resolver) SMTPTimeout() time.Duration {
	secs := r.Int(KeySMTPTimeout, EnvSMTPTimeout, 0)
	if secs <= 0 {
		return defaultSMTPTimeout
	}
	return time.Duration(secs) * time.Second
}

// SMTPSettings is a point-in-time snapshot of the outbound mail settings.
type SMTPSettings struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	EnableSSL bool
	Timeout   time.Duration
}

// SMTP resolves all outbound mail settings at once.
func (r *Resolver) SMTP() SMTPSettings {
	return SMTPSettings{
		Host:      r.SMTPHost(),
		Port:      r.SMTPPort(),
		Username:  r.SMTPUsername(),
		Password:  r.SMTPPassword(),
		FromEmail: r.SMTPFromEmail(),
		EnableSSL: r.SMTPEnableSSL(),
		Timeout:   r.SMTPTimeout(),
	}
}

// ServerAddr is the listen address of the HTTP service.
func (r *Resolver) ServerAddr() string {
	return r.Resolve(KeyServerAddr, EnvServerAddr, defaultServerAddr)
}

// FrontendURL is the allowed CORS origin.
func (r *Resolver) FrontendURL() string {
	return r.Resolve(KeyFrontendURL, EnvFrontendURL, defaultFrontendURL)
}

// ContactRateLimit is the per-client, per-minute limit on contact submissions.
func (r *Resolver) ContactRateLimit() int {
	n := r.Int(KeyContactRateLimit, EnvContactRateLimit, defaultContactRateLimit)
	if n <= 0 {
		return defaultContactRateLimit
	}
	return n
}

// MenuCatalogFile is the path of the YAML menu catalog.
func (r *Resolver) MenuCatalogFile() string {
	return r.Resolve(KeyMenuCatalogFile, EnvMenuCatalogFile, defaultMenuCatalogFile)
}

// ConfigFile returns the structured configuration path named by the
// environment, or DefaultConfigFile.
func ConfigFile(getenv func(string) string) string {
	if v := getenv(EnvConfigFile); v != "" {
		return v
	}
	return DefaultConfigFile
}
