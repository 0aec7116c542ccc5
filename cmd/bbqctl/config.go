package main

import (
	"net/url"
	"strings"

	"github.com/bbqgrill/backend/internal/config"
	"github.com/bbqgrill/backend/internal/logging"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved settings with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			smtp := a.cfg.SMTP()
			connString, err := a.cfg.ConnectionString(config.DefaultConnectionName)
			if err != nil {
				connString = "(not set)"
			} else {
				connString = maskConnString(connString)
			}

			cmd.Printf("connection_string: %s\n", connString)
			cmd.Printf("smtp.host:         %s\n", smtp.Host)
			cmd.Printf("smtp.port:         %d\n", smtp.Port)
			cmd.Printf("smtp.username:     %s\n", smtp.Username)
			cmd.Printf("smtp.password:     %s\n", logging.MaskSecret(smtp.Password))
			cmd.Printf("smtp.from_email:   %s\n", smtp.FromEmail)
			cmd.Printf("smtp.enable_ssl:   %t\n", smtp.EnableSSL)
			cmd.Printf("smtp.timeout:      %s\n", smtp.Timeout)
			cmd.Printf("server.addr:       %s\n", a.cfg.ServerAddr())
			cmd.Printf("frontend_url:      %s\n", a.cfg.FrontendURL())
			cmd.Printf("contact_rate:      %d/min\n", a.cfg.ContactRateLimit())
			cmd.Printf("menu.catalog_file: %s\n", a.cfg.MenuCatalogFile())
			return nil
		},
	}
}

// maskConnString hides the password in a connection string, whether it sits
// in the URL user info, a password query parameter or a password= keyword.
// Strings pgx cannot parse are masked whole.
func maskConnString(s string) string {
	if _, err := pgconn.ParseConfig(s); err != nil {
		return logging.MaskSecret(s)
	}
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return logging.MaskSecret(s)
		}
		if q := u.Query(); q.Has("password") {
			q.Set("password", "xxxxx")
			u.RawQuery = q.Encode()
		}
		return u.Redacted()
	}
	masked, ok := maskKeywordPassword(s)
	if !ok {
		return logging.MaskSecret(s)
	}
	return masked
}

// maskKeywordPassword rewrites the value of every password keyword in a
// "key=value key='quoted value'" string, following libpq quoting: values
// may be single-quoted and backslash escapes the next byte. It reports
// false when the string is not well formed.
func maskKeywordPassword(s string) (string, bool) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if isConnSpace(s[i]) {
			b.WriteByte(s[i])
			i++
			continue
		}

		keyStart := i
		for i < len(s) && s[i] != '=' && !isConnSpace(s[i]) {
			i++
		}
		key := s[keyStart:i]
		for i < len(s) && isConnSpace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '=' {
			return "", false
		}
		i++
		for i < len(s) && isConnSpace(s[i]) {
			i++
		}

		valueStart := i
		if i < len(s) && s[i] == '\'' {
			i++
			for i < len(s) && s[i] != '\'' {
				if s[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(s) {
				return "", false
			}
			i++
		} else {
			for i < len(s) && !isConnSpace(s[i]) {
				if s[i] == '\\' {
					i++
				}
				i++
			}
			if i > len(s) {
				i = len(s)
			}
		}

		b.WriteString(s[keyStart:valueStart])
		if key == "password" {
			b.WriteString(logging.MaskSecret("password"))
		} else {
			b.WriteString(s[valueStart:i])
		}
	}
	return b.String(), true
}

func isConnSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
