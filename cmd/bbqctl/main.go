// Command bbqctl runs the restaurant services from the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bbqgrill/backend/internal/config"
	"github.com/bbqgrill/backend/internal/logging"
	"github.com/bbqgrill/backend/internal/repository"
	"github.com/bbqgrill/backend/internal/service"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app holds what the subcommands share. The service constructors are fields
// so tests can swap in fakes.
type app struct {
	cfg *config.Resolver

	newLocationService func(connString string) service.LocationService
	newEmailService    func(cfg service.SMTPConfig) service.EmailService
	connect            repository.Connector
}

func newApp(cfg *config.Resolver) *app {
	return &app{
		cfg: cfg,
		newLocationService: func(connString string) service.LocationService {
			return service.NewLocationService(repository.NewGateway(connString))
		},
		newEmailService: service.NewEmailService,
		connect:         repository.PgxConnector,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bbqctl",
		Short:         "Operate the BBQ and Grill services",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSearchCmd(a),
		newContactCmd(a),
		newConfigCmd(a),
		newMigrateCmd(a),
	)
	return root
}

func main() {
	_ = godotenv.Load()
	logging.Setup(os.Getenv("LOG_LEVEL"))

	src, err := config.LoadFile(config.ConfigFile(os.Getenv))
	if err != nil {
		logging.Fatal("failed to load configuration", "error", err)
	}

	os.Exit(execute(newRootCmd(newApp(config.NewResolver(src))), os.Stderr))
}

// execute runs root and returns the process exit code. Command errors are
// user-facing results, so they are printed plainly rather than logged.
func execute(root *cobra.Command, stderr io.Writer) int {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
