// Package cli implements atsctl, a terminal client for the ats API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hirepipe/ats/internal/client"
)

const (
	keyServer  = "server"
	keySession = "session"

	defaultServer = "http://localhost:8080"
)

var errNotSignedIn = errors.New("not signed in, run 'atsctl login' first")

// app carries what every command needs: the config and the output stream.
type app struct {
	v          *viper.Viper
	configPath string
	out        io.Writer
}

// NewRootCommand builds the atsctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "atsctl",
		Short:         "Command-line client for the applicant tracking service",
		Long:          "atsctl signs in to an ats server, manages jobs and candidates, and shows a job's hiring board.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			return a.loadConfig()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $HOME/.ats/config.yaml)")
	root.PersistentFlags().String(keyServer, "", "server base URL (overrides the config file)")
	_ = a.v.BindPFlag(keyServer, root.PersistentFlags().Lookup(keyServer))

	root.AddCommand(
		a.configCommand(),
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.jobsCommand(),
		a.candidatesCommand(),
		a.boardCommand(),
		a.moveCommand(),
		a.exportCommand(),
		a.resetCommand(),
	)
	return root
}

// Execute runs atsctl with the process arguments.
func Execute(ctx context.Context) int {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		return 1
	}
	return 0
}

func (a *app) loadConfig() error {
	if a.configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		a.configPath = filepath.Join(home, ".ats", "config.yaml")
	}

	a.v.SetConfigFile(a.configPath)
	a.v.SetConfigType("yaml")
	a.v.SetConfigPermissions(0o600)
	a.v.SetDefault(keyServer, defaultServer)
	a.v.SetDefault(keySession, "")
	a.v.SetEnvPrefix("ats")
	a.v.AutomaticEnv()

	if _, err := os.Stat(a.configPath); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func (a *app) saveConfig() error {
	if err := os.MkdirAll(filepath.Dir(a.configPath), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := a.v.WriteConfigAs(a.configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// client returns an API client that resumes the saved session, if any.
func (a *app) client() (*client.Client, error) {
	return client.New(a.v.GetString(keyServer), client.WithSessionToken(a.v.GetString(keySession)))
}

// signedInClient is client for commands that need a session.
func (a *app) signedInClient() (*client.Client, error) {
	if a.v.GetString(keySession) == "" {
		return nil, errNotSignedIn
	}
	return a.client()
}

// rememberSession stores the client's session token for later runs.
func (a *app) rememberSession(c *client.Client) error {
	a.v.Set(keySession, c.SessionToken())
	return a.saveConfig()
}
