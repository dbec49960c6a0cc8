package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hirepipe/ats/internal/core/domain"
)

var configKeys = []string{keyServer}

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, titleStyle.Render("Configuration"))
			fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Config File:"), a.configPath)
			fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Server:"), a.v.GetString(keyServer))
			session := "✗ Signed out"
			if a.v.GetString(keySession) != "" {
				session = "✓ Signed in"
			}
			fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Session:"), session)
			return nil
		},
	}

	set := &cobra.Command{
		Use:     "set KEY VALUE",
		Short:   "Update a configuration value",
		Example: "  atsctl config set server https://ats.example.com",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !slices.Contains(configKeys, key) {
				return fmt.Errorf("invalid key %q, must be one of %v", key, configKeys)
			}
			a.v.Set(key, value)
			if key == keyServer {
				// a session belongs to one server
				a.v.Set(keySession, "")
			}
			if err := a.saveConfig(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Configuration updated: %s\n", key)
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}

func (a *app) registerCommand() *cobra.Command {
	var username, password, role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Example: `  atsctl register --username maria --password s3cret --role manager
  atsctl register --username rita --password s3cret --role recruiter`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			id, err := c.Register(cmd.Context(), username, password, role)
			if err != nil {
				return err
			}
			if err := a.rememberSession(c); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Registered and signed in as %s (%s)\n", id.Username, id.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&role, "role", domain.RoleRecruiter, "role: recruiter or manager")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) loginCommand() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			id, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := a.rememberSession(c); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Signed in as %s (%s)\n", id.Username, id.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.v.GetString(keySession) != "" {
				c, err := a.client()
				if err != nil {
					return err
				}
				if err := c.Logout(cmd.Context()); err != nil {
					return err
				}
			}
			a.v.Set(keySession, "")
			if err := a.saveConfig(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "✓ Signed out")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.signedInClient()
			if err != nil {
				return err
			}
			id, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Username:"), id.Username)
			fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Role:"), id.Role)
			fmt.Fprintf(a.out, "%s %d\n", labelStyle.Render("ID:"), id.ID)
			return nil
		},
	}
}
