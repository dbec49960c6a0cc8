package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hirepipe/ats/internal/client"
)

func parseID(arg, name string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, arg)
	}
	return id, nil
}

func (a *app) jobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List and post jobs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			jobs, err := c.Jobs(cmd.Context())
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Fprintln(a.out, "No jobs yet. Managers can post one with 'atsctl jobs create'")
				return nil
			}

			fmt.Fprintln(a.out, titleStyle.Render(fmt.Sprintf("Jobs (%d)", len(jobs))))
			for _, j := range jobs {
				fmt.Fprintf(a.out, "  • %s %s\n", labelStyle.Render(fmt.Sprintf("#%d", j.ID)), j.Title)
				fmt.Fprintf(a.out, "    %s\n", mutedStyle.Render(j.Requirements))
			}
			return nil
		},
	}

	var in client.NewJob
	create := &cobra.Command{
		Use:   "create",
		Short: "Post a job (managers only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.signedInClient()
			if err != nil {
				return err
			}
			job, err := c.CreateJob(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Job #%d posted: %s\n", job.ID, job.Title)
			return nil
		},
	}
	create.Flags().StringVar(&in.Title, "title", "", "job title")
	create.Flags().StringVar(&in.Description, "description", "", "job description")
	create.Flags().StringVar(&in.Requirements, "requirements", "", "job requirements")
	_ = create.MarkFlagRequired("title")

	cmd.AddCommand(list, create)
	return cmd
}

func (a *app) exportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export JOB_ID",
		Short: "Download a job's candidates as a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := parseID(args[0], "job id")
			if err != nil {
				return err
			}
			c, err := a.signedInClient()
			if err != nil {
				return err
			}
			exp, err := c.ExportCandidates(cmd.Context(), jobID)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = filepath.Base(exp.Filename)
			}
			if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(a.out, "✓ Exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: server-provided name)")
	return cmd
}

func (a *app) resetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all candidates, jobs and users (managers only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset is irreversible, pass --yes to confirm")
			}
			c, err := a.signedInClient()
			if err != nil {
				return err
			}
			if err := c.Reset(cmd.Context()); err != nil {
				return err
			}
			// the account behind the session is gone
			a.v.Set(keySession, "")
			if err := a.saveConfig(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "✓ All data has been cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
