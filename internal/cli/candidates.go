package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hirepipe/ats/internal/client"
)

func (a *app) candidatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "candidates",
		Aliases: []string{"cand"},
		Short:   "List, submit and inspect candidates",
	}

	list := &cobra.Command{
		Use:   "list JOB_ID",
		Short: "List a job's candidates in submission order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := parseID(args[0], "job id")
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			candidates, err := c.Candidates(cmd.Context(), jobID)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				fmt.Fprintln(a.out, "No candidates for this job yet")
				return nil
			}

			fmt.Fprintln(a.out, titleStyle.Render(fmt.Sprintf("Candidates for job #%d (%d)", jobID, len(candidates))))
			for _, cand := range candidates {
				fmt.Fprintf(a.out, "  • %s %s <%s>\n", labelStyle.Render(fmt.Sprintf("#%d", cand.ID)), cand.Name, cand.Email)
				fmt.Fprintf(a.out, "    %s %s | %s %s\n",
					labelStyle.Render("Stage:"), cand.Stage,
					labelStyle.Render("Recruiter:"), cand.RecruiterUsername)
				if cand.Notes != nil && *cand.Notes != "" {
					fmt.Fprintf(a.out, "    %s %s\n", labelStyle.Render("Notes:"), *cand.Notes)
				}
			}
			return nil
		},
	}

	var in client.NewCandidate
	var notes string
	add := &cobra.Command{
		Use:   "add",
		Short: "Submit a candidate (recruiters only)",
		Example: `  atsctl candidates add --job 1 --name "Ada Lovelace" --email ada@example.com \
    --phone 555-0100 --resume https://cv.example.com/ada.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.signedInClient()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("notes") {
				in.Notes = &notes
			}
			cand, err := c.CreateCandidate(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Candidate #%d submitted to job #%d (%s)\n", cand.ID, cand.JobID, cand.Stage)
			return nil
		},
	}
	add.Flags().Int64Var(&in.JobID, "job", 0, "job id")
	add.Flags().StringVar(&in.Name, "name", "", "candidate name")
	add.Flags().StringVar(&in.Email, "email", "", "candidate email")
	add.Flags().StringVar(&in.Phone, "phone", "", "candidate phone")
	add.Flags().StringVar(&in.ResumeURL, "resume", "", "resume URL")
	add.Flags().StringVar(&in.Stage, "stage", "", "initial stage (default Submitted)")
	add.Flags().StringVar(&notes, "notes", "", "free-text notes")
	for _, f := range []string{"job", "name", "email", "phone", "resume"} {
		_ = add.MarkFlagRequired(f)
	}

	history := &cobra.Command{
		Use:   "history CANDIDATE_ID",
		Short: "Show a candidate's stage changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "candidate id")
			if err != nil {
				return err
			}
			c, err := a.signedInClient()
			if err != nil {
				return err
			}
			events, err := c.History(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(a.out, "No stage changes recorded")
				return nil
			}
			for _, ev := range events {
				fmt.Fprintf(a.out, "  %s %s → %s %s\n",
					mutedStyle.Render(ev.At.Local().Format(time.DateTime)),
					ev.From, ev.To,
					mutedStyle.Render("by "+ev.Actor))
			}
			return nil
		},
	}

	cmd.AddCommand(list, add, history)
	return cmd
}
