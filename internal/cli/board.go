package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hirepipe/ats/internal/board"
	"github.com/hirepipe/ats/internal/core/domain"
)

const columnWidth = 22

func (a *app) boardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "board JOB_ID",
		Short: "Show a job's candidates by stage",
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
			b := board.New(c, jobID)
			if err := b.Load(cmd.Context()); err != nil {
				return err
			}
			renderBoard(a.out, b)
			return nil
		},
	}
}

func (a *app) moveCommand() *cobra.Command {
	var jobID int64
	cmd := &cobra.Command{
		Use:   "move CANDIDATE_ID STAGE",
		Short: "Move a candidate to another stage",
		Example: `  atsctl move 12 "Second Round" --job 3
  atsctl move 12 rejected --job 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidateID, err := parseID(args[0], "candidate id")
			if err != nil {
				return err
			}
			stage, ok := matchStage(args[1])
			if !ok {
				return fmt.Errorf("unknown stage %q, must be one of %s", args[1], strings.Join(domain.StageNames(), ", "))
			}

			c, err := a.signedInClient()
			if err != nil {
				return err
			}
			b := board.New(c, jobID)
			if err := b.OnDragEnd(cmd.Context(), board.Drop{CandidateID: candidateID, Destination: stage}); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "✓ Candidate #%d moved to %s\n", candidateID, stage)
			renderBoard(a.out, b)
			return nil
		},
	}
	cmd.Flags().Int64Var(&jobID, "job", 0, "job id of the board the candidate is on")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

// matchStage resolves a stage name case-insensitively.
func matchStage(s string) (domain.Stage, bool) {
	for _, st := range domain.Stages {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

func renderBoard(w io.Writer, b *board.Board) {
	g := b.Grouping()
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Board for job #%d", b.JobID())))

	cols := make([]string, 0, len(g.Columns))
	for _, col := range g.Columns {
		heading := columnTitleStyle.
			Foreground(stageColors[string(col.Stage)]).
			Render(fmt.Sprintf("%s (%d)", col.Stage, len(col.Candidates)))

		lines := []string{heading}
		for _, cand := range col.Candidates {
			lines = append(lines, fmt.Sprintf("#%d %s", cand.ID, cand.Name))
			lines = append(lines, mutedStyle.Render(cand.RecruiterUsername))
		}
		if len(col.Candidates) == 0 {
			lines = append(lines, mutedStyle.Render("empty"))
		}
		cols = append(cols, columnStyle.Render(strings.Join(lines, "\n")))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cols...))

	if len(g.Unplaced) > 0 {
		fmt.Fprintln(w, labelStyle.Render("Unplaced:"))
		for _, cand := range g.Unplaced {
			fmt.Fprintf(w, "  • #%d %s (%s)\n", cand.ID, cand.Name, cand.Stage)
		}
	}
}
