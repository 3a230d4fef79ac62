package main

import (
	"fmt"
	"strconv"
	"strings"

	"kidsmath/internal/logging"
	"kidsmath/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var flagHistoryLimit int

// historyCmd lists past quiz sessions
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz sessions",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 20, "Number of sessions to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := store.NewLocalStore(cfg.Store.DatabasePath, categoryLogger(logging.CategoryStore))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()

	sessions, err := db.ListSessions(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No quiz sessions yet. Start one with: kidsmath quiz")
		return nil
	}

	fmt.Fprint(out, historyTable(sessions))
	fmt.Fprintln(out)

	totals, err := db.Totals()
	if err != nil {
		return err
	}
	rate := 0.0
	if totals.Attempts > 0 {
		rate = float64(totals.Correct) / float64(totals.Attempts)
	}
	fmt.Fprintf(out, "Total: %d sessions, %d attempts, %d correct (%.0f%%)\n",
		totals.Sessions, totals.Attempts, totals.Correct, rate*100)
	return nil
}

func historyTable(sessions []store.SessionRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Started", "Range", "Numbers", "Ops", "Correct", "Attempts", "Rate")

	for _, s := range sessions {
		correct := fmt.Sprintf("%d/%d", s.Correct, s.Questions)
		if !s.Finished() {
			correct += " (stopped)"
		}
		t.Row(
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d-%d", s.Lower, s.Upper),
			strconv.Itoa(s.Numbers),
			strings.Join(s.Operators, " "),
			correct,
			strconv.Itoa(s.Attempts),
			fmt.Sprintf("%.0f%%", s.Rate()*100),
		)
	}
	return t.Render()
}
