package main

import (
	"fmt"

	"kidsmath/cmd/kidsmath/ui"
	"kidsmath/internal/config"
	"kidsmath/internal/logging"
	"kidsmath/internal/quiz"
	"kidsmath/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagNoSave bool

// Quiz length unless --tests is given.
const defaultQuizTests = 10

// quizCmd runs an interactive practice session
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Practice in the terminal",
	Long: `Shows one formula at a time. A wrong answer keeps the same formula;
the quiz ends once every formula has been answered correctly, then prints
the number of attempts and the success rate. Sessions are saved to the
history database unless --no-save is given.`,
	Args: cobra.NoArgs,
	RunE: runQuiz,
}

func init() {
	addWorksheetFlags(quizCmd)
	quizCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the session in history")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	w := worksheetConfig(cmd)
	if !cmd.Flags().Changed("tests") {
		w.Tests = defaultQuizTests
	}
	b, err := generateBatch(cmd.Context(), w)
	if err != nil {
		return err
	}

	quizLog := categoryLogger(logging.CategoryQuiz)
	session, err := quiz.New(b, quizLog)
	if err != nil {
		return err
	}

	model := ui.NewQuizModel(session, ui.NewStyles(ui.ThemeFor(cfg.UI.Theme)), cfg.UI.Glyphs)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("quiz: %w", err)
	}
	done := final.(ui.QuizModel)

	fmt.Fprintln(cmd.OutOrStdout(), session.Summary())

	if flagNoSave || session.Attempts() == 0 {
		return nil
	}
	if err := saveSession(session, w, b.Seed); err != nil {
		// The quiz itself succeeded; losing the record is not fatal.
		quizLog.Warn("session not saved", zap.Error(err))
	}
	if done.Aborted() {
		quizLog.Info("quiz stopped early", zap.Int("correct", session.Correct()), zap.Int("questions", session.Len()))
	}
	return nil
}

func saveSession(s *quiz.Session, w config.WorksheetConfig, seed uint64) error {
	db, err := store.NewLocalStore(cfg.Store.DatabasePath, categoryLogger(logging.CategoryStore))
	if err != nil {
		return err
	}
	defer db.Close()

	stats := s.Stats()
	return db.SaveSession(store.SessionRecord{
		ID:         s.ID,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		Lower:      w.Lower,
		Upper:      w.Upper,
		Numbers:    w.Numbers,
		Operators:  w.Operators,
		ForbidZero: w.ForbidZeroOperand,
		Seed:       seed,
		Questions:  stats.Questions,
		Attempts:   stats.Attempts,
		Correct:    stats.Correct,
	})
}
