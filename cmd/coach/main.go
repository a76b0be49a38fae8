package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/client"
	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/session"
	"alfredoptarigan/interview-coach/internal/tui"
)

var (
	cfg     *config.Config
	apiBase string
	flags   selectionFlags
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Practice multi-round mock interviews in the terminal",
	Long: `coach runs a mock interview against the scoring service.

Each round shows a question, sends your answer for evaluation and shows the
feedback. After the last round the service writes a final report.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal, so logs go to a file.
		zc := zap.NewProductionConfig()
		zc.OutputPaths = []string{cfg.Client.LogFile}
		zc.ErrorOutputPaths = []string{cfg.Client.LogFile}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l.With(zap.String("api", apiBase))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInterview,
}

var summaryCmd = &cobra.Command{
	Use:   "summary <session-id>",
	Short: "Print the server's summary of a session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func init() {
	cfg = config.Load()

	rootCmd.PersistentFlags().StringVar(&apiBase, "api", cfg.Client.APIBase, "scoring service base URL")
	flags.register(rootCmd.Flags())
	rootCmd.AddCommand(summaryCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newGateway() *client.HTTPGateway {
	return client.NewHTTPGateway(apiBase, cfg.Client.RequestTimeout)
}

func runInterview(cmd *cobra.Command, args []string) error {
	sel, err := flags.buildSelection(cmd.Flags())
	if err != nil {
		return err
	}

	dispatcher := session.NewDispatcher(
		session.NewResolver(cfg.Limits()),
		session.NewController(newGateway()),
		session.NewActivityLog(cfg.Client.ActivityCapacity, logger),
	)

	logger.Info("starting interview UI",
		zap.String("field", sel.Field),
		zap.String("interview_type", sel.InterviewType),
		zap.Int("difficulty", sel.Difficulty),
		zap.Int("rounds", sel.Rounds),
		zap.Bool("resume", sel.Resume != ""),
		zap.Bool("job_description", sel.JobDescription != ""),
	)

	p := tea.NewProgram(
		tui.New(cmd.Context(), dispatcher, sel),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		logger.Error("interview UI failed", zap.Error(err))
		return err
	}

	if st := dispatcher.State(); st.HasSession() {
		fmt.Fprintf(cmd.OutOrStdout(), "Session %s: %s, round %d of %d, average %.2f\n",
			st.SessionID, st.Phase, min(st.CurrentRound, st.TotalRounds), st.TotalRounds, st.AverageScore)
	}
	return nil
}
