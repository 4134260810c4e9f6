// cmd/pathway/main.go
//
// This is the entry point for the pathway CLI.
// Running `pathway` with no subcommand launches the questionnaire TUI.
//
// Flow:
// 1. Create .pathway/ in the project directory and load its config
// 2. Open the log file and load the questionnaire content
// 3. Run the requested front end (TUI, chat bot) or a one-shot command

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

	"github.com/kingrea/pathway/internal/config"
	"github.com/kingrea/pathway/internal/handoff"
	"github.com/kingrea/pathway/internal/logging"
	"github.com/kingrea/pathway/internal/quiz"
	"github.com/kingrea/pathway/internal/telegram"
	"github.com/kingrea/pathway/internal/tui"
)

var (
	// Global flags
	projectDir string
	verbose    bool

	// Set up in PersistentPreRunE
	cfg     *config.Config
	logger  *logging.Logger
	content *quiz.Content
)

var rootCmd = &cobra.Command{
	Use:   "pathway",
	Short: "Find the graduate program that fits you",
	Long: `pathway asks five multiple-choice questions, collects an email address,
and recommends a graduate program in social work, counseling, or psychology.

Run without arguments to start the interactive questionnaire.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Close()
		}
	},
	RunE: runQuestionnaire,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "directory holding .pathway/ (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.AddCommand(resolveCmd, programsCmd, validateCmd, logCmd, botCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads config, logger, and content for every command.
func setup(cmd *cobra.Command, args []string) error {
	dir := projectDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		dir = cwd
	}
	if err := config.InitPathwayDir(dir); err != nil {
		return err
	}
	var err error
	cfg, err = config.NewConfig(dir)
	if err != nil {
		return err
	}

	level := cfg.LogLevel()
	if verbose {
		level = "debug"
	}
	logger, err = logging.New(cfg.LogsDir(), level)
	if err != nil {
		return err
	}

	content, err = loadContent(cfg)
	if err != nil {
		logger.Error("load content", zap.Error(err))
		return err
	}
	logger.Debug("content loaded",
		zap.String("command", cmd.Name()),
		zap.String("source", contentSource(cfg)),
	)
	return nil
}

func loadContent(cfg *config.Config) (*quiz.Content, error) {
	if path := cfg.ContentPath(); path != "" {
		return quiz.LoadFile(path)
	}
	return quiz.LoadDefault()
}

func contentSource(cfg *config.Config) string {
	if path := cfg.ContentPath(); path != "" {
		return path
	}
	return "built-in"
}

func collaborators() quiz.Collaborators {
	return handoff.NewLogged(logger.Logger, cfg.AdvisingURL()).Collaborators()
}

func runQuestionnaire(cmd *cobra.Command, args []string) error {
	app := tui.NewApp(content,
		tui.WithCollaborators(collaborators()),
		tui.WithLogger(logger.Logger),
		tui.WithAdvising(cfg.AdvisingLabel(), cfg.AdvisingURL()),
	)
	// tea.NewProgram creates a new bubbletea application
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	if result, ok := app.Session().Result(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Recommended program: %s\n", result.Recommended)
	}
	return nil
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Serve the questionnaire as a Telegram bot",
	Long: `Starts a long-polling Telegram bot. The token is read from the environment
variable named by telegram.token_env in .pathway/config.yaml
(PATHWAY_TELEGRAM_TOKEN by default).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := cfg.TelegramToken()
		if err != nil {
			return err
		}
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		h := telegram.NewHandler(content, collaborators(), logger.Logger, cfg.AdvisingLabel())
		fmt.Fprintln(cmd.OutOrStdout(), "Bot running. Press Ctrl+C to stop.")
		return telegram.Run(ctx, token, h)
	},
}
