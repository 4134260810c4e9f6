package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kingrea/pathway/internal/logging"
	"github.com/kingrea/pathway/internal/quiz"
)

var resolveMarkdown bool

var resolveCmd = &cobra.Command{
	Use:   "resolve a1 a2 a3 a4 a5",
	Short: "Print the recommendation for a set of answers",
	Long: `Resolves five answers (1-3, as shown in the questionnaire) to a result.
Answers that match no result pattern get the default recommendation.

Example:
  pathway resolve 2 2 1 1 1`,
	Args: cobra.ExactArgs(quiz.QuestionCount),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseAnswers(args)
		if err != nil {
			return err
		}
		result, matched := content.ResolveInts(values)
		if !matched {
			logger.Warn("no exact pattern match, showing default result", zap.Ints("answers", values))
		}
		report := content.Report(result)
		if resolveMarkdown {
			fmt.Fprint(cmd.OutOrStdout(), report.Markdown())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.PlainText())
		return nil
	},
}

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List the program catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		writePrograms(cmd.OutOrStdout(), content)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [content.yaml]",
	Short: "Check a questionnaire file for structural and catalog errors",
	Long: `Validates a questionnaire file, or the active content when no file is given.
Every problem is listed, and the command exits non-zero if any are found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%d questions, %d results, %d programs)\n",
				contentSource(cfg), len(content.Questions), len(content.Results), len(content.Programs))
			return nil
		}
		loaded, err := quiz.LoadFile(args[0])
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid: %s\n", args[0])
			for _, line := range validationLines(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", line)
			}
			return fmt.Errorf("validation failed")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%d questions, %d results, %d programs)\n",
			args[0], len(loaded.Questions), len(loaded.Results), len(loaded.Programs))
		return nil
	},
}

var logLines int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the most recent log entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := logging.Tail(filepath.Join(cfg.LogsDir(), logging.FileName), logLines)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveMarkdown, "markdown", false, "print the report as Markdown")
	logCmd.Flags().IntVarP(&logLines, "lines", "n", 20, "number of entries to show")
}

// parseAnswers converts 1-based CLI answers to 0-based option indices. Values
// outside 1-3 are kept so they resolve to the default record.
func parseAnswers(args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, arg)
		}
		values[i] = n - 1
	}
	return values, nil
}

func writePrograms(w io.Writer, c *quiz.Content) {
	for i, p := range c.Programs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n  %s\n", p.Name, p.Description)
	}
}

// validationLines flattens a joined validation error into one line per
// problem.
func validationLines(err error) []string {
	var lines []string
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			lines = append(lines, validationLines(e)...)
		}
		return lines
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
