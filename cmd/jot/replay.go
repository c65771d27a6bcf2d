package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/evanschultz/jot/internal/app"
	"github.com/evanschultz/jot/internal/script"
	"github.com/spf13/cobra"
)

// replayEpoch anchors the virtual clock so replays are reproducible.
var replayEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// newReplayCmd runs an intent script headlessly and prints the outcome.
func newReplayCmd(opts *rootOptions, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		file  string
		steps bool
	)
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a to-do script and print the resulting list",
		Long: strings.TrimSpace(`
Replay reads one intent per line: draft, add, submit, toggle, edit, save,
cancel, delete, wait <duration>, settle. Rows are referenced by 1-based
number or by task id. Lines starting with # are ignored.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := resolveEnv(*opts)
			if err != nil {
				return err
			}
			logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, env.cfg.Logging, time.Now)
			if err != nil {
				return fmt.Errorf("configure runtime logger: %w", err)
			}
			defer func() {
				_ = logger.Close()
			}()

			src, closeSrc, err := openScript(file, stdin)
			if err != nil {
				return err
			}
			defer closeSrc()

			parsed, err := script.Parse(src)
			if err != nil {
				logger.Error("script parse failed", "file", file, "err", err)
				return fmt.Errorf("parse script: %w", err)
			}
			ctrlCfg, err := toControllerConfig(env.cfg.Animation)
			if err != nil {
				return err
			}

			logger.Info("command flow start", "command", "replay", "steps", len(parsed))
			runner := script.NewRunner(replayEpoch, ctrlCfg, app.WithLogger(logger))
			res, err := runner.Run(cmd.Context(), parsed)
			if err != nil {
				logger.Error("command flow failed", "command", "replay", "err", err)
				return fmt.Errorf("replay script: %w", err)
			}
			logger.Info("command flow complete", "command", "replay", "elapsed", res.Elapsed, "tasks", len(res.Final.Rows))

			if steps {
				_, _ = fmt.Fprintln(stdout, renderStepTable(res.Entries))
			}
			_, _ = fmt.Fprintln(stdout, renderRowTable(res.Final))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "script path ('-' for stdin)")
	cmd.Flags().BoolVar(&steps, "steps", false, "also print the per-step log")
	return cmd
}

// openScript opens path, or returns stdin for "-".
func openScript(path string, stdin io.Reader) (io.Reader, func(), error) {
	if strings.TrimSpace(path) == "" || path == "-" {
		if stdin == nil {
			stdin = strings.NewReader("")
		}
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open script: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func headerStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Padding(0, 1)
	}
	return lipgloss.NewStyle().Padding(0, 1)
}

// renderRowTable draws the final list.
func renderRowTable(rm app.RenderModel) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers("#", "ID", "Task", "Done").
		StyleFunc(headerStyle)
	for i, row := range rm.Rows {
		done := ""
		if row.Completed {
			done = "x"
		}
		t.Row(strconv.Itoa(i+1), row.ID, row.Text, done)
	}
	footer := fmt.Sprintf("mode: %s  button: %s", rm.Mode, rm.ButtonLabel)
	if rm.Draft != "" {
		footer += fmt.Sprintf("  draft: %q", rm.Draft)
	}
	return t.Render() + "\n" + footer
}

// renderStepTable draws one line per replayed step.
func renderStepTable(entries []script.Entry) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers("Line", "Step", "At", "Tasks", "Mode", "Events").
		StyleFunc(headerStyle)
	for _, e := range entries {
		step := string(e.Step.Op)
		if arg := strings.TrimSpace(e.Step.Arg); arg != "" {
			step += " " + arg
		}
		events := make([]string, 0, len(e.Events))
		for _, ev := range e.Events {
			events = append(events, fmt.Sprintf("%s %s", ev.Kind, ev.TaskID))
		}
		t.Row(
			strconv.Itoa(e.Step.Line),
			step,
			e.At.String(),
			strconv.Itoa(e.Tasks),
			string(e.Mode),
			strings.Join(events, ", "),
		)
	}
	return t.Render()
}
