package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/javelin-ide/javelin/internal/config"
	"github.com/javelin-ide/javelin/internal/interp"
	"github.com/javelin-ide/javelin/internal/javac"
	"github.com/javelin-ide/javelin/internal/model"
	"github.com/javelin-ide/javelin/internal/repl"
	"github.com/javelin-ide/javelin/internal/tui"
)

var noHistory bool

var replCmd = &cobra.Command{
	Use:   "repl [file]",
	Short: "Open the interactions pane",
	Long: `Open the interactions pane, optionally with a source file loaded.
Evaluations run in an embedded interpreter session; compiling the open
file resets the session with the file's source root on the classpath.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ide, err := buildModel(cfg)
		if err != nil {
			return err
		}

		var watcher *model.Watcher
		if len(args) == 1 {
			if err := ide.Open(model.FixedPath(args[0])); err != nil {
				return err
			}
			watcher, err = model.WatchFile(args[0])
			if err != nil {
				return fmt.Errorf("watching %s: %w", args[0], err)
			}
			defer watcher.Close()
		}

		p := tea.NewProgram(tui.NewPane(ide, watcher), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// buildModel assembles the orchestrator from configuration.
func buildModel(cfg config.Config) (*model.Model, error) {
	timeout := time.Duration(cfg.EvalTimeoutSecs) * time.Second
	newInterp := func() interp.Interpreter { return interp.NewGoja(timeout) }

	opts := []repl.Option{}
	if cfg.Banner != "" {
		opts = append(opts, repl.WithBanner(cfg.Banner))
	}
	if !noHistory {
		if h, err := repl.NewHistory(); err == nil {
			opts = append(opts, repl.WithHistory(h))
		}
	}

	ctl := repl.New(newInterp, opts...)

	compiler := javac.New(cfg.JavacPath)
	ide := model.New(ctl, compiler)
	compiler.Console = ide.Console()
	return ide, nil
}

func init() {
	replCmd.Flags().BoolVar(&noHistory, "no-history", false, "Disable interaction history persistence")
	rootCmd.AddCommand(replCmd)
}
