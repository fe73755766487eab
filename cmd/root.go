package cmd

import (
	"fmt"
	"os"

	"github.com/javelin-ide/javelin/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "javelin",
	Short: "A lightweight Java IDE core with an interactions REPL",
	Long: `Javelin is a lightweight Java development shell: an interactions
pane backed by an embedded interpreter, a compile pipeline that keeps the
interpreter classpath in sync with your source roots, and a per-run test
runner.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("javelin %s\n", version.String()))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
