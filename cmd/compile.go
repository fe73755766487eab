package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javelin-ide/javelin/internal/config"
	"github.com/javelin-ide/javelin/internal/model"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a source file against its package source root",
	Long: `Compile a source file. The source root is derived from the file's
package declaration; a layout that does not match the declared package is
reported as a diagnostic.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ide, err := buildModel(cfg)
		if err != nil {
			return err
		}
		if err := ide.Open(model.FixedPath(args[0])); err != nil {
			return err
		}

		if err := ide.StartCompile(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		diags := ide.CompileErrors()
		FormatDiagnostics(out, diags)
		FormatCompileSummary(out, diags)

		for _, d := range diags {
			if !d.Warning {
				return fmt.Errorf("compilation failed")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
