package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javelin-ide/javelin/internal/config"
	"github.com/javelin-ide/javelin/internal/junit"
)

var testClasspath []string

var testCmd = &cobra.Command{
	Use:   "test <class>",
	Short: "Run a JUnit test class in a fresh JVM",
	Long: `Run a JUnit test class. Every run starts a new JVM so the class is
loaded fresh, picking up the latest compiled output on the classpath.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		runner := junit.NewRunner(cfg.JavaPath, testClasspath)
		runner.Console = cmd.OutOrStdout()

		res, err := runner.Run(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		FormatTestResult(cmd.OutOrStdout(), args[0], res)
		if !res.Passed {
			return fmt.Errorf("test failures")
		}
		return nil
	},
}

func init() {
	testCmd.Flags().StringSliceVarP(&testClasspath, "classpath", "c", []string{"."}, "Classpath entries for the test JVM")
	rootCmd.AddCommand(testCmd)
}
