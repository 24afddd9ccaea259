// Command regexgrep is a grep-like CLI built on package regexgrep's
// backtracking matcher.
//
// Usage: regexgrep -E <pattern> [-r] [file...]
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/regexgrep/driver"
)

func main() {
	os.Exit(run())
}

func run() int {
	var pattern string
	var recursive bool

	cmd := &cobra.Command{
		Use:           "regexgrep [file...]",
		Short:         "Search input for lines matching a backtracking regular expression",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVarP(&pattern, "regexp", "E", "", "pattern to match")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "recursively search directory arguments")

	exitCode := driver.ExitRunFailure
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if pattern == "" {
			return cmd.Help()
		}
		exitCode = driver.Run(driver.Options{
			Pattern:   pattern,
			Recursive: recursive,
			Paths:     args,
			Stdin:     os.Stdin,
			Stdout:    os.Stdout,
			Stderr:    os.Stderr,
		})
		return nil
	}

	if err := cmd.Execute(); err != nil {
		return driver.ExitRunFailure
	}
	return exitCode
}
