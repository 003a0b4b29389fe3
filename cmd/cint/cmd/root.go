// Package cmd implements the cint command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-cint/internal/runner"
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version = "0.1.0-dev"

	filePath string
	codeArg  string
	verbose  bool
	trace    bool
)

var rootCmd = &cobra.Command{
	Use:   "cint",
	Short: "A tree-walking interpreter for a C subset",
	Long: `cint interprets a substantial subset of C directly from source,
with no separate compile step.

Examples:
  # Run a source file
  cint -f program.c

  # Run inline source
  cint -c '#include <stdio.h> int main() { printf("hi\n"); return 0; }'`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         runProgram,
}

func init() {
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "path to a C source file")
	rootCmd.Flags().StringVarP(&codeArg, "code", "c", "", "inline C source")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "trace function calls during execution (for debugging)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func sourceFromFlags() (string, error) {
	if filePath != "" && codeArg != "" {
		return "", fmt.Errorf("provide either -f/--file or -c/--code, not both")
	}
	if filePath == "" && codeArg == "" {
		return "", fmt.Errorf("provide a source file with -f or inline source with -c")
	}
	if codeArg != "" {
		return codeArg, nil
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return string(content), nil
}

func runProgram(_ *cobra.Command, _ []string) error {
	source, err := sourceFromFlags()
	if err != nil {
		return err
	}

	result := runner.Run(source, runner.Options{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		Color:   isTerminal(os.Stderr),
		Verbose: verbose,
		Trace:   trace,
	})
	os.Exit(clampExit(result.ExitCode))
	return nil
}

// clampExit mirrors a Unix process's single-byte exit status: the runner's
// own printed status line always shows the literal -1, but os.Exit clamps
// that to 255.
func clampExit(status int) int {
	if status < 0 {
		return 255
	}
	return status
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
