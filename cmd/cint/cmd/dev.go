package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-cint/internal/runner"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Dump the token stream for a source file or inline source",
	RunE:  runTokens,
}

var astCmd = &cobra.Command{
	Use:   "ast",
	Short: "Dump the parsed program's tree rendering",
	RunE:  runAST,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(astCmd)

	tokensCmd.Flags().StringVarP(&filePath, "file", "f", "", "path to a C source file")
	tokensCmd.Flags().StringVarP(&codeArg, "code", "c", "", "inline C source")
	astCmd.Flags().StringVarP(&filePath, "file", "f", "", "path to a C source file")
	astCmd.Flags().StringVarP(&codeArg, "code", "c", "", "inline C source")
}

func runTokens(_ *cobra.Command, _ []string) error {
	source, err := sourceFromFlags()
	if err != nil {
		return err
	}
	tokens, err := runner.Tokens(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(255)
	}
	for _, t := range tokens {
		fmt.Printf("%-14s %q (line %d)\n", t.Kind, t.Literal, t.Line())
	}
	return nil
}

func runAST(_ *cobra.Command, _ []string) error {
	source, err := sourceFromFlags()
	if err != nil {
		return err
	}
	prog, err := runner.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(255)
	}
	fmt.Println(prog.String())
	return nil
}
