package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/myfstd/evalx"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read expressions from stdin, one per line, and print each result",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	scanner := bufio.NewScanner(os.Stdin)
	functions := evalx.DefaultFunctions()

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		expr, err := evalx.NewWithFunctions(line, functions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
			continue
		}

		result, err := expr.Evaluate(nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "evaluation error: %v\n", err)
			continue
		}

		fmt.Println(formatValue(result))
	}

	return scanner.Err()
}
