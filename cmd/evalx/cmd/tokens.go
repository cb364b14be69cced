package cmd

import (
	"fmt"

	"github.com/myfstd/evalx"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <expression>",
	Short: "Print the token vector produced by lexing an expression",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	expr, err := evalx.New(args[0])
	if err != nil {
		return fmt.Errorf("lex expression: %w", err)
	}

	for i, tok := range expr.Tokens() {
		fmt.Printf("%3d  %-12s %v\n", i, tok.Kind, tok.Value)
	}
	return nil
}
