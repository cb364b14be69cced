package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/myfstd/evalx"
	"github.com/spf13/cobra"
)

var evalParams []string

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression and print its result",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringArrayVarP(&evalParams, "param", "p", nil, "name=value parameter, repeatable")
}

func runEval(cmd *cobra.Command, args []string) error {
	params, err := parseParams(evalParams)
	if err != nil {
		return err
	}

	expr, err := evalx.NewWithFunctions(args[0], evalx.DefaultFunctions())
	if err != nil {
		return fmt.Errorf("prepare expression: %w", err)
	}

	if logger != nil {
		logger.Debug("prepared expression", "tokens", len(expr.Tokens()))
	}

	result, err := expr.Evaluate(params)
	if err != nil {
		return fmt.Errorf("evaluate expression: %w", err)
	}

	fmt.Println(formatValue(result))
	return nil
}

// parseParams turns "name=value" flags into a Parameters bag,
// guessing the narrowest Value kind each literal value parses as:
// bool, then int, then float, falling back to string.
func parseParams(flags []string) (evalx.Parameters, error) {
	params := evalx.Parameters{}

	for _, flag := range flags {
		name, raw, found := strings.Cut(flag, "=")
		if !found {
			return nil, fmt.Errorf("invalid --param %q: expected name=value", flag)
		}
		params[name] = guessValue(raw)
	}

	return params, nil
}

func guessValue(raw string) evalx.Value {
	if b, err := strconv.ParseBool(raw); err == nil {
		return evalx.NewBool(b)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return evalx.NewInt(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return evalx.NewFloat(f)
	}
	return evalx.NewString(raw)
}

func formatValue(v evalx.Value) string {
	switch v.Kind() {
	case evalx.KindNone:
		return "<none>"
	case evalx.KindString:
		s, _ := v.AsString()
		return s
	case evalx.KindBool:
		return strconv.FormatBool(v.Bool())
	case evalx.KindArray:
		parts := make([]string, len(v.Array()))
		for i, item := range v.Array() {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		s, err := v.AsString()
		if err != nil {
			return fmt.Sprintf("%v", v.Kind())
		}
		return s
	}
}
