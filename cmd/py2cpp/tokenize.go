package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"py2cpp/internal/diagfmt"
	"py2cpp/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.py",
		Short: "Tokenize a source file",
		Long:  `Tokenize breaks a source file into tokens and prints them with their positions`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("all", false, "include comments, newlines and whitespace")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}

	opts, _, err := pipelineOptions(cmd, driver.StageTokenize)
	if err != nil {
		return err
	}
	opts.KeepTrivia = all

	unit, err := compileOne(cmd, args[0], opts)
	if unit == nil {
		return err
	}
	// токены печатаем и при лексических ошибках: лексер восстанавливается
	var printErr error
	switch format {
	case "json":
		printErr = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), unit.Tokens)
	default:
		printErr = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), unit.Tokens)
	}
	return errors.Join(printErr, err)
}
