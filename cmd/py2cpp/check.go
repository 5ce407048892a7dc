package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"py2cpp/internal/diagfmt"
	"py2cpp/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] file.py",
		Short: "Type-check a source file",
		Long:  `Check runs the tokenizer, parser and type checker and prints the resulting symbol table`,
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().Bool("symbols", true, "print the symbol table")
	addLanguageFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	showSymbols, err := cmd.Flags().GetBool("symbols")
	if err != nil {
		return fmt.Errorf("failed to get symbols flag: %w", err)
	}
	quiet, err := readQuiet(cmd)
	if err != nil {
		return err
	}
	opts, _, err := pipelineOptions(cmd, driver.StageCheck)
	if err != nil {
		return err
	}
	unit, err := compileOne(cmd, args[0], opts)
	if err != nil {
		return err
	}
	if showSymbols && !quiet && unit.Sema != nil {
		return diagfmt.FormatSymbols(cmd.OutOrStdout(), unit.Sema.Symbols)
	}
	return nil
}
