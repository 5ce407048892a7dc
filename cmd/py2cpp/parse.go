package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"py2cpp/internal/diagfmt"
	"py2cpp/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.py",
		Short: "Parse a source file",
		Long:  `Parse builds the syntax tree of a source file and reports syntax errors`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().Bool("tree", false, "print the syntax tree")
	cmd.Flags().Bool("types", false, "run the type checker and annotate the tree with inferred types")
	cmd.Flags().String("format", "pretty", "tree format (pretty|json)")
	addLanguageFlags(cmd)
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	showTree, err := cmd.Flags().GetBool("tree")
	if err != nil {
		return fmt.Errorf("failed to get tree flag: %w", err)
	}
	withTypes, err := cmd.Flags().GetBool("types")
	if err != nil {
		return fmt.Errorf("failed to get types flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	quiet, err := readQuiet(cmd)
	if err != nil {
		return err
	}

	stage := driver.StageParse
	if withTypes {
		stage = driver.StageCheck
	}
	opts, _, err := pipelineOptions(cmd, stage)
	if err != nil {
		return err
	}
	unit, err := compileOne(cmd, args[0], opts)
	if unit == nil || unit.Builder == nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !showTree {
		if err == nil && !quiet {
			fmt.Fprintf(out, "%s: %d statements, %d nodes\n",
				args[0], len(unit.Builder.Children(unit.Program)), unit.Builder.CountNodes())
		}
		return err
	}

	var lookup diagfmt.TypeLookup
	if unit.Sema != nil {
		lookup = unit.Sema
	}
	// дерево после восстановления тоже полезно показать
	var printErr error
	if format == "json" {
		printErr = diagfmt.FormatASTJSON(out, unit.Builder, unit.Program, lookup)
	} else {
		printErr = diagfmt.FormatASTPretty(out, unit.Builder, unit.Program, lookup)
	}
	return errors.Join(printErr, err)
}
