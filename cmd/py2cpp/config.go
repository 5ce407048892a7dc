package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"py2cpp/internal/driver"
	"py2cpp/internal/project"
)

// resolveConfig loads the manifest (explicit --config or the nearest
// py2cpp.toml above the working directory), applies PY2CPP_* variables and
// finally the flags the user actually set.
func resolveConfig(cmd *cobra.Command) (project.Config, error) {
	flags := cmd.Root().PersistentFlags()
	explicit, err := flags.GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	manifest, err := project.Resolve(explicit, "")
	if err != nil {
		return project.Config{}, err
	}
	cfg := manifest.Config

	if flags.Changed("max-diagnostics") {
		if cfg.Build.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return cfg, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	local := cmd.Flags()
	if local.Lookup("comparisons") != nil && local.Changed("comparisons") {
		if cfg.Parse.Comparisons, err = local.GetBool("comparisons"); err != nil {
			return cfg, fmt.Errorf("failed to get comparisons flag: %w", err)
		}
	}
	if local.Lookup("python-reference") != nil && local.Changed("python-reference") {
		if cfg.Check.PythonReference, err = local.GetBool("python-reference"); err != nil {
			return cfg, fmt.Errorf("failed to get python-reference flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// addLanguageFlags registers the flags that change what the front end
// accepts; every compiling command carries them.
func addLanguageFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("comparisons", false, "enable the == != < > <= >= operators")
	cmd.Flags().Bool("python-reference", false, "cross-check statements against the full Python grammar")
}

// pipelineOptions is resolveConfig plus the root flags every stage honours.
func pipelineOptions(cmd *cobra.Command, stage driver.Stage) (driver.Options, project.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return driver.Options{}, cfg, err
	}
	opts := driver.OptionsFromConfig(cfg, stage)
	if opts.EnableTimings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, cfg, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return opts, cfg, nil
}
