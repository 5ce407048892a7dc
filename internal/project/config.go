package project

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
)

// ManifestName is the file the CLI looks for when walking up from the
// working directory.
const ManifestName = "py2cpp.toml"

// Переменные окружения, перекрывающие значения из манифеста.
const (
	EnvOutDir         = "PY2CPP_OUT_DIR"
	EnvMaxDiagnostics = "PY2CPP_MAX_DIAGNOSTICS"
	EnvJobs           = "PY2CPP_JOBS"
	EnvNoCache        = "PY2CPP_NO_CACHE"
	EnvComparisons    = "PY2CPP_COMPARISONS"
)

type Config struct {
	Build BuildConfig `toml:"build"`
	Parse ParseConfig `toml:"parse"`
	Emit  EmitConfig  `toml:"emit"`
	Check CheckConfig `toml:"check"`
}

type BuildConfig struct {
	OutDir         string `toml:"out_dir"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	// Jobs bounds parallel compilation of a directory; 0 means GOMAXPROCS.
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

type ParseConfig struct {
	Comparisons bool `toml:"comparisons"`
}

type EmitConfig struct {
	Indent string `toml:"indent"`
}

type CheckConfig struct {
	PythonReference bool `toml:"python_reference"`
}

func Default() Config {
	return Config{
		Build: BuildConfig{OutDir: "build", MaxDiagnostics: 100, Cache: true},
		Emit:  EmitConfig{Indent: "    "},
	}
}

// LoadConfig decodes path on top of Default. Unknown keys are an error so
// that typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PY2CPP_* variables that are set.
func (c *Config) ApplyEnv() {
	if env.Has(EnvOutDir) {
		c.Build.OutDir = env.Str(EnvOutDir, c.Build.OutDir)
	}
	c.Build.MaxDiagnostics = env.Int(EnvMaxDiagnostics, c.Build.MaxDiagnostics)
	c.Build.Jobs = env.Int(EnvJobs, c.Build.Jobs)
	if env.Has(EnvNoCache) {
		c.Build.Cache = !env.Bool(EnvNoCache)
	}
	if env.Has(EnvComparisons) {
		c.Parse.Comparisons = env.Bool(EnvComparisons)
	}
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Build.OutDir) == "" {
		errs = append(errs, errors.New("[build].out_dir must not be empty"))
	}
	if c.Build.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("[build].max_diagnostics must be >= 0, got %d", c.Build.MaxDiagnostics))
	}
	if c.Build.Jobs < 0 {
		errs = append(errs, fmt.Errorf("[build].jobs must be >= 0, got %d", c.Build.Jobs))
	}
	if strings.Trim(c.Emit.Indent, " \t") != "" {
		errs = append(errs, fmt.Errorf("[emit].indent may hold only spaces and tabs, got %q", c.Emit.Indent))
	}
	return errors.Join(errs...)
}

// EffectiveJobs resolves Jobs == 0 to GOMAXPROCS.
func (c Config) EffectiveJobs() int {
	if c.Build.Jobs > 0 {
		return c.Build.Jobs
	}
	return runtime.GOMAXPROCS(0)
}
