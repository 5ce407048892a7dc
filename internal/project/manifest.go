package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// FindManifest walks up from startDir to locate py2cpp.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve builds the effective configuration: explicit manifest path (or the
// discovered one, or defaults) and then environment overrides. Command-line
// flags are applied by the caller on top.
func Resolve(explicit, startDir string) (*Manifest, error) {
	path := explicit
	if path == "" {
		found, ok, err := FindManifest(startDir)
		if err != nil {
			return nil, err
		}
		if ok {
			path = found
		}
	}
	m := &Manifest{Config: Default()}
	if path != "" {
		cfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		m.Path, m.Root, m.Config = path, filepath.Dir(path), cfg
	}
	m.Config.ApplyEnv()
	if err := m.Config.Validate(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return m, nil
}

// Init writes a default manifest into dir, creating dir when needed.
func Init(dir string) (string, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return "", fmt.Errorf("%q is not a directory", dir)
	}
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("project already initialized: %s exists", path)
	}
	if err := os.WriteFile(path, []byte(DefaultManifest()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// DefaultManifest renders Default as a commented TOML file.
func DefaultManifest() string {
	d := Default()
	return fmt.Sprintf(`# py2cpp project manifest
[build]
out_dir = %q
max_diagnostics = %d
jobs = %d
cache = %t

[parse]
# enables the == != < > <= >= tier
comparisons = %t

[emit]
indent = %q

[check]
# cross-check statements against the full Python grammar
python_reference = %t
`, d.Build.OutDir, d.Build.MaxDiagnostics, d.Build.Jobs, d.Build.Cache,
		d.Parse.Comparisons, d.Emit.Indent, d.Check.PythonReference)
}
