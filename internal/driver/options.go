package driver

import (
	"time"

	"py2cpp/internal/project"
)

// Stage is the last pipeline stage a run executes.
type Stage uint8

const (
	StageTokenize Stage = iota + 1
	StageParse
	StageCheck
	StageEmit
)

func (s Stage) String() string {
	switch s {
	case StageTokenize:
		return "tokenize"
	case StageParse:
		return "parse"
	case StageCheck:
		return "check"
	case StageEmit:
		return "emit"
	}
	return "unknown"
}

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary of one unit.
type PhaseEvent struct {
	Path    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events. CompileDir calls it from several
// goroutines at once.
type PhaseObserver func(PhaseEvent)

type Options struct {
	Stage          Stage
	MaxDiagnostics int
	// Comparisons enables the comparison tier of the expression grammar.
	Comparisons bool
	// PythonReference cross-checks every unit against the Python grammar.
	PythonReference bool
	Indent          string
	// KeepTrivia keeps comments, newlines and whitespace in the token
	// listing. Only honoured when Stage is StageTokenize.
	KeepTrivia    bool
	EnableTimings bool
	Cache         *DiskCache
	PhaseObserver PhaseObserver
	// Jobs bounds CompileDir; 0 means GOMAXPROCS.
	Jobs int
}

// OptionsFromConfig maps the resolved project configuration onto pipeline
// options for the given stage.
func OptionsFromConfig(cfg project.Config, stage Stage) Options {
	return Options{
		Stage:           stage,
		MaxDiagnostics:  cfg.Build.MaxDiagnostics,
		Comparisons:     cfg.Parse.Comparisons,
		PythonReference: cfg.Check.PythonReference,
		Indent:          cfg.Emit.Indent,
		Jobs:            cfg.EffectiveJobs(),
	}
}

// Fingerprint hashes the options that change the emitted code.
func (o *Options) Fingerprint() project.Digest {
	cfg := project.Default()
	cfg.Parse.Comparisons = o.Comparisons
	cfg.Check.PythonReference = o.PythonReference
	if o.Indent != "" {
		cfg.Emit.Indent = o.Indent
	}
	return cfg.Fingerprint()
}

func (o *Options) observe(path, name string, status PhaseStatus, elapsed time.Duration) {
	if o.PhaseObserver == nil {
		return
	}
	o.PhaseObserver(PhaseEvent{Path: path, Name: name, Status: status, Elapsed: elapsed})
}
