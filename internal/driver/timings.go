package driver

import (
	"encoding/json"
	"fmt"

	"py2cpp/internal/diag"
	"py2cpp/internal/observ"
	"py2cpp/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	Cached  bool                 `json:"cached,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func (u *Unit) appendTimings(opts Options) {
	if !opts.EnableTimings {
		return
	}
	report := u.Timer.Report()
	appendTimingDiagnostic(u.Telemetry, source.Span{File: u.File.ID}, timingPayload{
		Kind:    "unit",
		Path:    u.Path,
		Cached:  u.Cached,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	})
}

func appendTimingDiagnostic(bag *diag.Bag, sp source.Span, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Cached {
		msg += " (cached)"
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, sp, msg).WithNote(sp, string(data)))
}

func cacheWarning(u *Unit, err error) diag.Diagnostic {
	return diag.Newf(diag.SevWarning, diag.ObsInfo, source.Span{File: u.File.ID}, "cache write failed: %v", err)
}
