package main

import (
	"fmt"
	"io"
	"time"

	"py2cpp/internal/buildpipeline"
)

var timingLabels = []struct {
	stage buildpipeline.Stage
	label string
}{
	{buildpipeline.StageParse, "parsed"},
	{buildpipeline.StageCheck, "checked"},
	{buildpipeline.StageEmit, "emitted"},
	{buildpipeline.StageWrite, "written"},
}

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	for _, tl := range timingLabels {
		if timings.Has(tl.stage) {
			fmt.Fprintf(out, "%s %.1f ms\n", tl.label, toMillis(timings.Duration(tl.stage)))
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
