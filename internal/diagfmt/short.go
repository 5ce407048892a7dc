package diagfmt

import (
	"fmt"
	"io"

	"py2cpp/internal/diag"
	"py2cpp/internal/source"
)

// stageOrder is the order stages are listed in.
var stageOrder = []diag.Stage{diag.StageIO, diag.StageLexical, diag.StageSyntax, diag.StageSemantic, diag.StageOther}

// Short prints one plain line per diagnostic, grouped by pipeline stage:
//
//	syntactic errors (1):
//	  test.py:1:7: error SYN2006: expected ')' ...
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	groups := make(map[diag.Stage][]diag.Diagnostic)
	for _, d := range bag.Items() {
		groups[d.Stage()] = append(groups[d.Stage()], d)
	}
	for _, stage := range stageOrder {
		items := groups[stage]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s %s (%d):\n", stage, groupNoun(items), len(items))
		for _, d := range items {
			pos := fs.Position(d.Primary)
			fmt.Fprintf(w, "  %s:%d:%d: %s %s: %s\n",
				displayPath(fs, d.Primary.File, mode), pos.Line, pos.Col,
				d.Severity.Label(), d.Code.ID(), d.Message)
		}
	}
}

func groupNoun(items []diag.Diagnostic) string {
	for _, d := range items {
		if d.Severity.Blocks() {
			return "errors"
		}
	}
	return "diagnostics"
}
