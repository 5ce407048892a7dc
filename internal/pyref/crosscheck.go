package pyref

import (
	"fmt"

	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/source"
)

// CrossCheck parses file with the Python grammar and reports a warning for
// every top-level statement whose shape differs from the parsed program.
// It returns the number of warnings emitted.
func CrossCheck(b *ast.Builder, program ast.NodeID, file *source.File, reporter diag.Reporter) int {
	if b == nil || file == nil {
		return 0
	}
	fileSpan := source.Span{File: file.ID, Start: 0, End: 0}
	ref, err := Parse(file.Content, file.Path)
	if err != nil {
		diag.ReportWarning(reporter, diag.SemaReferenceGrammar, fileSpan, err.Error()).Emit()
		return 1
	}

	var ours []ast.NodeID
	if data := b.Nodes.Program(program); data != nil {
		ours = data.Stmts
	}
	warnings := 0
	for i, stmt := range ours {
		node := b.Nodes.Get(stmt)
		if node == nil {
			continue
		}
		if i >= len(ref) {
			diag.ReportWarning(reporter, diag.SemaReferenceGrammar, node.Span,
				fmt.Sprintf("%s statement has no counterpart in the Python reading", node.Kind)).Emit()
			warnings++
			continue
		}
		if got := ref[i]; got.Kind != node.Kind.String() {
			diag.ReportWarning(reporter, diag.SemaReferenceGrammar, node.Span,
				fmt.Sprintf("statement parsed as %s, Python reads line %d as %s", node.Kind, got.Line, got.Kind)).Emit()
			warnings++
		}
	}
	if len(ref) > len(ours) {
		diag.ReportWarning(reporter, diag.SemaReferenceGrammar, fileSpan,
			fmt.Sprintf("Python reads %d statements, parsed %d", len(ref), len(ours))).Emit()
		warnings++
	}
	return warnings
}
