package sema

import (
	"fmt"

	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/source"
)

func (tc *typeChecker) report(code diag.Code, span source.Span, format string, args ...any) {
	tc.result.Errors++
	if tc.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportError(tc.reporter, code, span, msg); b != nil {
		b.Emit()
	}
}

func (tc *typeChecker) warn(code diag.Code, span source.Span, format string, args ...any) {
	if tc.advisory == nil {
		return
	}
	diag.ReportWarning(tc.advisory, code, span, fmt.Sprintf(format, args...)).Emit()
}

func (tc *typeChecker) malformed(node *ast.Node, format string, args ...any) {
	tc.report(diag.SemaMalformedNode, node.Span, "malformed %s node: %s", node.Kind, fmt.Sprintf(format, args...))
}
