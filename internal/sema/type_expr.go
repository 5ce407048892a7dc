package sema

import (
	"errors"
	"strconv"
	"strings"

	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/types"
)

func (tc *typeChecker) visitBinary(id ast.NodeID, node *ast.Node) types.Type {
	data := tc.builder.Nodes.Binary(id)
	if data == nil {
		tc.malformed(node, "missing payload")
		return types.Unknown
	}
	operands := 0
	for _, child := range [...]ast.NodeID{data.Left, data.Right} {
		if tc.present(child) {
			operands++
		}
	}
	if operands != 2 {
		tc.malformed(node, "expected 2 operands, found %d", operands)
		return types.Unknown
	}

	left := tc.visit(data.Left)
	right := tc.visit(data.Right)

	switch {
	case data.Op.IsArithmetic():
		if ty, ok := types.Binary(data.Op, left, right); ok {
			return ty
		}
		tc.report(diag.SemaInvalidArithmetic, node.Span, "invalid arithmetic operation between %s and %s", left, right)
	case data.Op.IsComparison():
		if ty, ok := types.Binary(data.Op, left, right); ok {
			return ty
		}
		tc.report(diag.SemaInvalidComparison, node.Span, "invalid comparison between %s and %s", left, right)
	default:
		tc.report(diag.SemaUnsupportedOp, node.Span, "unsupported operator '%s'", data.Op)
	}
	return types.Unknown
}

func (tc *typeChecker) visitLiteral(id ast.NodeID, node *ast.Node) types.Type {
	data := tc.builder.Nodes.Literal(id)
	if data == nil {
		tc.malformed(node, "missing payload")
		return types.Unknown
	}
	raw := tc.builder.Interner.MustLookup(data.Raw)
	ty := ClassifyLiteral(raw)
	if ty == types.Unknown {
		tc.report(diag.SemaUnrecognizedLit, node.Span, "unrecognized literal type '%s'", raw)
	}
	return ty
}

// ClassifyLiteral derives the type of a raw literal lexeme: quoted text is a
// string, an optionally negated digit run is an int, text with '.' or an
// exponent that parses as a float is a float. Anything else is Unknown.
func ClassifyLiteral(raw string) types.Type {
	switch {
	case strings.HasPrefix(raw, `"`) || strings.HasPrefix(raw, `'`):
		return types.String
	case isDigits(raw) || (strings.HasPrefix(raw, "-") && isDigits(raw[1:])):
		return types.Int
	case strings.ContainsAny(raw, ".eE"):
		if _, err := strconv.ParseFloat(raw, 64); err == nil || isRangeErr(err) {
			return types.Float
		}
	}
	return types.Unknown
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// 1e999 переполняет float64, но для Python это всё ещё float (inf).
func isRangeErr(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && numErr.Err == strconv.ErrRange
}
