package parser

import (
	"py2cpp/internal/ast"
	"py2cpp/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет.
const (
	precComparison     = 1 // == != < > <= >= (только с Options.Comparisons)
	precAdditive       = 2 // + -
	precMultiplicative = 3 // * / %
)

// binaryOp возвращает оператор и его приоритет для токена.
func binaryOp(tok token.Token) (ast.BinaryOperator, int, bool) {
	switch tok.Kind {
	case token.ArithOp:
		switch tok.Text {
		case "+":
			return ast.OpAdd, precAdditive, true
		case "-":
			return ast.OpSub, precAdditive, true
		case "*":
			return ast.OpMul, precMultiplicative, true
		case "/":
			return ast.OpDiv, precMultiplicative, true
		case "%":
			return ast.OpMod, precMultiplicative, true
		}
		// '**' не поддерживается
	case token.CompareOp:
		if op, ok := ast.BinaryOperatorFromSymbol(tok.Text); ok {
			return op, precComparison, true
		}
	}
	return 0, 0, false
}
