package ast

import "fmt"

// BinaryOperator enumerates binary operators.
type BinaryOperator uint8

const (
	// Арифметические
	OpAdd BinaryOperator = iota + 1
	OpSub
	OpMul
	OpDiv
	OpMod

	// Сравнения
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

var opSymbols = map[BinaryOperator]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpEq:  "==",
	OpNe:  "!=",
	OpLt:  "<",
	OpGt:  ">",
	OpLe:  "<=",
	OpGe:  ">=",
}

var opBySymbol = func() map[string]BinaryOperator {
	m := make(map[string]BinaryOperator, len(opSymbols))
	for op, sym := range opSymbols {
		m[sym] = op
	}
	return m
}()

// String returns the operator symbol, or op(N) for an unknown operator.
func (op BinaryOperator) String() string {
	if s, ok := opSymbols[op]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// BinaryOperatorFromSymbol maps "+", "==" and friends back to the operator.
func BinaryOperatorFromSymbol(sym string) (BinaryOperator, bool) {
	op, ok := opBySymbol[sym]
	return op, ok
}

func (op BinaryOperator) IsArithmetic() bool {
	return op >= OpAdd && op <= OpMod
}

func (op BinaryOperator) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}
