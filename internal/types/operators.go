package types

import "py2cpp/internal/ast"

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint8

const (
	FamilyNone FamilyMask = 0
	FamilyInt  FamilyMask = 1 << iota
	FamilyFloat
	FamilyString
	FamilyBool
	FamilyFunction
	FamilyVoid
)

const (
	FamilyNumeric = FamilyInt | FamilyFloat
	// FamilyAny covers every type except Unknown.
	FamilyAny = FamilyNumeric | FamilyString | FamilyBool | FamilyFunction | FamilyVoid
)

// BinaryResult describes how to derive the result type for an operator.
type BinaryResult uint8

const (
	BinaryResultUnknown BinaryResult = iota
	// BinaryResultNumeric is float when either side is float, else int.
	BinaryResultNumeric
	BinaryResultBool
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint8

const (
	BinaryFlagNone BinaryFlags = 0
	// BinaryFlagSameType requires identical operand types.
	BinaryFlagSameType BinaryFlags = 1 << iota
)

// BinarySpec lists operand families and expected result for an operation.
type BinarySpec struct {
	Left   FamilyMask
	Right  FamilyMask
	Result BinaryResult
	Flags  BinaryFlags
}

var (
	arithmeticSpecs = []BinarySpec{
		{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric},
	}
	comparisonSpecs = []BinarySpec{
		{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultBool},
		{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagSameType},
	}
)

// BinarySpecs returns the accepted operand shapes of op, nil for an unknown operator.
func BinarySpecs(op ast.BinaryOperator) []BinarySpec {
	switch {
	case op.IsArithmetic():
		return arithmeticSpecs
	case op.IsComparison():
		return comparisonSpecs
	}
	return nil
}

// Binary derives the result type of left op right. ok is false when no
// spec accepts the operands; the result is then Unknown.
func Binary(op ast.BinaryOperator, left, right Type) (Type, bool) {
	for _, spec := range BinarySpecs(op) {
		if left.Family()&spec.Left == 0 || right.Family()&spec.Right == 0 {
			continue
		}
		if spec.Flags&BinaryFlagSameType != 0 && left != right {
			continue
		}
		switch spec.Result {
		case BinaryResultNumeric:
			if left == Float || right == Float {
				return Float, true
			}
			return Int, true
		case BinaryResultBool:
			return Bool, true
		}
	}
	return Unknown, false
}
