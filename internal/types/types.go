package types

import "fmt"

// Type is an element of the checker's closed type universe.
type Type uint8

const (
	// Unknown is the error sentinel. No operator accepts it, so an operation
	// over an Unknown operand is reported again.
	Unknown Type = iota
	Int
	Float
	String
	Bool
	// Void is the type of a print statement.
	Void
	// Function is the category of built-in callables.
	Function
)

func (t Type) String() string {
	switch t {
	case Unknown:
		return "unknown"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Void:
		return "void"
	case Function:
		return "function"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Parse maps a name produced by String back to the type.
func Parse(name string) (Type, bool) {
	for t := Unknown; t <= Function; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return Unknown, false
}

func (t Type) IsNumeric() bool {
	return t == Int || t == Float
}

// IsValue reports whether a variable can hold the type.
func (t Type) IsValue() bool {
	switch t {
	case Int, Float, String, Bool:
		return true
	}
	return false
}

// Family returns the operator family the type belongs to.
func (t Type) Family() FamilyMask {
	switch t {
	case Int:
		return FamilyInt
	case Float:
		return FamilyFloat
	case String:
		return FamilyString
	case Bool:
		return FamilyBool
	case Function:
		return FamilyFunction
	case Void:
		return FamilyVoid
	}
	return FamilyNone
}
