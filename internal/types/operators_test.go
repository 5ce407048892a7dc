package types

import (
	"testing"

	"py2cpp/internal/ast"
)

func TestBinaryArithmetic(t *testing.T) {
	tests := []struct {
		l, r Type
		want Type
		ok   bool
	}{
		{Int, Int, Int, true},
		{Int, Float, Float, true},
		{Float, Int, Float, true},
		{Float, Float, Float, true},
		{String, Int, Unknown, false},
		{String, String, Unknown, false},
		{Bool, Int, Unknown, false},
		{Unknown, Int, Unknown, false},
	}
	for _, op := range []ast.BinaryOperator{ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod} {
		for _, tt := range tests {
			got, ok := Binary(op, tt.l, tt.r)
			if got != tt.want || ok != tt.ok {
				t.Errorf("%s %s %s = %s, %v; want %s, %v", tt.l, op, tt.r, got, ok, tt.want, tt.ok)
			}
		}
	}
}

func TestBinaryComparison(t *testing.T) {
	tests := []struct {
		l, r Type
		ok   bool
	}{
		{Int, Float, true},
		{String, String, true},
		{Bool, Bool, true},
		{String, Int, false},
		{Bool, Int, false},
		{Unknown, Unknown, false},
		{Void, Void, true},
		{Function, Function, true},
		{Function, String, false},
		{Unknown, Int, false},
	}
	for _, tt := range tests {
		got, ok := Binary(ast.OpLt, tt.l, tt.r)
		if ok != tt.ok || (ok && got != Bool) || (!ok && got != Unknown) {
			t.Errorf("%s < %s = %s, %v", tt.l, tt.r, got, ok)
		}
	}
}

func TestUnknownOperator(t *testing.T) {
	if BinarySpecs(ast.BinaryOperator(200)) != nil {
		t.Fatalf("unknown operator must have no specs")
	}
	if got, ok := Binary(ast.BinaryOperator(200), Int, Int); ok || got != Unknown {
		t.Fatalf("got %s, %v", got, ok)
	}
}

func TestParseNames(t *testing.T) {
	for ty := Unknown; ty <= Function; ty++ {
		if got, ok := Parse(ty.String()); !ok || got != ty {
			t.Errorf("Parse(%q) = %v, %v", ty.String(), got, ok)
		}
	}
	if _, ok := Parse("double"); ok {
		t.Errorf("double is not a type name")
	}
}
