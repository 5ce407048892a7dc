package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo           Code = 1000
	LexUnexpectedChar Code = 1001
	LexStuck          Code = 1002

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectDelimiter  Code = 2002
	SynExpectAssign     Code = 2003
	SynExpectIdentifier Code = 2004
	SynExpectExpression Code = 2005
	SynUnclosedParen    Code = 2006

	// Семантические
	SemaInfo               Code = 3000
	SemaError              Code = 3001
	SemaUndefinedVariable  Code = 3002
	SemaUnrecognizedLit    Code = 3003
	SemaInvalidArithmetic  Code = 3004
	SemaInvalidComparison  Code = 3005
	SemaUnsupportedOp      Code = 3006
	SemaMalformedNode      Code = 3007
	SemaBuiltinAsValue     Code = 3008
	SemaReferenceGrammar   Code = 3009

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnexpectedChar:     "Unexpected character",
		LexStuck:              "Lexer cannot advance",
		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynExpectDelimiter:    "Expected delimiter",
		SynExpectAssign:       "Expected '='",
		SynExpectIdentifier:   "Expected identifier",
		SynExpectExpression:   "Expected expression",
		SynUnclosedParen:      "Unclosed parenthesis",
		SemaInfo:              "Semantic information",
		SemaError:             "Semantic verification error",
		SemaUndefinedVariable: "Undefined variable",
		SemaUnrecognizedLit:   "Unrecognized literal",
		SemaInvalidArithmetic: "Invalid arithmetic operation",
		SemaInvalidComparison: "Invalid comparison",
		SemaUnsupportedOp:     "Unsupported operator",
		SemaMalformedNode:     "Malformed syntax node",
		SemaBuiltinAsValue:    "Built-in used as value",
		SemaReferenceGrammar:  "Rejected by the reference Python grammar",
		IOLoadFileError:       "I/O load file error",
		IOWriteFileError:      "I/O write file error",
		ObsInfo:               "Observability information",
		ObsTimings:            "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Stage returns the pipeline stage the code belongs to.
func (c Code) Stage() Stage {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return StageLexical
	case ic >= 2000 && ic < 3000:
		return StageSyntax
	case ic >= 3000 && ic < 4000:
		return StageSemantic
	case ic >= 4000 && ic < 5000:
		return StageIO
	}
	return StageOther
}

// Stage groups diagnostics by the phase that produced them.
type Stage uint8

const (
	StageOther Stage = iota
	StageIO
	StageLexical
	StageSyntax
	StageSemantic
)

func (s Stage) String() string {
	switch s {
	case StageIO:
		return "io"
	case StageLexical:
		return "lexical"
	case StageSyntax:
		return "syntactic"
	case StageSemantic:
		return "semantic"
	}
	return "other"
}
