package fuzztests

import (
	"testing"

	"py2cpp/internal/diag"
	"py2cpp/internal/lexer"
	"py2cpp/internal/source"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}, KeepIgnorable: true})
		toks := lx.Tokenize()

		// токены идут подряд и точно совпадают с текстом
		var off uint32
		for i, tok := range toks {
			if tok.Span.Start != off || tok.Span.End <= tok.Span.Start {
				t.Fatalf("token %d %v does not continue at %d", i, tok, off)
			}
			if got := string(file.Content[tok.Span.Start:tok.Span.End]); got != tok.Text {
				t.Fatalf("token %d text %q, content %q", i, tok.Text, got)
			}
			off = tok.Span.End
		}
		if !lx.Stopped() && int(off) != len(file.Content) {
			t.Fatalf("lexer finished at %d of %d bytes", off, len(file.Content))
		}
		if lx.Stopped() && !bag.HasErrors() {
			t.Fatalf("lexer stopped without a diagnostic")
		}
	})
}
