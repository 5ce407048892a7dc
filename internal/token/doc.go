// Package token defines lexical token kinds for the py2cpp front-end.
// Invariants:
//   - Token.Text equals the source bytes covered by Token.Span.
//   - Line/Col are 1-based; Col counts characters, not bytes.
//   - Ignorable kinds (Comment, Docstring, Newline, Whitespace) never appear
//     in the stream handed to the parser.
package token
