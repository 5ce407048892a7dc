package source

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// codingCookie matches a declaration such as "# -*- coding: latin-1 -*-".
var codingCookie = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)

// codingDeclaration returns the encoding named on the first line, or on the
// second one when the first holds only a comment or whitespace.
func codingDeclaration(content []byte) string {
	lines := bytes.SplitN(content, []byte("\n"), 3)
	for i := range min(2, len(lines)) {
		if m := codingCookie.FindSubmatch(lines[i]); m != nil {
			return string(m[1])
		}
		rest := bytes.TrimLeft(lines[i], " \t\f\r")
		if len(rest) > 0 && rest[0] != '#' {
			break
		}
	}
	return ""
}

// canonicalEncoding folds the aliases Python itself treats as utf-8 and latin-1.
func canonicalEncoding(name string) string {
	enc := strings.ReplaceAll(strings.ToLower(name), "_", "-")
	switch {
	case enc == "utf-8", enc == "utf8", strings.HasPrefix(enc, "utf-8-"):
		return "utf-8"
	case enc == "latin-1", enc == "iso-latin-1", enc == "iso-8859-1",
		strings.HasPrefix(enc, "latin-1-"), strings.HasPrefix(enc, "iso-latin-1-"):
		return "iso-8859-1"
	}
	return enc
}

func lookupEncoding(name string) (encoding.Encoding, bool) {
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, true
	}
	// WHATWG знает cp1252, koi8-u и прочие метки, которых нет в IANA
	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return enc, true
	}
	return nil, false
}

// decodeSource transcodes content to UTF-8 according to its coding
// declaration. decoded is false when the content already was UTF-8.
func decodeSource(content []byte, hadBOM bool) (out []byte, decoded bool, err error) {
	declared := codingDeclaration(content)
	if declared == "" {
		return content, false, nil
	}
	name := canonicalEncoding(declared)
	if name == "utf-8" {
		return content, false, nil
	}
	if hadBOM {
		return nil, false, fmt.Errorf("encoding problem: %s with UTF-8 BOM", declared)
	}
	enc, ok := lookupEncoding(name)
	if !ok {
		return nil, false, fmt.Errorf("unknown encoding: %s", declared)
	}
	out, err = enc.NewDecoder().Bytes(content)
	if err != nil {
		return nil, false, fmt.Errorf("decode as %s: %w", declared, err)
	}
	return out, true, nil
}
