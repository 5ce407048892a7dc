package source

type (
	// FileID is the index of a file within its FileSet.
	FileID uint32
	// FileFlags records how a file's content was obtained and normalized.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, fuzzing) rather
	// than read from disk; diagnostics print its name as is.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM: a UTF-8 byte order mark was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF: \r\n line endings were rewritten to \n.
	FileNormalizedCRLF
	// FileDecoded: a coding declaration named another encoding and the
	// content was transcoded to UTF-8.
	FileDecoded
)

// File is one compilation unit's source text.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the byte offset of every line start.
	LineIdx []uint32
	// Hash is the sha256 of Content and keys the compile cache.
	Hash  [32]byte
	Flags FileFlags
}

// LineCol is a 1-based line and character column.
type LineCol struct {
	Line uint32
	Col  uint32
}
