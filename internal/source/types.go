package source

// FileID indexes a FileSet.
type FileID uint32

// FileFlags records how a document reached the linter.
type FileFlags uint8

const (
	FileVirtual      FileFlags = 1 << iota // stdin or test input, not a disk path
	FileHadBOM                             // a UTF-8 or UTF-16 BOM was stripped
	FileDecodedUTF16                       // converted from UTF-16
)

// File is one input document. Content is the decoded UTF-8 text with CRLF
// kept, so offsets line up with the bytes on disk.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx LineIndex
	Hash    [32]byte // sha256 of Content
	Flags   FileFlags
}
