package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns the documents of one run. IDs are dense indexes; it is not
// safe for concurrent Add.
type FileSet struct {
	files  []File
	byPath map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: map[string]FileID{}}
}

func (fileSet *FileSet) Len() int { return len(fileSet.files) }

// Add stores decoded UTF-8 content with its line index and hash. Adding a
// path again yields a new ID; GetLatest returns the newest.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id, path := FileID(n), normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: NewLineIndex(string(content)),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.byPath[path] = id
	return id
}

// Load reads path from disk and decodes BOM or UTF-16 input first.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags, err := Decode(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds stdin or test input. Undecodable bytes are kept as is.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	if decoded, flags, err := Decode(content); err == nil {
		return fileSet.Add(name, decoded, flags|FileVirtual)
	}
	return fileSet.Add(name, content, FileVirtual)
}

func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) < len(fileSet.files) {
		return &fileSet.files[id]
	}
	return nil
}

func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.byPath[normalizePath(path)]
	return id, ok
}

func (f *File) Text() string { return string(f.Content) }

// GetLine returns 1-based line lineNum without its terminator, or "".
func (f *File) GetLine(lineNum uint32) string {
	return f.LineIdx.LineText(lineNum)
}

// autoPathLimit: в режиме auto длинные абсолютные пути сокращаются до имени.
const autoPathLimit = 40

// FormatPath renders the path for output. mode is one of absolute,
// relative (to baseDir, or the working directory), basename or auto.
// Virtual files keep their name.
func (f *File) FormatPath(mode, baseDir string) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	var (
		out string
		err error
	)
	switch mode {
	case "absolute":
		out, err = AbsolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir = workingDir()
		}
		out, err = RelativePath(f.Path, baseDir)
	case "basename":
		out = BaseName(f.Path)
	case "auto":
		out = f.Path
		if filepath.IsAbs(f.Path) && len(f.Path) >= autoPathLimit {
			out = BaseName(f.Path)
		}
	default:
		out = f.Path
	}
	if err != nil {
		return f.Path
	}
	return out
}
