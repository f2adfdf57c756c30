package source

import (
	"bytes"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		in    []byte
		want  string
		flags FileFlags
	}{
		{"plain", []byte("pie\r\n"), "pie\r\n", 0},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "pie"...), "pie", FileHadBOM},
		{"utf16le", []byte{0xFF, 0xFE, 'p', 0, 'i', 0, 'e', 0}, "pie", FileHadBOM | FileDecodedUTF16},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'p', 0, 'i', 0, 'e'}, "pie", FileHadBOM | FileDecodedUTF16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags, err := Decode(tt.in)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !bytes.Equal(got, []byte(tt.want)) || flags != tt.flags {
				t.Fatalf("Decode = %q/%b, want %q/%b", got, flags, tt.want, tt.flags)
			}
		})
	}
}

func TestDecodeRejectsBinary(t *testing.T) {
	if _, _, err := Decode([]byte{0xC3, 0x28}); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestFileSetAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<stdin>", []byte("graph\r\nA"))
	f := fs.Get(id)
	if f == nil || f.Flags&FileVirtual == 0 {
		t.Fatalf("file = %+v", f)
	}
	if got := f.GetLine(1); got != "graph" {
		t.Fatalf("GetLine(1) = %q", got)
	}
	if got, ok := fs.GetLatest("<stdin>"); !ok || got != id {
		t.Fatalf("GetLatest = %d, %v", got, ok)
	}
	if got := f.FormatPath("absolute", ""); got != "<stdin>" {
		t.Fatalf("virtual path rewritten: %q", got)
	}
}
