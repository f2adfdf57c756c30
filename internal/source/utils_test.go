package source

import "testing"

func TestLineIndexPosition(t *testing.T) {
	idx := NewLineIndex("ab\nцде\n\nx")
	tests := []struct {
		off       uint32
		line, col uint32
	}{
		{0, 1, 1},
		{2, 1, 3},  // на '\n'
		{3, 2, 1},  // 'ц'
		{5, 2, 2},  // 'д' (2 байта на руну)
		{9, 2, 4},  // '\n' после 'е'
		{10, 3, 1}, // пустая строка
		{11, 4, 1},
		{12, 4, 2}, // конец текста
		{99, 4, 2}, // за концом
	}
	for _, tt := range tests {
		pos := idx.Position(tt.off)
		if pos.Line != tt.line || pos.Col != tt.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.off, pos.Line, pos.Col, tt.line, tt.col)
		}
	}
}

func TestLineIndexLineText(t *testing.T) {
	idx := NewLineIndex("first\r\nsecond\n\nlast")
	want := []string{"", "first", "second", "", "last", ""}
	for line, w := range want {
		if got := idx.LineText(uint32(line)); got != w {
			t.Errorf("LineText(%d) = %q, want %q", line, got, w)
		}
	}
	if got := idx.Lines(); got != 4 {
		t.Fatalf("Lines() = %d, want 4", got)
	}
}

func TestEmptyLineIndex(t *testing.T) {
	idx := NewLineIndex("")
	pos := idx.Position(0)
	if pos.Line != 1 || pos.Col != 1 || pos.Offset != 0 {
		t.Fatalf("unexpected position for empty text: %+v", pos)
	}
}
