package source

import "testing"

func TestSpan(t *testing.T) {
	s := NewSpan(3, 7)
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if !s.Contains(3) || s.Contains(7) {
		t.Errorf("Contains boundaries wrong for %v", s)
	}
	if got := s.Cover(NewSpan(1, 4)); got != NewSpan(1, 7) {
		t.Errorf("Cover() = %v, want 1..7", got)
	}
	if got := s.String(); got != "3..7" {
		t.Errorf("String() = %q", got)
	}
	if !NewSpan(2, 2).Contains(2) {
		t.Error("empty span should contain its start")
	}
}

func TestNewSpanPanicsWhenInverted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewSpan(5, 1)
}

func TestLineIndex(t *testing.T) {
	text := "fn a() {}\r\nlet x = 1;\n\nend"
	li := NewLineIndex(text)

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{1, 1}},
		{3, Position{1, 4}},
		{11, Position{2, 1}},
		{15, Position{2, 5}},
		{22, Position{3, 1}},
		{23, Position{4, 1}},
		{len(text), Position{4, 4}},
		{999, Position{4, 4}},
	}
	for _, tt := range tests {
		if got := li.Position(tt.offset); got != tt.want {
			t.Errorf("Position(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}

	if got := li.LineText(1); got != "fn a() {}" {
		t.Errorf("LineText(1) = %q", got)
	}
	if got := li.LineText(3); got != "" {
		t.Errorf("LineText(3) = %q", got)
	}
	if got := li.Offset(2, 5); got != 15 {
		t.Errorf("Offset(2, 5) = %d, want 15", got)
	}
	if got := li.Offset(9, 1); got != -1 {
		t.Errorf("Offset(9, 1) = %d, want -1", got)
	}
	if li.LineCount() != 4 {
		t.Errorf("LineCount() = %d, want 4", li.LineCount())
	}
}
