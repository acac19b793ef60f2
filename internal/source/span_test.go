package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{1, 10, 20}, Span{1, 30, 40}, Span{1, 10, 40}},
		{"contained", Span{1, 10, 40}, Span{1, 15, 20}, Span{1, 10, 40}},
		{"before", Span{1, 10, 20}, Span{1, 2, 5}, Span{1, 2, 20}},
		{"other file", Span{1, 10, 20}, Span{2, 0, 50}, Span{1, 10, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanAt(t *testing.T) {
	s := At(3, 12)
	if !s.Empty() || s.Len() != 0 || s.String() != "3:12-12" {
		t.Fatalf("unexpected span %v", s)
	}
}
