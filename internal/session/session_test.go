package session

import "testing"

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name     string
		userText string
		maxRunes int
		want     string
	}{
		{"short text unchanged", "수소 엔진 특허", 25, "수소 엔진 특허"},
		{"exact length unchanged", "12345", 5, "12345"},
		{"long text truncated", "123456", 5, "12345..."},
		{"multibyte cut at rune boundary", "수소 연료 전지 엔진에 관한 특허", 5, "수소 연료..."},
		{"empty text", "", 25, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateTitle(tt.userText, tt.maxRunes); got != tt.want {
				t.Fatalf("TruncateTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
