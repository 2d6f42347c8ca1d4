package validation

import "testing"

func TestSanitizeForFormulaInjection(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1234", "'+1234"},
		{"-50 USDT", "'-50 USDT"},
		{"@handle", "'@handle"},
		{"plain note", "plain note"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeForFormulaInjection(tt.in); got != tt.want {
			t.Errorf("SanitizeForFormulaInjection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripUnprintable(t *testing.T) {
	in := "hola\x00 mundo\x1b[0m\n"
	want := "hola mundo[0m\n"
	if got := StripUnprintable(in); got != want {
		t.Errorf("StripUnprintable(%q) = %q, want %q", in, got, want)
	}
}

func TestCleanFreeText(t *testing.T) {
	if got := CleanFreeText("  trc20 wallet \x00 "); got != "trc20 wallet" {
		t.Errorf("CleanFreeText = %q", got)
	}
}
