package scanner

import "testing"

func TestUnquote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"unquoted", "abc", "abc"},
		{"unquoted with bare quote", `ab"c`, `ab"c`},
		{"quoted", `"abc"`, "abc"},
		{"empty quoted", `""`, ""},
		{"lone quote", `"`, ""},
		{"escaped quote", `"b""c"`, `b"c`},
		{"only escaped quote", `""""`, `"`},
		{"quoted separator", `"c,d"`, "c,d"},
		{"quoted terminator", "\"a\nb\"", "a\nb"},
		{"unterminated", `"abc`, "abc"},
		{"unterminated with escape", `"a""b`, `a"b`},
		{"payload after closing quote", `"ab"cd`, "abcd"},
		{"reopened quote", `"a"x"b"`, "axb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Unquote([]byte(tt.input))); got != tt.want {
				t.Errorf("Unquote(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got := string(AppendUnquoted(nil, []byte(tt.input))); got != tt.want {
				t.Errorf("AppendUnquoted(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnquote_AliasesInputWithoutEscapes(t *testing.T) {
	cell := []byte(`"abc"`)
	got := Unquote(cell)
	if &got[0] != &cell[1] {
		t.Error("Unquote copied a cell without escapes")
	}
}

func TestAppendUnquoted_Appends(t *testing.T) {
	got := AppendUnquoted([]byte("x="), []byte(`"1""2"`))
	if string(got) != `x=1"2` {
		t.Errorf("AppendUnquoted() = %q, want %q", got, `x=1"2`)
	}
}
