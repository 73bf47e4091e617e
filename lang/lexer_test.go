package lang

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "declaration",
			src:  "var x = 42",
			want: []Token{
				{KindKeyword, "var"},
				{KindIdentifier, "x"},
				{KindAssign, "="},
				{KindNumber, "42"},
			},
		},
		{
			name: "digraphs match greedily",
			src:  "a <= b == c << 2",
			want: []Token{
				{KindIdentifier, "a"},
				{KindLessEqual, "<="},
				{KindIdentifier, "b"},
				{KindEqual, "=="},
				{KindIdentifier, "c"},
				{KindShiftL, "<<"},
				{KindNumber, "2"},
			},
		},
		{
			name: "compound assignment",
			src:  "x += 1",
			want: []Token{
				{KindIdentifier, "x"},
				{KindPlusAssign, "+="},
				{KindNumber, "1"},
			},
		},
		{
			name: "number bases",
			src:  "10 0xff 0b101 2.5",
			want: []Token{
				{KindNumber, "10"},
				{KindNumber, "0xff"},
				{KindNumber, "0b101"},
				{KindFloat, "2.5"},
			},
		},
		{
			name: "booleans normalize",
			src:  "True false",
			want: []Token{
				{KindBool, "true"},
				{KindBool, "false"},
			},
		},
		{
			name: "string literal without escapes",
			src:  `"hello \ world"`,
			want: []Token{
				{KindString, `hello \ world`},
			},
		},
		{
			name: "char literals",
			src:  `'a' '\n'`,
			want: []Token{
				{KindChar, "a"},
				{KindChar, `\n`},
			},
		},
		{
			name: "hash comment",
			src:  "1 # the rest is ignored\n2",
			want: []Token{
				{KindNumber, "1"},
				{KindNumber, "2"},
			},
		},
		{
			name: "slash comment",
			src:  "1 // the rest is ignored\n2",
			want: []Token{
				{KindNumber, "1"},
				{KindNumber, "2"},
			},
		},
		{
			name: "array assignment keyword",
			src:  "a at 0 = 5",
			want: []Token{
				{KindIdentifier, "a"},
				{KindKeyword, "at"},
				{KindNumber, "0"},
				{KindAssign, "="},
				{KindNumber, "5"},
			},
		},
		{
			name: "empty input",
			src:  "   \t\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.src)
			if err != nil {
				t.Fatalf("Tokenize(%q) failed: %v", tt.src, err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.want))
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		src      string
		sentinel error
	}{
		{"var x = $", ErrUnknownChar},
		{"var x = !y", ErrUnknownChar},
		{`"no closing quote`, ErrUnterminatedString},
		{"'ab'", ErrUnterminatedChar},
		{"'", ErrUnterminatedChar},
		{`'\q'`, ErrUnterminatedChar},
		{"1.2.3", ErrMalformedNumber},
		{"7.", ErrMalformedNumber},
		{"0x", ErrMalformedNumber},
	}

	for _, tt := range tests {
		_, err := Tokenize(tt.src)
		if !errors.Is(err, tt.sentinel) {
			t.Errorf("Tokenize(%q): got %v, want %v", tt.src, err, tt.sentinel)
		}

		if !errors.Is(err, ErrLex) {
			t.Errorf("Tokenize(%q): error does not match ErrLex", tt.src)
		}
	}
}

func TestKeywords(t *testing.T) {
	words := Keywords()

	for _, want := range []string{"var", "fn", "if", "else", "while", "return", "at", "true", "false"} {
		found := false

		for _, w := range words {
			if w == want {
				found = true

				break
			}
		}

		if !found {
			t.Errorf("Keywords() missing %q", want)
		}
	}
}

func FuzzTokenize(f *testing.F) {
	f.Add("var x = 42")
	f.Add(`fn add(a, b) { return a + b }`)
	f.Add(`"unterminated`)
	f.Add("1.2.3")
	f.Add("'\\n'")

	f.Fuzz(func(t *testing.T, src string) {
		// Tokenize must terminate with tokens or an error, never panic.
		tokens, err := Tokenize(src)
		if err != nil && tokens != nil {
			t.Errorf("Tokenize(%q) returned tokens alongside error %v",
				src, err)
		}
	})
}

func BenchmarkTokenize(b *testing.B) {
	src := `
fn fib(n) {
	if (n < 2) { return n }
	return fib(n - 1) + fib(n - 2)
}
var total = 0
var i = 0
while (i < 10) {
	total += fib(i)
	i += 1
}
return total
`

	b.ReportAllocs()

	for range b.N {
		if _, err := Tokenize(src); err != nil {
			b.Fatal(err)
		}
	}
}
