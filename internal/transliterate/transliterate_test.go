package transliterate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeorgianToLatin(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single word", "ანა", "Ana"},
		{"first and last name", "ნინო ბერიძე", "Nino Beridze"},
		{"digraphs", "ჟღშჩცძხ", "Zhghshchtsdzkh"},
		{"collapsed pairs", "თტ ფპ ქკ", "Tt Pp Kk"},
		{"extra spaces are collapsed", "  გიორგი   ჯაფარიძე ", "Giorgi Japaridze"},
		{"latin passes through and is capitalized", "john doe", "John Doe"},
		{"unknown runes pass through", "ანა-მარია 2", "Ana-maria 2"},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GeorgianToLatin(tt.in))
		})
	}
}

func TestGeorgianToLatin_IsPure(t *testing.T) {
	inputs := []string{"", "ანა", "ლევან ქავთარაძე", "mixed ტექსტი 42", "ჰ ჰ ჰ"}
	for _, in := range inputs {
		first := GeorgianToLatin(in)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, GeorgianToLatin(in), "input %q", in)
		}
	}
}

func TestLookup_CoversMkhedruli(t *testing.T) {
	// U+10D0..U+10F0 is the 33-letter modern alphabet.
	for r := 'ა'; r <= 'ჰ'; r++ {
		latin, ok := Lookup(r)
		if assert.True(t, ok, "rune %q not mapped", r) {
			assert.NotEmpty(t, latin)
			assert.LessOrEqual(t, len(latin), 2)
		}
	}
}
