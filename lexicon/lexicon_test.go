package lexicon

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestAcceptAll(t *testing.T) {
	is := is.New(t)
	var lex Lexicon = AcceptAll{}
	is.True(lex.HasWord("CAT"))
	is.True(lex.HasWord("ZZZZZ"))
}

func TestWordSet(t *testing.T) {
	is := is.New(t)
	lex := NewWordSet("tiny", []string{"cat", "DOG", " bird ", ""})
	is.Equal(lex.NumWords(), 3)
	is.True(lex.HasWord("CAT"))
	is.True(lex.HasWord("cat"))
	is.True(lex.HasWord("BIRD"))
	is.True(!lex.HasWord("FISH"))
	is.Equal(lex.Name(), "tiny")
}

func TestScanWordSet(t *testing.T) {
	is := is.New(t)
	lex, err := ScanWordSet("scanned", strings.NewReader("cat\ndog\n\nbird\n"))
	is.NoErr(err)
	is.Equal(lex.NumWords(), 3)
	is.True(lex.HasWord("DOG"))
}

func TestRegistry(t *testing.T) {
	is := is.New(t)
	reg := NewRegistry()
	reg.Register("english", NewWordSet("english", []string{"CAT"}))
	reg.Register("de", NewWordSet("german", []string{"KATZE"}))

	is.True(reg.Contains("CAT", "english"))
	is.True(reg.Contains("CAT", "en-US"))
	is.True(!reg.Contains("KATZE", "english"))
	is.True(reg.Contains("KATZE", "german"))
	is.True(reg.Contains("KATZE", "de-AT"))
	is.True(!reg.Contains("CAT", "french"))

	_, err := reg.Lexicon("french")
	is.True(err != nil)

	lex, err := reg.Lexicon("de")
	is.NoErr(err)
	is.Equal(lex.Name(), "german")
}
