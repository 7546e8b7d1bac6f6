package tilemapping

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// LetterDistribution encodes the tile distribution for a language:
// how many copies of each letter the game starts with, what each
// letter is worth, and a canonical sort order for display.
type LetterDistribution struct {
	Name         string
	Distribution map[rune]uint8
	PointValues  map[rune]uint8
	SortOrder    map[rune]int
	Vowels       []rune

	totalTiles int
}

func newLetterDistribution(name string, dist map[rune]uint8,
	ptValues map[rune]uint8, sortOrder map[rune]int,
	vowels []rune) *LetterDistribution {

	total := 0
	for _, ct := range dist {
		total += int(ct)
	}
	return &LetterDistribution{
		Name:         name,
		Distribution: dist,
		PointValues:  ptValues,
		SortOrder:    sortOrder,
		Vowels:       vowels,
		totalTiles:   total,
	}
}

// TotalTiles returns the number of tiles a fresh bag holds for this
// distribution. Bag + racks + board must always sum to this.
func (ld *LetterDistribution) TotalTiles() int {
	return ld.totalTiles
}

// Score returns the point value of a single tile.
func (ld *LetterDistribution) Score(t Tile) int {
	if t.Blank {
		return 0
	}
	return int(ld.PointValues[t.Letter])
}

// sortedLetters returns the distribution's letters in sort order, so
// that bag construction is deterministic for a given random seed.
func (ld *LetterDistribution) sortedLetters() []rune {
	letters := make([]rune, 0, len(ld.Distribution))
	for rn := range ld.Distribution {
		letters = append(letters, rn)
	}
	sort.Slice(letters, func(i, j int) bool {
		return ld.SortOrder[letters[i]] < ld.SortOrder[letters[j]]
	})
	return letters
}

// EnglishLetterDistribution returns the standard English distribution,
// 100 tiles.
func EnglishLetterDistribution() *LetterDistribution {
	dist := map[rune]uint8{
		'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3,
		'H': 2, 'I': 9, 'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6,
		'O': 8, 'P': 2, 'Q': 1, 'R': 6, 'S': 4, 'T': 6, 'U': 4,
		'V': 2, 'W': 2, 'X': 1, 'Y': 2, 'Z': 1, BlankLetter: 2,
	}
	ptValues := map[rune]uint8{
		'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1, 'F': 4, 'G': 2,
		'H': 4, 'I': 1, 'J': 8, 'K': 5, 'L': 1, 'M': 3, 'N': 1,
		'O': 1, 'P': 3, 'Q': 10, 'R': 1, 'S': 1, 'T': 1, 'U': 1,
		'V': 4, 'W': 4, 'X': 8, 'Y': 4, 'Z': 10, BlankLetter: 0,
	}
	return newLetterDistribution("english", dist, ptValues,
		makeSortMap("ABCDEFGHIJKLMNOPQRSTUVWXYZ?"),
		[]rune{'A', 'E', 'I', 'O', 'U'})
}

// GermanLetterDistribution returns the standard German distribution,
// 102 tiles including the umlauts.
func GermanLetterDistribution() *LetterDistribution {
	dist := map[rune]uint8{
		'A': 5, 'B': 2, 'C': 2, 'D': 4, 'E': 15, 'F': 2, 'G': 3,
		'H': 4, 'I': 6, 'J': 1, 'K': 2, 'L': 3, 'M': 4, 'N': 9,
		'O': 3, 'P': 1, 'Q': 1, 'R': 6, 'S': 7, 'T': 6, 'U': 6,
		'V': 1, 'W': 1, 'X': 1, 'Y': 1, 'Z': 1,
		'Ä': 1, 'Ö': 1, 'Ü': 1, BlankLetter: 2,
	}
	ptValues := map[rune]uint8{
		'A': 1, 'B': 3, 'C': 4, 'D': 1, 'E': 1, 'F': 4, 'G': 2,
		'H': 2, 'I': 1, 'J': 6, 'K': 4, 'L': 2, 'M': 3, 'N': 1,
		'O': 2, 'P': 4, 'Q': 10, 'R': 1, 'S': 1, 'T': 1, 'U': 1,
		'V': 6, 'W': 3, 'X': 8, 'Y': 10, 'Z': 3,
		'Ä': 6, 'Ö': 8, 'Ü': 6, BlankLetter: 0,
	}
	return newLetterDistribution("german", dist, ptValues,
		makeSortMap("ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÜ?"),
		[]rune{'A', 'E', 'I', 'O', 'U', 'Ä', 'Ö', 'Ü'})
}

// NamedLetterDistribution returns a built-in distribution by its
// canonical name.
func NamedLetterDistribution(name string) (*LetterDistribution, error) {
	switch name {
	case "english":
		return EnglishLetterDistribution(), nil
	case "german":
		return GermanLetterDistribution(), nil
	}
	return nil, fmt.Errorf("letter distribution %v not found", name)
}

var supportedLanguages = []language.Tag{
	language.English,
	language.German,
}

// ResolveLetterDistribution accepts either a canonical distribution
// name or a BCP-47 language tag ("en-US", "de-AT") and returns the
// best-matching built-in distribution.
func ResolveLetterDistribution(name string) (*LetterDistribution, error) {
	if ld, err := NamedLetterDistribution(name); err == nil {
		return ld, nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("no distribution for language %v: %w", name, err)
	}
	matcher := language.NewMatcher(supportedLanguages)
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return nil, fmt.Errorf("no distribution for language %v", name)
	}
	switch idx {
	case 0:
		return EnglishLetterDistribution(), nil
	case 1:
		return GermanLetterDistribution(), nil
	}
	return nil, fmt.Errorf("no distribution for language %v", name)
}

func makeSortMap(order string) map[rune]int {
	sortMap := make(map[rune]int)
	for idx, letter := range order {
		sortMap[letter] = idx
	}
	return sortMap
}

type yamlLetter struct {
	Letter string `yaml:"letter"`
	Count  uint8  `yaml:"count"`
	Value  uint8  `yaml:"value"`
	Vowel  bool   `yaml:"vowel"`
}

type yamlDistribution struct {
	Name    string       `yaml:"name"`
	Letters []yamlLetter `yaml:"letters"`
}

// ScanLetterDistribution reads a YAML letter distribution, for
// languages beyond the built-ins. The blank is the "?" letter; sort
// order follows document order.
func ScanLetterDistribution(r io.Reader) (*LetterDistribution, error) {
	var doc yamlDistribution
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing letter distribution: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("letter distribution needs a name")
	}
	dist := make(map[rune]uint8)
	ptValues := make(map[rune]uint8)
	sortOrder := make(map[rune]int)
	vowels := []rune{}
	for idx, l := range doc.Letters {
		runes := []rune(l.Letter)
		if len(runes) != 1 {
			return nil, fmt.Errorf("letter %v must be a single rune", l.Letter)
		}
		rn := runes[0]
		if _, dupe := dist[rn]; dupe {
			return nil, fmt.Errorf("letter %c appears twice", rn)
		}
		if l.Count == 0 {
			return nil, fmt.Errorf("letter %c has a zero count", rn)
		}
		dist[rn] = l.Count
		ptValues[rn] = l.Value
		sortOrder[rn] = idx
		if l.Vowel {
			vowels = append(vowels, rn)
		}
	}
	if len(dist) == 0 {
		return nil, fmt.Errorf("letter distribution %v has no letters", doc.Name)
	}
	return newLetterDistribution(doc.Name, dist, ptValues, sortOrder, vowels), nil
}
