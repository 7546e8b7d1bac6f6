package game

import (
	"github.com/jabibo/wordbattle-backend-sub000/board"
	"github.com/jabibo/wordbattle-backend-sub000/config"
	"github.com/jabibo/wordbattle-backend-sub000/lexicon"
	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

const (
	// RackTileLimit is the rack size. Racks are refilled up to this
	// many tiles after every play.
	RackTileLimit = 7
	// ExchangeLimit is both the number of tiles an exchange must swap
	// and the minimum bag size that allows one. The two always move
	// together; an exchange is all seven tiles or nothing.
	ExchangeLimit = 7
	// MinPlayers is the fewest players a game can start with.
	MinPlayers = 2
	// DefaultBingoBonus is the bonus for playing all seven rack tiles
	// in one turn, when no config overrides it.
	DefaultBingoBonus = 50
)

// GameRules is a simple struct that encapsulates the instantiated
// objects needed to actually play a game.
type GameRules struct {
	dist        *tilemapping.LetterDistribution
	lex         lexicon.Lexicon
	boardLayout []string
	bingoBonus  int
}

// NewBasicGameRules creates rules for a language with the standard
// board and bonus values. The language may be a distribution name or
// a BCP-47 tag.
func NewBasicGameRules(language string, lex lexicon.Lexicon) (*GameRules, error) {
	dist, err := tilemapping.ResolveLetterDistribution(language)
	if err != nil {
		return nil, err
	}
	return &GameRules{
		dist:        dist,
		lex:         lex,
		boardLayout: board.CrosswordGameBoard,
		bingoBonus:  DefaultBingoBonus,
	}, nil
}

// NewGameRules creates rules with the bingo bonus taken from config.
func NewGameRules(cfg *config.Config, language string, lex lexicon.Lexicon) (*GameRules, error) {
	rules, err := NewBasicGameRules(language, lex)
	if err != nil {
		return nil, err
	}
	rules.bingoBonus = cfg.BingoBonus
	return rules, nil
}

func (g *GameRules) LetterDistribution() *tilemapping.LetterDistribution {
	return g.dist
}

func (g *GameRules) Lexicon() lexicon.Lexicon {
	return g.lex
}

func (g *GameRules) BoardLayout() []string {
	return g.boardLayout
}

func (g *GameRules) BingoBonus() int {
	return g.bingoBonus
}
