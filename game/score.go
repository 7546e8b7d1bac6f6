package game

import "github.com/jabibo/wordbattle-backend-sub000/board"

// scoreMove scores one accepted play. Premium squares count only
// under tiles placed this turn; squares under older tiles were spent
// when those tiles went down. Playing the whole rack earns the bingo
// bonus on top of the word scores.
func (g *Game) scoreMove(words []board.FormedWord, tilesPlayed int) int {
	total := 0
	for _, w := range words {
		if len(w.Cells) < 2 {
			continue
		}
		total += g.scoreWord(w)
	}
	if tilesPlayed == RackTileLimit {
		total += g.rules.BingoBonus()
	}
	return total
}

func (g *Game) scoreWord(w board.FormedWord) int {
	pts := 0
	wordMultiplier := 1
	for _, c := range w.Cells {
		letterScore := c.Tile.Value
		if c.Placed {
			bonus := g.board.GetBonus(c.Row, c.Col)
			letterScore *= bonus.LetterMultiplier()
			wordMultiplier *= bonus.WordMultiplier()
		}
		pts += letterScore
	}
	return pts * wordMultiplier
}
