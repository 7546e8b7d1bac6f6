package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"golang.org/x/sync/errgroup"

	"github.com/jabibo/wordbattle-backend-sub000/lexicon"
	"github.com/jabibo/wordbattle-backend-sub000/move"
	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

func testRules(t *testing.T) *GameRules {
	t.Helper()
	rules, err := NewBasicGameRules("english", lexicon.AcceptAll{})
	if err != nil {
		t.Fatal(err)
	}
	return rules
}

func wordRules(t *testing.T, words ...string) *GameRules {
	t.Helper()
	rules, err := NewBasicGameRules("english", lexicon.NewWordSet("test", words))
	if err != nil {
		t.Fatal(err)
	}
	return rules
}

func testGame(t *testing.T, rules *GameRules) *Game {
	t.Helper()
	g, err := NewGame(rules, []string{"jesse", "cesar"}, tilemapping.SeededSource(7))
	if err != nil {
		t.Fatal(err)
	}
	g.StartGame()
	return g
}

// scriptRacks parks every rack in the bag, then deals the named racks
// out of it, so a test gets exactly the tiles it asks for no matter
// what the shuffle dealt.
func scriptRacks(t *testing.T, g *Game, racks ...string) {
	t.Helper()
	for _, p := range g.players {
		p.throwRackIn(g.bag)
	}
	for i, letters := range racks {
		tiles, err := tilemapping.TilesFromString(letters, g.rules.LetterDistribution())
		if err != nil {
			t.Fatal(err)
		}
		if err := g.bag.RemoveTiles(tiles); err != nil {
			t.Fatal(err)
		}
		g.players[i].rack.AddTiles(tiles)
	}
}

func mustTiles(t *testing.T, g *Game, s string) []tilemapping.Tile {
	t.Helper()
	tiles, err := tilemapping.TilesFromString(s, g.rules.LetterDistribution())
	if err != nil {
		t.Fatal(err)
	}
	return tiles
}

func mustPlacement(t *testing.T, g *Game, coords, word string) *move.Move {
	t.Helper()
	m, err := g.CreatePlacementMove(coords, word)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func countTiles(g *Game) int {
	ct := g.bag.TilesRemaining() + g.board.TilesPlayed()
	for _, p := range g.players {
		ct += p.rack.NumTiles()
	}
	return ct
}

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	is.Equal(g.bag.TilesRemaining(), 86)
	is.Equal(g.RackFor(0).NumTiles(), 7)
	is.Equal(g.RackFor(1).NumTiles(), 7)
	is.Equal(g.Phase(), PhaseInProgress)
	is.Equal(g.PlayerIDOnTurn(), "jesse")
	is.Equal(countTiles(g), 100)
	is.True(g.Uid() != "")
}

func TestNewGameNotEnoughPlayers(t *testing.T) {
	is := is.New(t)
	_, err := NewGame(testRules(t), []string{"jesse"}, nil)
	is.True(errors.Is(err, ErrNotEnoughPlayers))
}

func TestNewGameDuplicatePlayers(t *testing.T) {
	is := is.New(t)
	_, err := NewGame(testRules(t), []string{"jesse", "jesse"}, nil)
	is.True(err != nil)
}

func TestMoveBeforeStart(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(testRules(t), []string{"jesse", "cesar"}, nil)
	is.NoErr(err)
	_, err = g.ApplyMove("jesse", move.NewPassMove())
	is.True(errors.Is(err, ErrGameNotInProgress))
}

func TestFirstPlay(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	scriptRacks(t, g, "CATXYZQ", "DEIRSLU")

	out, err := g.ApplyMove("jesse", mustPlacement(t, g, "8F", "CAT"))
	is.NoErr(err)
	is.Equal(out.PointsScored, 10)
	is.Equal(out.FormedWords, []string{"CAT"})
	is.True(!out.GameEnded)
	is.Equal(g.PointsFor(0), 10)
	is.Equal(g.RackFor(0).NumTiles(), 7)
	is.Equal(g.bag.TilesRemaining(), 83)
	is.Equal(g.PlayerIDOnTurn(), "cesar")
	is.Equal(g.Turn(), 1)
	is.Equal(countTiles(g), 100)
}

func TestMoveOutOfTurn(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	_, err := g.ApplyMove("cesar", move.NewPassMove())
	is.True(errors.Is(err, ErrNotPlayersTurn))
	is.Equal(g.Turn(), 0)
}

func TestExchange(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	scriptRacks(t, g, "AEIOU??", "DEIRSLN")

	out, err := g.ApplyMove("jesse", move.NewExchangeMove(mustTiles(t, g, "AEIOU??")))
	is.NoErr(err)
	is.Equal(out.PointsScored, 0)
	is.Equal(g.RackFor(0).NumTiles(), 7)
	is.Equal(g.bag.TilesRemaining(), 86)
	is.Equal(g.PlayerIDOnTurn(), "cesar")
	is.Equal(countTiles(g), 100)

	hist := g.History()
	is.Equal(len(hist), 1)
	is.Equal(hist[0].Type, "exchange")
	is.Equal(hist[0].Exchanged, "AEIOU??")
}

func TestExchangeInsufficientBag(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	g.bag.Draw(g.bag.TilesRemaining() - 5)
	rack := g.RackLettersFor(0)

	_, err := g.ApplyMove("jesse", move.NewExchangeMove(mustTiles(t, g, rack)))
	is.True(errors.Is(err, ErrInsufficientBagForExchange))
	is.Equal(g.RackLettersFor(0), rack)
	is.Equal(g.Turn(), 0)
}

func TestExchangeMustBeExactlySeven(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	scriptRacks(t, g, "AEIOU??", "DEIRSLN")

	_, err := g.ApplyMove("jesse", move.NewExchangeMove(mustTiles(t, g, "AEIO")))
	is.True(errors.Is(err, ErrMustExchangeExactlySeven))
	is.Equal(g.RackLettersFor(0), "AEIOU??")
	is.Equal(g.Turn(), 0)
}

func TestExchangeTilesNotHeld(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	scriptRacks(t, g, "AEIOU??", "DEIRSLN")

	_, err := g.ApplyMove("jesse", move.NewExchangeMove(mustTiles(t, g, "TTTTTTT")))
	is.True(errors.Is(err, tilemapping.ErrTileNotInRack))
}

func TestPassedOutGame(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))

	for i, id := range []string{"jesse", "cesar", "jesse"} {
		out, err := g.ApplyMove(id, move.NewPassMove())
		is.NoErr(err)
		is.True(!out.GameEnded)
		is.Equal(g.ConsecutivePasses(), i+1)
	}
	out, err := g.ApplyMove("cesar", move.NewPassMove())
	is.NoErr(err)
	is.True(out.GameEnded)
	is.Equal(g.Phase(), PhaseCompleted)
	// a passed-out game ends as it stands
	is.Equal(g.PointsFor(0), 0)
	is.Equal(g.PointsFor(1), 0)

	_, err = g.ApplyMove("jesse", move.NewPassMove())
	is.True(errors.Is(err, ErrGameNotInProgress))
}

func TestPassCounterResetsOnPlay(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	_, err := g.ApplyMove("jesse", move.NewPassMove())
	is.NoErr(err)
	_, err = g.ApplyMove("cesar", move.NewPassMove())
	is.NoErr(err)
	is.Equal(g.ConsecutivePasses(), 2)

	scriptRacks(t, g, "CATXYZQ", "DEIRSLU")
	_, err = g.ApplyMove("jesse", mustPlacement(t, g, "8F", "CAT"))
	is.NoErr(err)
	is.Equal(g.ConsecutivePasses(), 0)
	is.Equal(g.Phase(), PhaseInProgress)
}

func TestPlayedOutGame(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	scriptRacks(t, g, "CAT", "DOG")
	g.bag.Draw(g.bag.TilesRemaining())

	out, err := g.ApplyMove("jesse", mustPlacement(t, g, "8F", "CAT"))
	is.NoErr(err)
	is.True(out.GameEnded)
	is.Equal(g.Phase(), PhaseCompleted)
	// CAT doubles to 10; jesse collects cesar's DOG (5) on top
	is.Equal(g.PointsFor(0), 15)
	is.Equal(g.PointsFor(1), -5)
}

func TestTurnRotationSkipsInactive(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(testRules(t), []string{"jesse", "cesar", "conrad"}, tilemapping.SeededSource(7))
	is.NoErr(err)
	g.StartGame()

	is.NoErr(g.SetPlayerActive("cesar", false))
	_, err = g.ApplyMove("jesse", move.NewPassMove())
	is.NoErr(err)
	is.Equal(g.PlayerIDOnTurn(), "conrad")

	is.NoErr(g.SetPlayerActive("cesar", true))
	_, err = g.ApplyMove("conrad", move.NewPassMove())
	is.NoErr(err)
	is.Equal(g.PlayerIDOnTurn(), "jesse")
}

func TestDeactivateOnTurnPlayer(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	is.NoErr(g.SetPlayerActive("jesse", false))
	is.Equal(g.PlayerIDOnTurn(), "cesar")

	_, err := g.ApplyMove("jesse", move.NewPassMove())
	is.True(errors.Is(err, ErrNotPlayersTurn))
}

func TestSetPlayerActiveUnknown(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	is.True(g.SetPlayerActive("nigel", false) != nil)
}

func TestSetRackFor(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	is.NoErr(g.SetRackFor(0, "EEEAAII"))
	is.Equal(g.RackLettersFor(0), "AAEEEII")
	is.Equal(g.bag.TilesRemaining(), 86)
	is.Equal(countTiles(g), 100)
}

func TestHistory(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	scriptRacks(t, g, "CATXYZQ", "DEIRSLU")

	_, err := g.ApplyMove("jesse", mustPlacement(t, g, "8F", "CAT"))
	is.NoErr(err)
	_, err = g.ApplyMove("cesar", move.NewPassMove())
	is.NoErr(err)

	hist := g.History()
	is.Equal(len(hist), 2)
	is.Equal(hist[0].PlayerID, "jesse")
	is.Equal(hist[0].Type, "play")
	is.Equal(hist[0].Points, 10)
	is.Equal(hist[0].Cumulative, 10)
	is.Equal(hist[0].Words, []string{"CAT"})
	is.Equal(len(hist[0].Placements), 3)
	is.Equal(hist[1].Type, "pass")
	is.Equal(hist[1].Points, 0)
}

func TestConservationAcrossGame(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))

	scriptRacks(t, g, "CATXYZQ", "BDEIRS?")
	_, err := g.ApplyMove("jesse", mustPlacement(t, g, "8F", "CAT"))
	is.NoErr(err)
	is.Equal(countTiles(g), 100)

	_, err = g.ApplyMove("cesar", move.NewExchangeMove(mustTiles(t, g, "BDEIRS?")))
	is.NoErr(err)
	is.Equal(countTiles(g), 100)

	_, err = g.ApplyMove("jesse", move.NewPassMove())
	is.NoErr(err)
	is.Equal(countTiles(g), 100)

	scriptRacks(t, g, "EEAAIOO", "SNORES?")
	_, err = g.ApplyMove("cesar", mustPlacement(t, g, "F8", "CORNS"))
	is.NoErr(err)
	is.Equal(countTiles(g), 100)
}

func TestParallelGamesAreIndependent(t *testing.T) {
	is := is.New(t)
	rules := testRules(t)

	var eg errgroup.Group
	for i := 0; i < 16; i++ {
		seed := uint64(i)
		eg.Go(func() error {
			g, err := NewGame(rules, []string{"jesse", "cesar"}, tilemapping.SeededSource(seed))
			if err != nil {
				return err
			}
			g.StartGame()
			for _, p := range g.players {
				p.throwRackIn(g.bag)
			}
			tiles, err := tilemapping.TilesFromString("CATXYZQ", rules.LetterDistribution())
			if err != nil {
				return err
			}
			if err := g.bag.RemoveTiles(tiles); err != nil {
				return err
			}
			g.players[0].rack.AddTiles(tiles)

			m, err := g.CreatePlacementMove("8F", "CAT")
			if err != nil {
				return err
			}
			out, err := g.ApplyMove("jesse", m)
			if err != nil {
				return err
			}
			if out.PointsScored != 10 {
				return errors.New("expected 10 points")
			}
			if countTiles(g) != 100 {
				return errors.New("tiles leaked")
			}
			return nil
		})
	}
	is.NoErr(eg.Wait())
}
