// Package game implements the turn state machine for a crossword
// board game: dealing, move validation, scoring, rack and bag upkeep,
// and end-of-game accounting. One Game is mutated by one ApplyMove
// call at a time; distinct games share nothing.
package game

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jabibo/wordbattle-backend-sub000/board"
	"github.com/jabibo/wordbattle-backend-sub000/move"
	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

// GamePhase is the lifecycle of a game. There is no transition out of
// PhaseCompleted.
type GamePhase uint8

const (
	PhaseNotStarted GamePhase = iota
	PhaseInProgress
	PhaseCompleted
)

func (p GamePhase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// ParseGamePhase is the inverse of GamePhase.String.
func ParseGamePhase(s string) (GamePhase, error) {
	switch s {
	case "not_started":
		return PhaseNotStarted, nil
	case "in_progress":
		return PhaseInProgress, nil
	case "completed":
		return PhaseCompleted, nil
	}
	return 0, fmt.Errorf("unknown game phase %v", s)
}

// A MoveOutcome is what a successful move did.
type MoveOutcome struct {
	PointsScored int
	FormedWords  []string
	GameEnded    bool
}

// A RecordedPlacement is one tile of a recorded play. The tile is the
// compact letter form: uppercase, or lowercase for a blank.
type RecordedPlacement struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Tile string `json:"tile"`
}

// A MoveRecord is one accepted move in the history. Rejected moves
// are never recorded.
type MoveRecord struct {
	PlayerID   string              `json:"player_id"`
	Type       string              `json:"type"`
	Placements []RecordedPlacement `json:"placements,omitempty"`
	Exchanged  string              `json:"exchanged,omitempty"`
	Points     int                 `json:"points"`
	Cumulative int                 `json:"cumulative"`
	Words      []string            `json:"words,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

// Game is the complete state of one game. It exclusively owns its
// board, bag, and player states; a caller that wants persistence
// snapshots it and stores the snapshot.
type Game struct {
	gameID string
	rules  *GameRules
	rng    tilemapping.RandSource

	board   *board.GameBoard
	bag     *tilemapping.Bag
	players playerStates

	onturn            int
	turnnum           int
	consecutivePasses int
	phase             GamePhase
	history           []*MoveRecord
}

// NewGame creates a game for the given players, in join order. The
// random source drives every shuffle and deal; pass nil for a
// well-seeded default. The game is not dealt until StartGame.
func NewGame(rules *GameRules, playerIDs []string, rng tilemapping.RandSource) (*Game, error) {
	if len(playerIDs) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}
	seen := map[string]bool{}
	for _, id := range playerIDs {
		if id == "" || seen[id] {
			return nil, fmt.Errorf("player ids must be unique and non-empty (got %q)", id)
		}
		seen[id] = true
	}
	if rng == nil {
		rng = tilemapping.DefaultSource()
	}
	players := make(playerStates, len(playerIDs))
	for i, id := range playerIDs {
		players[i] = newPlayerState(id, rules.LetterDistribution())
	}
	return &Game{
		gameID:  newGameID(),
		rules:   rules,
		rng:     rng,
		board:   board.MakeBoard(rules.BoardLayout()),
		players: players,
		phase:   PhaseNotStarted,
	}, nil
}

// StartGame shuffles a fresh bag and deals every player a full rack,
// in turn order. The first player in join order goes first.
func (g *Game) StartGame() {
	g.board = board.MakeBoard(g.rules.BoardLayout())
	g.bag = tilemapping.NewBag(g.rules.LetterDistribution(), g.rng)
	g.players.resetRacks()
	g.players.resetScore()
	for _, p := range g.players {
		p.rack.AddTiles(g.bag.Draw(RackTileLimit))
	}
	g.onturn = 0
	g.turnnum = 0
	g.consecutivePasses = 0
	g.history = nil
	g.phase = PhaseInProgress
	log.Debug().Str("gameID", g.gameID).
		Str("lexicon", g.rules.Lexicon().Name()).
		Str("distribution", g.rules.LetterDistribution().Name).
		Msg("started game")
}

// ApplyMove validates and applies one move for the given player. On
// any validation failure the game is untouched and the error says
// why; on success the board, racks, bag, scores, counters, and
// history advance, and the outcome reports the score, the words
// formed, and whether the game just ended.
func (g *Game) ApplyMove(playerID string, m *move.Move) (*MoveOutcome, error) {
	vm, err := g.ValidateMove(playerID, m)
	if err != nil {
		return nil, err
	}

	mover := g.onturn
	rack := g.players[mover].rack
	outcome := &MoveOutcome{}
	rec := &MoveRecord{
		PlayerID:  playerID,
		Type:      vm.Move.Action().String(),
		Timestamp: time.Now().UTC(),
	}

	switch vm.Move.Action() {
	case move.MoveTypePlay:
		if _, err := rack.TakeAll(vm.Move.PlacedTiles()); err != nil {
			return nil, err
		}
		if err := g.board.PlayMove(vm.Move); err != nil {
			return nil, err
		}
		score := g.scoreMove(vm.Words, vm.Move.TilesPlayed())
		g.players[mover].points += score
		if vm.Move.TilesPlayed() == RackTileLimit {
			g.players[mover].bingos++
		}
		rack.AddTiles(g.bag.Draw(RackTileLimit - rack.NumTiles()))
		g.consecutivePasses = 0

		outcome.PointsScored = score
		for _, w := range vm.Words {
			outcome.FormedWords = append(outcome.FormedWords, w.Word())
		}
		for _, p := range vm.Move.Placements() {
			rec.Placements = append(rec.Placements,
				RecordedPlacement{Row: p.Row, Col: p.Col, Tile: p.Tile.String()})
		}
		rec.Points = score
		rec.Words = outcome.FormedWords

	case move.MoveTypeExchange:
		taken, err := rack.TakeAll(vm.Move.Exchanged())
		if err != nil {
			return nil, err
		}
		g.bag.PutBack(taken)
		rack.AddTiles(g.bag.Draw(ExchangeLimit))
		g.consecutivePasses = 0
		rec.Exchanged = tilemapping.TilesToString(taken)

	case move.MoveTypePass:
		g.consecutivePasses++
	}

	rec.Cumulative = g.players[mover].points
	g.history = append(g.history, rec)
	g.turnnum++
	g.onturn = g.nextPlayer()

	g.checkEndConditions(mover)
	outcome.GameEnded = g.phase == PhaseCompleted

	log.Debug().Str("gameID", g.gameID).Str("player", playerID).
		Str("move", vm.Move.ShortDescription()).
		Int("points", outcome.PointsScored).
		Int("turn", g.turnnum).
		Bool("ended", outcome.GameEnded).
		Msg("applied move")
	return outcome, nil
}

// nextPlayer returns the index of the next active player after the
// current one. Inactive players are skipped.
func (g *Game) nextPlayer() int {
	idx := g.onturn
	for i := 0; i < len(g.players); i++ {
		idx = (idx + 1) % len(g.players)
		if g.players[idx].active {
			return idx
		}
	}
	return g.onturn
}

// checkEndConditions closes the game when the bag is empty and a rack
// has been played out, or when every player has passed twice around
// with no progress.
func (g *Game) checkEndConditions(mover int) {
	if g.phase != PhaseInProgress {
		return
	}
	if g.bag.TilesRemaining() == 0 {
		for idx, p := range g.players {
			if p.rack.Empty() {
				g.phase = PhaseCompleted
				g.endOfGameCalcs(idx)
				log.Debug().Str("gameID", g.gameID).Str("outPlayer", p.id).
					Msg("game over: played out")
				return
			}
		}
	}
	if g.consecutivePasses >= len(g.players)*2 {
		// A stalled game ends as it stands, with no rack adjustments.
		g.phase = PhaseCompleted
		log.Debug().Str("gameID", g.gameID).Int("passes", g.consecutivePasses).
			Msg("game over: passed out")
	}
}

// endOfGameCalcs applies the standard played-out adjustment: every
// player still holding tiles loses their rack value, and the player
// who went out gains the sum of all of them.
func (g *Game) endOfGameCalcs(out int) {
	unplayedPts := 0
	for idx, p := range g.players {
		if idx == out {
			continue
		}
		pts := p.rack.ScoreOn()
		p.points -= pts
		unplayedPts += pts
	}
	g.players[out].points += unplayedPts
	log.Debug().Int("out", out).Int("unplayedpts", unplayedPts).
		Msg("endOfGameCalcs")
}

// SetPlayerActive marks a player active or inactive. Inactive players
// are skipped in the turn rotation; deactivating the player on turn
// hands the turn to the next active one. What makes a player inactive
// (resignation, timeout) is the caller's business.
func (g *Game) SetPlayerActive(playerID string, active bool) error {
	for idx, p := range g.players {
		if p.id != playerID {
			continue
		}
		p.active = active
		if !active && g.onturn == idx && g.phase == PhaseInProgress {
			g.onturn = g.nextPlayer()
		}
		return nil
	}
	return fmt.Errorf("no player with id %v", playerID)
}

// SetRackFor hands a player a known rack: the current rack goes back
// in the bag and the named tiles come out of it. Tiles the bag cannot
// supply fail the swap, leaving the player holding nothing and the
// bag whole.
func (g *Game) SetRackFor(playerIdx int, letters string) error {
	tiles, err := tilemapping.TilesFromString(letters, g.rules.LetterDistribution())
	if err != nil {
		return err
	}
	if len(tiles) > RackTileLimit {
		return fmt.Errorf("a rack holds at most %v tiles", RackTileLimit)
	}
	g.players[playerIdx].throwRackIn(g.bag)
	if err := g.bag.RemoveTiles(tiles); err != nil {
		return err
	}
	g.players[playerIdx].rack.AddTiles(tiles)
	return nil
}

// CreatePlacementMove builds a play from coordinates and a word, the
// way a player would say it: "8H CART" plays CART horizontally from
// H8. Letters already on the board are skipped over (they must match
// the word); lowercase letters designate blanks.
func (g *Game) CreatePlacementMove(coords string, word string) (*move.Move, error) {
	row, col, vertical, err := move.FromBoardGameCoords(coords)
	if err != nil {
		return nil, err
	}
	tiles, err := tilemapping.TilesFromString(word, g.rules.LetterDistribution())
	if err != nil {
		return nil, err
	}
	ri, ci := 0, 1
	if vertical {
		ri, ci = ci, ri
	}
	placements := []move.TilePlacement{}
	for i, t := range tiles {
		r, c := row+ri*i, col+ci*i
		if !g.board.PosExists(r, c) {
			return nil, ErrPlacementOffBoard
		}
		if existing, ok := g.board.GetTile(r, c); ok {
			if existing.Letter != t.Letter {
				return nil, fmt.Errorf("the board already has %v at %v",
					existing, move.ToBoardGameCoords(r, c, vertical))
			}
			continue
		}
		placements = append(placements, move.TilePlacement{Row: r, Col: c, Tile: t})
	}
	if len(placements) == 0 {
		return nil, fmt.Errorf("that play adds no tiles")
	}
	return move.NewPlacementMove(placements), nil
}

// Uid returns the unique id of this game.
func (g *Game) Uid() string {
	return g.gameID
}

// Board returns the game board.
func (g *Game) Board() *board.GameBoard {
	return g.board
}

// Bag returns the game's tile bag.
func (g *Game) Bag() *tilemapping.Bag {
	return g.bag
}

// Rules returns the rules this game was created with.
func (g *Game) Rules() *GameRules {
	return g.rules
}

// NumPlayers returns the number of players, active or not.
func (g *Game) NumPlayers() int {
	return len(g.players)
}

// PlayerIDs returns the player ids in turn order.
func (g *Game) PlayerIDs() []string {
	ids := make([]string, len(g.players))
	for i, p := range g.players {
		ids[i] = p.id
	}
	return ids
}

// PlayerOnTurn returns the index of the player whose turn it is.
func (g *Game) PlayerOnTurn() int {
	return g.onturn
}

// PlayerIDOnTurn returns the id of the player whose turn it is.
func (g *Game) PlayerIDOnTurn() string {
	return g.players[g.onturn].id
}

// RackFor returns the rack of the player at the given index.
func (g *Game) RackFor(playerIdx int) *tilemapping.Rack {
	return g.players[playerIdx].rack
}

// RackLettersFor returns the rack of the player at the given index as
// a sorted string.
func (g *Game) RackLettersFor(playerIdx int) string {
	return g.players[playerIdx].rack.String()
}

// PointsFor returns the score of the player at the given index.
func (g *Game) PointsFor(playerIdx int) int {
	return g.players[playerIdx].points
}

// BingosFor returns how many bingos the player has played.
func (g *Game) BingosFor(playerIdx int) int {
	return g.players[playerIdx].bingos
}

// IsActive reports whether the player at the given index is active.
func (g *Game) IsActive(playerIdx int) bool {
	return g.players[playerIdx].active
}

// Turn returns the number of moves accepted so far.
func (g *Game) Turn() int {
	return g.turnnum
}

// ConsecutivePasses returns the stall counter.
func (g *Game) ConsecutivePasses() int {
	return g.consecutivePasses
}

// Phase returns the game's lifecycle phase.
func (g *Game) Phase() GamePhase {
	return g.phase
}

// History returns the accepted moves so far, oldest first.
func (g *Game) History() []*MoveRecord {
	return append([]*MoveRecord{}, g.history...)
}

// ToDisplayText produces the board and the score line of every
// player, for the shell.
func (g *Game) ToDisplayText() string {
	out := g.board.ToDisplayText()
	for idx, p := range g.players {
		out += p.stateString(g.phase == PhaseInProgress && idx == g.onturn) + "\n"
	}
	bagTiles := 0
	if g.bag != nil {
		bagTiles = g.bag.TilesRemaining()
	}
	out += fmt.Sprintf("Bag: %v tiles, passes: %v, phase: %v\n",
		bagTiles, g.consecutivePasses, g.phase)
	return out
}
