package game

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/jabibo/wordbattle-backend-sub000/board"
	"github.com/jabibo/wordbattle-backend-sub000/lexicon"
	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

// A Snapshot is the whole state of one game in plain serializable
// form. It is what stores persist and what a game resumes from; a
// game and its snapshot-clone behave identically from then on. The
// lexicon travels by name only, so whoever resumes must bring one.
type Snapshot struct {
	GameID      string        `json:"game_id"`
	Language    string        `json:"language"`
	Lexicon     string        `json:"lexicon"`
	BingoBonus  int           `json:"bingo_bonus"`
	BoardLayout []string      `json:"board_layout"`
	Rows        []string      `json:"rows"`
	PlayerIDs   []string      `json:"player_ids"`
	Racks       []string      `json:"racks"`
	Scores      []int         `json:"scores"`
	Bingos      []int         `json:"bingos"`
	Active      []bool        `json:"active"`
	Bag         string        `json:"bag"`
	OnTurn      int           `json:"on_turn"`
	Turn        int           `json:"turn"`
	Passes      int           `json:"passes"`
	Phase       string        `json:"phase"`
	History     []*MoveRecord `json:"history,omitempty"`
}

// ToSnapshot captures the game's current state.
func (g *Game) ToSnapshot() *Snapshot {
	snap := &Snapshot{
		GameID:      g.gameID,
		Language:    g.rules.LetterDistribution().Name,
		Lexicon:     g.rules.Lexicon().Name(),
		BingoBonus:  g.rules.BingoBonus(),
		BoardLayout: g.rules.BoardLayout(),
		OnTurn:      g.onturn,
		Turn:        g.turnnum,
		Passes:      g.consecutivePasses,
		Phase:       g.phase.String(),
		History:     g.History(),
	}
	for r := 0; r < g.board.Dim(); r++ {
		snap.Rows = append(snap.Rows, g.rowString(r))
	}
	for _, p := range g.players {
		snap.PlayerIDs = append(snap.PlayerIDs, p.id)
		snap.Racks = append(snap.Racks, p.rack.String())
		snap.Scores = append(snap.Scores, p.points)
		snap.Bingos = append(snap.Bingos, p.bingos)
		snap.Active = append(snap.Active, p.active)
	}
	if g.bag != nil {
		snap.Bag = canonicalBag(g.bag)
	}
	return snap
}

// rowString flattens one board row: spaces for empty squares,
// lowercase for blanks, the same form SetRow reads back.
func (g *Game) rowString(row int) string {
	var sb strings.Builder
	for c := 0; c < g.board.Dim(); c++ {
		if t, ok := g.board.GetTile(row, c); ok {
			sb.WriteString(t.String())
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// canonicalBag sorts the bag into the distribution's letter order, so
// equal games serialize to equal bytes no matter the draw history.
func canonicalBag(bag *tilemapping.Bag) string {
	tiles := bag.Peek()
	order := bag.LetterDistribution().SortOrder
	sort.Slice(tiles, func(i, j int) bool {
		return order[tiles[i].Letter] < order[tiles[j].Letter]
	})
	return tilemapping.TilesToString(tiles)
}

// Fingerprint hashes the snapshot into a single comparable value.
// Equal game states fingerprint equally.
func (s *Snapshot) Fingerprint() uint64 {
	b, _ := json.Marshal(s)
	return xxhash.Sum64(b)
}

// FromSnapshot rebuilds a live game. The random source drives draws
// from here on; pass nil for a well-seeded default. It refuses
// snapshots whose tiles do not add back up to a full set.
func FromSnapshot(snap *Snapshot, lex lexicon.Lexicon, rng tilemapping.RandSource) (*Game, error) {
	dist, err := tilemapping.ResolveLetterDistribution(snap.Language)
	if err != nil {
		return nil, err
	}
	phase, err := ParseGamePhase(snap.Phase)
	if err != nil {
		return nil, err
	}
	n := len(snap.PlayerIDs)
	if n < MinPlayers || len(snap.Racks) != n || len(snap.Scores) != n || len(snap.Active) != n {
		return nil, fmt.Errorf("snapshot player data is inconsistent")
	}
	if snap.OnTurn < 0 || snap.OnTurn >= n {
		return nil, fmt.Errorf("snapshot on-turn index %v is out of range", snap.OnTurn)
	}
	if rng == nil {
		rng = tilemapping.DefaultSource()
	}

	layout := snap.BoardLayout
	if len(layout) == 0 {
		layout = board.CrosswordGameBoard
	}
	b := board.MakeBoard(layout)
	for r, letters := range snap.Rows {
		b.SetRow(r, letters, dist)
	}

	players := make(playerStates, n)
	for i, id := range snap.PlayerIDs {
		rack, err := tilemapping.RackFromString(snap.Racks[i], dist)
		if err != nil {
			return nil, err
		}
		players[i] = newPlayerState(id, dist)
		players[i].rack = rack
		players[i].points = snap.Scores[i]
		players[i].active = snap.Active[i]
		if i < len(snap.Bingos) {
			players[i].bingos = snap.Bingos[i]
		}
	}

	bagTiles, err := tilemapping.TilesFromString(snap.Bag, dist)
	if err != nil {
		return nil, err
	}

	g := &Game{
		gameID: snap.GameID,
		rules: &GameRules{
			dist:        dist,
			lex:         lex,
			boardLayout: layout,
			bingoBonus:  snap.BingoBonus,
		},
		rng:               rng,
		board:             b,
		bag:               tilemapping.BagFromTiles(dist, bagTiles, rng),
		players:           players,
		onturn:            snap.OnTurn,
		turnnum:           snap.Turn,
		consecutivePasses: snap.Passes,
		phase:             phase,
		history:           append([]*MoveRecord{}, snap.History...),
	}

	if phase != PhaseNotStarted {
		total := g.bag.TilesRemaining() + b.TilesPlayed()
		for _, p := range players {
			total += p.rack.NumTiles()
		}
		if total != dist.TotalTiles() {
			return nil, fmt.Errorf("snapshot does not conserve tiles: have %v, want %v",
				total, dist.TotalTiles())
		}
	}
	return g, nil
}
