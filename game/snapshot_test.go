package game

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"

	"github.com/jabibo/wordbattle-backend-sub000/lexicon"
	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

func TestSnapshotRoundTrip(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	scriptRacks(t, g, "CATXYZQ", "TAEEIOU")
	_, err := g.ApplyMove("jesse", mustPlacement(t, g, "8F", "CAT"))
	is.NoErr(err)
	_, err = g.ApplyMove("cesar", mustPlacement(t, g, "9G", "TA"))
	is.NoErr(err)

	snap := g.ToSnapshot()
	data, err := json.Marshal(snap)
	is.NoErr(err)
	var decoded Snapshot
	is.NoErr(json.Unmarshal(data, &decoded))

	g2, err := FromSnapshot(&decoded, lexicon.AcceptAll{}, tilemapping.SeededSource(99))
	is.NoErr(err)
	is.Equal(g2.Uid(), g.Uid())
	is.Equal(g2.Phase(), g.Phase())
	is.Equal(g2.Turn(), g.Turn())
	is.Equal(g2.PlayerIDOnTurn(), g.PlayerIDOnTurn())
	is.Equal(g2.PointsFor(0), g.PointsFor(0))
	is.Equal(g2.PointsFor(1), g.PointsFor(1))
	is.Equal(g2.RackLettersFor(0), g.RackLettersFor(0))
	is.Equal(g2.RackLettersFor(1), g.RackLettersFor(1))
	is.Equal(len(g2.History()), len(g.History()))
	is.True(g2.board.Equals(g.board))
	is.Equal(countTiles(g2), 100)
	is.Equal(g2.ToSnapshot().Fingerprint(), snap.Fingerprint())
}

func TestSnapshotCloneBehavesIdentically(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	scriptRacks(t, g, "CATXYZQ", "TAEEIOU")
	_, err := g.ApplyMove("jesse", mustPlacement(t, g, "8F", "CAT"))
	is.NoErr(err)

	g2, err := FromSnapshot(g.ToSnapshot(), lexicon.AcceptAll{}, tilemapping.SeededSource(99))
	is.NoErr(err)

	m1 := mustPlacement(t, g, "9G", "TA")
	m2 := mustPlacement(t, g2, "9G", "TA")
	out1, err := g.ApplyMove("cesar", m1)
	is.NoErr(err)
	out2, err := g2.ApplyMove("cesar", m2)
	is.NoErr(err)
	is.Equal(out1.PointsScored, out2.PointsScored)
	is.Equal(out1.FormedWords, out2.FormedWords)
	is.True(g2.board.Equals(g.board))
}

func TestSnapshotBagIsCanonical(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	fp := g.ToSnapshot().Fingerprint()
	// the bag's internal order is not part of the state
	g.bag.Shuffle()
	is.Equal(g.ToSnapshot().Fingerprint(), fp)
}

func TestFingerprintTracksState(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	scriptRacks(t, g, "CATXYZQ", "DEIRSLU")
	fp := g.ToSnapshot().Fingerprint()

	_, err := g.ApplyMove("jesse", mustPlacement(t, g, "8F", "CAT"))
	is.NoErr(err)
	is.True(g.ToSnapshot().Fingerprint() != fp)
}

func TestSnapshotRejectsTileLeak(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	snap := g.ToSnapshot()
	snap.Racks[0] = "AE"

	_, err := FromSnapshot(snap, lexicon.AcceptAll{}, nil)
	is.True(err != nil)
}

func TestSnapshotRejectsBadOnTurn(t *testing.T) {
	is := is.New(t)
	g := testGame(t, testRules(t))
	snap := g.ToSnapshot()
	snap.OnTurn = 5

	_, err := FromSnapshot(snap, lexicon.AcceptAll{}, nil)
	is.True(err != nil)
}

func TestSnapshotNotStarted(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(testRules(t), []string{"jesse", "cesar"}, tilemapping.SeededSource(3))
	is.NoErr(err)

	g2, err := FromSnapshot(g.ToSnapshot(), lexicon.AcceptAll{}, tilemapping.SeededSource(3))
	is.NoErr(err)
	is.Equal(g2.Phase(), PhaseNotStarted)
	g2.StartGame()
	is.Equal(g2.bag.TilesRemaining(), 86)
	is.Equal(countTiles(g2), 100)
}

func TestSnapshotKeepsPlayerActivity(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(testRules(t), []string{"jesse", "cesar", "conrad"}, tilemapping.SeededSource(5))
	is.NoErr(err)
	g.StartGame()
	is.NoErr(g.SetPlayerActive("conrad", false))

	g2, err := FromSnapshot(g.ToSnapshot(), lexicon.AcceptAll{}, nil)
	is.NoErr(err)
	is.True(g2.IsActive(0))
	is.True(g2.IsActive(1))
	is.True(!g2.IsActive(2))
}

func TestSnapshotGermanRoundTrip(t *testing.T) {
	is := is.New(t)
	rules, err := NewBasicGameRules("german", lexicon.AcceptAll{})
	is.NoErr(err)
	g, err := NewGame(rules, []string{"jesse", "cesar"}, tilemapping.SeededSource(13))
	is.NoErr(err)
	g.StartGame()
	scriptRacks(t, g, "JAÄNEIS", "DEIRSLU")
	_, err = g.ApplyMove("jesse", mustPlacement(t, g, "8G", "JA"))
	is.NoErr(err)

	g2, err := FromSnapshot(g.ToSnapshot(), lexicon.AcceptAll{}, nil)
	is.NoErr(err)
	is.Equal(countTiles(g2), 102)
	is.Equal(g2.ToSnapshot().Fingerprint(), g.ToSnapshot().Fingerprint())
}
