package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/jabibo/wordbattle-backend-sub000/game"
	"github.com/jabibo/wordbattle-backend-sub000/gamestore"
	"github.com/jabibo/wordbattle-backend-sub000/lexicon"
	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

type StoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameExpiry = time.Hour

	s.store = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StoreSuite) snapshot(seed uint64) *game.Snapshot {
	rules, err := game.NewBasicGameRules("english", lexicon.AcceptAll{})
	s.Require().NoError(err)
	g, err := game.NewGame(rules, []string{"jesse", "cesar"}, tilemapping.SeededSource(seed))
	s.Require().NoError(err)
	g.StartGame()
	return g.ToSnapshot()
}

func (s *StoreSuite) TestSaveAndGet() {
	snap := s.snapshot(1)
	s.Require().NoError(s.store.Save(s.ctx, snap))

	got, err := s.store.Get(s.ctx, snap.GameID)
	s.Require().NoError(err)
	s.Equal(snap.Fingerprint(), got.Fingerprint())
}

func (s *StoreSuite) TestGetNotFound() {
	_, err := s.store.Get(s.ctx, "nonexistent")
	s.ErrorIs(err, gamestore.ErrNotFound)
}

func (s *StoreSuite) TestDelete() {
	snap := s.snapshot(2)
	s.Require().NoError(s.store.Save(s.ctx, snap))

	s.Require().NoError(s.store.Delete(s.ctx, snap.GameID))
	_, err := s.store.Get(s.ctx, snap.GameID)
	s.ErrorIs(err, gamestore.ErrNotFound)

	s.NoError(s.store.Delete(s.ctx, "never-saved"))
}

func (s *StoreSuite) TestList() {
	first := s.snapshot(3)
	second := s.snapshot(4)
	s.Require().NoError(s.store.Save(s.ctx, first))
	s.Require().NoError(s.store.Save(s.ctx, second))

	ids, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{first.GameID, second.GameID}, ids)
}

func (s *StoreSuite) TestSavedGamesExpire() {
	snap := s.snapshot(5)
	s.Require().NoError(s.store.Save(s.ctx, snap))

	s.True(s.mini.TTL(gameKey(snap.GameID)) > 0, "saved game should carry a TTL")

	s.mini.FastForward(2 * time.Hour)
	_, err := s.store.Get(s.ctx, snap.GameID)
	s.ErrorIs(err, gamestore.ErrNotFound)
}

func (s *StoreSuite) TestSaveRenewsExpiry() {
	snap := s.snapshot(6)
	s.Require().NoError(s.store.Save(s.ctx, snap))

	s.mini.FastForward(30 * time.Minute)
	s.Require().NoError(s.store.Save(s.ctx, snap))

	s.mini.FastForward(45 * time.Minute)
	_, err := s.store.Get(s.ctx, snap.GameID)
	s.NoError(err, "the second save should have reset the clock")
}

func (s *StoreSuite) TestSavedGameResumes() {
	snap := s.snapshot(7)
	s.Require().NoError(s.store.Save(s.ctx, snap))

	got, err := s.store.Get(s.ctx, snap.GameID)
	s.Require().NoError(err)
	g, err := game.FromSnapshot(got, lexicon.AcceptAll{}, nil)
	s.Require().NoError(err)
	s.Equal(game.PhaseInProgress, g.Phase())
}

func TestOpenBadURL(t *testing.T) {
	_, err := Open(Config{URL: "not-a-redis-url"})
	if err == nil {
		t.Fatal("expected an error for a bad URL")
	}
}
