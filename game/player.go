package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

type playerState struct {
	id     string
	rack   *tilemapping.Rack
	points int
	active bool
	bingos int
}

func newPlayerState(id string, ld *tilemapping.LetterDistribution) *playerState {
	return &playerState{
		id:     id,
		rack:   tilemapping.NewRack(ld),
		active: true,
	}
}

func (p *playerState) resetScore() {
	p.points = 0
	p.bingos = 0
}

func (p *playerState) throwRackIn(bag *tilemapping.Bag) {
	log.Debug().Str("rack", p.rack.String()).Str("player", p.id).
		Msg("throwing rack in")
	bag.PutBack(p.rack.TilesOn())
	p.rack.Clear()
}

func (p *playerState) stateString(myturn bool) string {
	onturn := ""
	if myturn {
		onturn = "-> "
	}
	return fmt.Sprintf("%4v%20v%9v %4v", onturn, p.id, p.rack.String(), p.points)
}

type playerStates []*playerState

func (p playerStates) resetRacks() {
	for idx := range p {
		p[idx].rack.Clear()
	}
}

func (p playerStates) resetScore() {
	for idx := range p {
		p[idx].resetScore()
	}
}
