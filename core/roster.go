package core

import (
	"github.com/ezBadminton/leagueindex/football"
	"github.com/ezBadminton/leagueindex/index"
)

// A Player is a member of exactly one Roster.
//
// Players are linked to their neighbors in the league wide
// ranking so that the next better and next worse player are
// known without a tree lookup.
type Player struct {
	id     int
	teamId int

	// The roster the player currently plays for
	roster *Roster

	// Games the player played before joining the roster.
	// The roster's own game counter is added on top.
	gamesOffset int

	goals      int
	cards      int
	goalkeeper bool

	prev *Player
	next *Player
}

func (p *Player) Id() int {
	return p.id
}

func (p *Player) TeamId() int {
	return p.teamId
}

func (p *Player) Roster() *Roster {
	return p.roster
}

// Returns the number of games the player has played in total
func (p *Player) GamesPlayed() int {
	return p.gamesOffset + p.roster.gamesPlayed
}

func (p *Player) Goals() int {
	return p.goals
}

func (p *Player) Cards() int {
	return p.cards
}

func (p *Player) IsGoalkeeper() bool {
	return p.goalkeeper
}

func (p *Player) RankKey() RankKey {
	return RankKey{Goals: p.goals, Cards: p.cards, ID: p.id}
}

// Returns the next worse player of the league or nil
func (p *Player) Prev() *Player {
	return p.prev
}

// Returns the next better player of the league or nil
func (p *Player) Next() *Player {
	return p.next
}

// A Roster is a team with its squad of players.
type Roster struct {
	id int

	gamesPlayed int
	points      int
	goalkeepers int
	cards       int
	goals       int

	topScorer *Player

	// The next eligible roster by ascending id. Only set
	// while the roster itself is eligible.
	nextEligible *Roster

	byId   *index.Index[int, *Player]
	byRank *index.Index[RankKey, *Player]
}

func newRoster(id, points int) *Roster {
	return &Roster{
		id:     id,
		points: points,
		byId:   index.New[int, *Player](),
		byRank: index.NewFunc[RankKey, *Player](RankKey.Compare),
	}
}

func (r *Roster) Id() int {
	return r.id
}

func (r *Roster) GamesPlayed() int {
	return r.gamesPlayed
}

func (r *Roster) Points() int {
	return r.points
}

// Returns the number of players in the squad
func (r *Roster) Size() int {
	return r.byId.Len()
}

func (r *Roster) Goalkeepers() int {
	return r.goalkeepers
}

func (r *Roster) Cards() int {
	return r.cards
}

func (r *Roster) Goals() int {
	return r.goals
}

func (r *Roster) TopScorer() *Player {
	return r.topScorer
}

func (r *Roster) NextEligible() *Roster {
	return r.nextEligible
}

// Returns the playing strength that decides matches
func (r *Roster) Strength() int {
	return football.Strength(r.points, r.goals, r.cards)
}

func (r *Roster) addPlayer(p *Player) {
	check(r.byId.Insert(p.id, p))
	check(r.byRank.Insert(p.RankKey(), p))
	r.goals += p.goals
	r.cards += p.cards
	if p.goalkeeper {
		r.goalkeepers += 1
	}
}

func (r *Roster) removePlayer(p *Player) {
	check(r.byId.Remove(p.id))
	check(r.byRank.Remove(p.RankKey()))
	r.goals -= p.goals
	r.cards -= p.cards
	if p.goalkeeper {
		r.goalkeepers -= 1
	}
}
