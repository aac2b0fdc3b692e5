package core

import (
	"errors"
	"fmt"

	"github.com/ezBadminton/leagueindex/football"
)

// A Contender is an eligible roster in the knockout stage.
type Contender struct {
	Id int
	// The knockout score accumulated so far
	Score int
}

// A knockout match between two contenders.
//
// The contenders carry the scores they had going into the match.
type Match struct {
	Home Contender
	Away Contender

	// The winner with its score after the match
	Survivor Contender

	// Id for graph node hashing
	id int
}

// Returns the contender who won the match
func (m *Match) GetWinner() Contender {
	if m.Survivor.Id == m.Home.Id {
		return m.Home
	}
	return m.Away
}

// Returns the contender who was knocked out
func (m *Match) GetLoser() Contender {
	if m.Survivor.Id == m.Home.Id {
		return m.Away
	}
	return m.Home
}

func (m *Match) Id() int {
	return m.id
}

func (m *Match) String() string {
	return fmt.Sprintf("%d (%d) vs. %d (%d)\t%d advances with %d",
		m.Home.Id, m.Home.Score, m.Away.Id, m.Away.Score, m.Survivor.Id, m.Survivor.Score)
}

// Plays a knockout match.
//
// The higher score wins and equal scores are won by the higher id.
// The winner adds the bonus and the loser's score to its own score.
func playKnockoutMatch(home, away Contender, bonus int) *Match {
	winner, loser := home, away
	result := football.Result{Home: home.Score, Away: away.Score}
	w, err := result.GetWinner()
	if w == 1 || (errors.Is(err, football.ErrDraw) && away.Id > home.Id) {
		winner, loser = away, home
	}

	survivor := Contender{Id: winner.Id, Score: winner.Score + bonus + loser.Score}
	return &Match{
		Home:     home,
		Away:     away,
		Survivor: survivor,
		id:       NextNodeId(),
	}
}

// A Round is a list of matches that do not depend on each other.
type Round struct {
	Matches []*Match
}

// A Bracket is the course of a played knockout stage.
type Bracket struct {
	*EliminationGraph

	Contenders []Contender
	Matches    []*Match
	Rounds     []*Round

	// The last contender standing
	Winner Contender
}

// Returns the last match or nil when the knockout
// stage had only one contender
func (b *Bracket) Final() *Match {
	if len(b.Matches) == 0 {
		return nil
	}
	return b.Matches[len(b.Matches)-1]
}

// Returns the matches that the contender played
func (b *Bracket) MatchesOf(id int) []*Match {
	matches := make([]*Match, 0, 4)
	for _, m := range b.Matches {
		if m.Home.Id == id || m.Away.Id == id {
			matches = append(matches, m)
		}
	}
	return matches
}

func newBracket(contenders []Contender) *Bracket {
	return &Bracket{
		EliminationGraph: NewEliminationGraph(),
		Contenders:       contenders,
		Winner:           contenders[0],
	}
}

// Adds the match and links it to the matches that its
// contenders came from
func (b *Bracket) addMatch(match *Match, from ...*Match) {
	b.AddVertex(match)
	for _, f := range from {
		if f != nil {
			b.AddEdge(f, match)
		}
	}
	b.Matches = append(b.Matches, match)
	b.Winner = match.Survivor
}

// Plays every contender against the survivor of the previous
// match, going through the contenders in their given order.
// The survivor's score grows with every match won.
func playLadder(contenders []Contender, bonus int) *Bracket {
	bracket := newBracket(contenders)

	var last *Match
	survivor := contenders[0]
	for _, c := range contenders[1:] {
		match := playKnockoutMatch(survivor, c, bonus)
		bracket.addMatch(match, last)
		bracket.Rounds = append(bracket.Rounds, &Round{Matches: []*Match{match}})
		survivor, last = match.Survivor, match
	}

	return bracket
}

// Pairs the contenders in their given order and repeats with the
// survivors until one contender remains. An unpaired contender at
// the end of a round advances without a match.
func playRounds(contenders []Contender, bonus int) *Bracket {
	bracket := newBracket(contenders)

	type advance struct {
		contender Contender
		from      *Match
	}

	current := make([]advance, 0, len(contenders))
	for _, c := range contenders {
		current = append(current, advance{contender: c})
	}

	for len(current) > 1 {
		round := &Round{}
		next := make([]advance, 0, (len(current)+1)/2)
		for i := 0; i+1 < len(current); i += 2 {
			home, away := current[i], current[i+1]
			match := playKnockoutMatch(home.contender, away.contender, bonus)
			bracket.addMatch(match, home.from, away.from)
			round.Matches = append(round.Matches, match)
			next = append(next, advance{contender: match.Survivor, from: match})
		}
		if len(current)%2 == 1 {
			next = append(next, current[len(current)-1])
		}
		bracket.Rounds = append(bracket.Rounds, round)
		current = next
	}

	return bracket
}

// Plays the knockout stage between all eligible rosters with an
// id in the inclusive range [minId, maxId].
//
// The contenders enter with their strength as the score and play
// in ascending id order.
func (l *League) Knockout(minId, maxId int) (*Bracket, error) {
	if minId < 0 || maxId < 0 || maxId < minId {
		return nil, fmt.Errorf("knockout range [%d, %d]: %w", minId, maxId, ErrInvalidArgument)
	}

	_, first, ok := l.eligible.MinInRange(minId, maxId)
	if !ok {
		return nil, fmt.Errorf("eligible roster in [%d, %d]: %w", minId, maxId, ErrNotFound)
	}

	contenders := make([]Contender, 0, 16)
	for r := first; r != nil && r.id <= maxId; r = r.nextEligible {
		contenders = append(contenders, Contender{Id: r.id, Score: r.Strength()})
	}

	var bracket *Bracket
	switch l.knockout {
	case KnockoutRounds:
		bracket = playRounds(contenders, l.rules.KnockoutBonus)
	default:
		bracket = playLadder(contenders, l.rules.KnockoutBonus)
	}

	l.logger.Debug("knockout played",
		"min", minId, "max", maxId, "contenders", len(contenders), "winner", bracket.Winner.Id)

	return bracket, nil
}

// Returns the id of the roster that wins the knockout stage
// between the eligible rosters in [minId, maxId]
func (l *League) KnockoutWinner(minId, maxId int) (int, error) {
	bracket, err := l.Knockout(minId, maxId)
	if err != nil {
		return 0, err
	}
	return bracket.Winner.Id, nil
}
