// Package football holds the rules of a league season: how matches
// are scored, which squads may take part and how the knockout
// stage rewards its winners.
package football

import (
	"errors"
)

var (
	ErrNegativePoints         = errors.New("awarded points are negative")
	ErrDrawExceedsWin         = errors.New("a draw awards more points than a win")
	ErrSquadZero              = errors.New("minimum squad size is zero or less")
	ErrNegativeGoalkeepers    = errors.New("minimum goalkeeper count is negative")
	ErrGoalkeepersExceedSquad = errors.New("more goalkeepers required than squad members")

	ErrDraw = errors.New("the match ended in a draw")
)

type Rules struct {
	// Points for winning a league match
	WinPoints int
	// Points each side gets for a draw
	DrawPoints int
	// Extra score a team gains for every knockout win
	KnockoutBonus int

	// A squad needs at least this many players
	// and goalkeepers to be eligible for matches
	MinSquad       int
	MinGoalkeepers int
}

// Returns the standard rules: 3 points for a win, 1 for
// a draw, 3 knockout bonus and an eligibility threshold
// of 11 players including a goalkeeper.
func DefaultRules() Rules {
	return Rules{
		WinPoints:      3,
		DrawPoints:     1,
		KnockoutBonus:  3,
		MinSquad:       11,
		MinGoalkeepers: 1,
	}
}

func NewRules(
	winPoints, drawPoints, knockoutBonus int,
	minSquad, minGoalkeepers int,
) (Rules, error) {
	rules := Rules{
		WinPoints:      winPoints,
		DrawPoints:     drawPoints,
		KnockoutBonus:  knockoutBonus,
		MinSquad:       minSquad,
		MinGoalkeepers: minGoalkeepers,
	}

	return rules, rules.Validate()
}

func (r Rules) Validate() error {
	switch {
	case r.WinPoints < 0 || r.DrawPoints < 0 || r.KnockoutBonus < 0:
		return ErrNegativePoints
	case r.DrawPoints > r.WinPoints:
		return ErrDrawExceedsWin
	case r.MinSquad <= 0:
		return ErrSquadZero
	case r.MinGoalkeepers < 0:
		return ErrNegativeGoalkeepers
	case r.MinGoalkeepers > r.MinSquad:
		return ErrGoalkeepersExceedSquad
	}
	return nil
}

// Returns true when a squad of the given size and
// goalkeeper count may play matches
func (r Rules) Eligible(squad, goalkeepers int) bool {
	return squad >= r.MinSquad && goalkeepers >= r.MinGoalkeepers
}

// Returns the league points that the home and away
// side receive for the result
func (r Rules) Award(result Result) (home, away int) {
	winner, err := result.GetWinner()
	if err != nil {
		return r.DrawPoints, r.DrawPoints
	}
	if winner == 0 {
		return r.WinPoints, 0
	}
	return 0, r.WinPoints
}

// Returns the playing strength of a team. A team is as strong
// as its points plus the goals its players scored minus the
// cards they received.
func Strength(points, goals, cards int) int {
	return points + goals - cards
}

// The result of a match as the strength of both sides
type Result struct {
	Home, Away int
}

// Returns either 0 or 1 whether the home side
// won or the away side.
// Errors with [ErrDraw] when the strengths are equal.
func (r Result) GetWinner() (int, error) {
	if r.Home > r.Away {
		return 0, nil
	}
	if r.Away > r.Home {
		return 1, nil
	}
	return -1, ErrDraw
}

// Returns a new Result with Home and Away flipped
func (r Result) Invert() Result {
	return Result{Home: r.Away, Away: r.Home}
}
