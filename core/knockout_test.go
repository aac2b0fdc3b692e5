package core

import (
	"errors"
	"testing"
)

// Creates a league with one eligible roster per entry of the
// strengths map. The squads have no goals and cards so the
// roster's strength equals its points.
func knockoutLeague(t *testing.T, format KnockoutFormat, strengths map[int]int) *League {
	t.Helper()
	league, err := NewLeague(Config{Knockout: format})
	if err != nil {
		t.Fatal(err)
	}

	for id, strength := range strengths {
		if err := league.AddRoster(id, strength); err != nil {
			t.Fatal(err)
		}
		fillRoster(t, league, id, 100*id, 11)
	}

	return league
}

func contenderIds(contenders []Contender) []int {
	ids := make([]int, 0, len(contenders))
	for _, c := range contenders {
		ids = append(ids, c.Id)
	}
	return ids
}

func TestLadderKnockout(t *testing.T) {
	league := knockoutLeague(t, KnockoutLadder, map[int]int{1: 10, 2: 5, 3: 20, 4: 1})

	bracket, err := league.Knockout(0, 10)
	if err != nil {
		t.Fatal(err)
	}

	ids := contenderIds(bracket.Contenders)
	if len(ids) != 4 || ids[0] != 1 || ids[3] != 4 {
		t.Fatalf("The contenders %v are not in ascending id order", ids)
	}

	if bracket.Winner.Id != 3 || bracket.Winner.Score != 45 {
		t.Fatalf("The ladder was won by %d with %d, expected 3 with 45", bracket.Winner.Id, bracket.Winner.Score)
	}

	if len(bracket.Matches) != 3 || len(bracket.Rounds) != 3 {
		t.Fatal("A ladder of 4 contenders does not have 3 matches in 3 rounds")
	}

	first := bracket.Matches[0]
	if first.GetWinner().Id != 1 || first.GetLoser().Id != 2 || first.Survivor.Score != 18 {
		t.Fatalf("The first match went wrong: %v", first)
	}

	// The survivor enters the next match with its new score
	second := bracket.Matches[1]
	if second.Home.Id != 1 || second.Home.Score != 18 || second.Away.Id != 3 {
		t.Fatalf("The second match was not played by the survivor: %v", second)
	}

	dependants := bracket.GetDependants(first)
	if len(dependants) != 1 || dependants[0] != second {
		t.Fatal("The first match does not lead into the second match")
	}

	final := bracket.Final()
	dependencies := bracket.GetDependencies(final)
	if len(dependencies) != 1 || dependencies[0] != second {
		t.Fatal("The final does not depend on the second match")
	}

	visited := make([]*Match, 0, 3)
	for m := range bracket.BreadthSearchIter(first) {
		visited = append(visited, m)
	}
	if len(visited) != 3 || visited[1] != second || visited[2] != final {
		t.Fatal("The ladder is not a chain of matches")
	}

	if len(bracket.MatchesOf(1)) != 2 || len(bracket.MatchesOf(4)) != 1 {
		t.Fatal("The matches of the contenders are wrong")
	}
}

func TestRoundsKnockout(t *testing.T) {
	strengths := map[int]int{1: 5, 2: 5, 3: 8, 4: 8}

	ladder := knockoutLeague(t, KnockoutLadder, strengths)
	winner, err := ladder.KnockoutWinner(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if winner != 2 {
		t.Fatalf("The ladder was won by %d instead of 2", winner)
	}

	rounds := knockoutLeague(t, KnockoutRounds, strengths)
	bracket, err := rounds.Knockout(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if bracket.Winner.Id != 4 || bracket.Winner.Score != 35 {
		t.Fatalf("The rounds were won by %d with %d, expected 4 with 35", bracket.Winner.Id, bracket.Winner.Score)
	}

	if len(bracket.Rounds) != 2 || len(bracket.Rounds[0].Matches) != 2 {
		t.Fatal("4 contenders did not play 2 rounds")
	}

	final := bracket.Final()
	if final.Home.Id != 2 || final.Away.Id != 4 {
		t.Fatalf("The final was not played by the semi final survivors: %v", final)
	}
	if len(bracket.GetDependencies(final)) != 2 {
		t.Fatal("The final does not depend on both semi finals")
	}
	for _, semi := range bracket.Rounds[0].Matches {
		dependants := bracket.GetDependants(semi)
		if len(dependants) != 1 || dependants[0] != final {
			t.Fatal("A semi final does not lead into the final")
		}
	}
}

func TestRoundsKnockoutOddContenders(t *testing.T) {
	league := knockoutLeague(t, KnockoutRounds, map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5})

	bracket, err := league.Knockout(1, 5)
	if err != nil {
		t.Fatal(err)
	}

	if len(bracket.Matches) != 4 || len(bracket.Rounds) != 3 {
		t.Fatal("5 contenders did not play 4 matches in 3 rounds")
	}

	// The last contender skips the first two rounds
	if len(bracket.MatchesOf(5)) != 1 {
		t.Fatal("The unpaired contender played more than the final")
	}

	final := bracket.Final()
	if len(bracket.GetDependencies(final)) != 1 {
		t.Fatal("The final depends on a match that the unpaired contender did not play")
	}
	if bracket.Winner.Id != 4 || bracket.Winner.Score != 27 {
		t.Fatalf("The rounds were won by %d with %d, expected 4 with 27", bracket.Winner.Id, bracket.Winner.Score)
	}
}

func TestKnockoutRange(t *testing.T) {
	league := knockoutLeague(t, KnockoutLadder, map[int]int{2: 1, 4: 9, 6: 3, 8: 7})

	// Roster 5 can not play with its 3 players
	if err := league.AddRoster(5, 100); err != nil {
		t.Fatal(err)
	}
	fillRoster(t, league, 5, 500, 3)

	bracket, err := league.Knockout(3, 6)
	if err != nil {
		t.Fatal(err)
	}
	ids := contenderIds(bracket.Contenders)
	if len(ids) != 2 || ids[0] != 4 || ids[1] != 6 {
		t.Fatalf("The contenders %v are not the eligible rosters in [3, 6]", ids)
	}

	// A single contender wins without a match
	bracket, err = league.Knockout(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if bracket.Winner.Id != 8 || bracket.Final() != nil || len(bracket.Rounds) != 0 {
		t.Fatal("A lone contender did not win without playing")
	}

	_, err = league.KnockoutWinner(9, 20)
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("A range without eligible rosters did not fail with ErrNotFound")
	}
	_, err = league.KnockoutWinner(5, 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("An ineligible roster entered the knockout stage")
	}

	_, err = league.KnockoutWinner(-1, 5)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatal("A negative range bound was accepted")
	}
	_, err = league.KnockoutWinner(6, 3)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatal("A reversed range was accepted")
	}
}

func TestKnockoutLeavesLeagueUntouched(t *testing.T) {
	league := knockoutLeague(t, KnockoutRounds, map[int]int{1: 3, 2: 1})

	if _, err := league.KnockoutWinner(1, 2); err != nil {
		t.Fatal(err)
	}
	for id, want := range map[int]int{1: 3, 2: 1} {
		points, _ := league.Points(id)
		if points != want {
			t.Fatal("The knockout stage changed the league points")
		}
	}
	if err := league.Validate(); err != nil {
		t.Fatal(err)
	}
}
