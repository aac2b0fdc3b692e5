package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezBadminton/leagueindex/core"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArguments      = errors.New("malformed arguments")
)

// The status that a replayed command reports
type Status string

const (
	StatusSuccess         Status = "SUCCESS"
	StatusInvalidInput    Status = "INVALID_INPUT"
	StatusFailure         Status = "FAILURE"
	StatusAllocationError Status = "ALLOCATION_ERROR"
)

// Returns the status that a league operation error is reported with
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, core.ErrInvalidArgument):
		return StatusInvalidInput
	case errors.Is(err, core.ErrAllocationFailure):
		return StatusAllocationError
	default:
		return StatusFailure
	}
}

// A command runs one league operation. The returned value is
// printed after the status when it is not empty.
type command struct {
	args int
	run  func(l *core.League, args []int, flag bool) (string, error)
}

func noValue(err error) (string, error) {
	return "", err
}

func intValue(v int, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return strconv.Itoa(v), nil
}

var commands = map[string]command{
	"add_team": {2, func(l *core.League, a []int, _ bool) (string, error) {
		return noValue(l.AddRoster(a[0], a[1]))
	}},
	"remove_team": {1, func(l *core.League, a []int, _ bool) (string, error) {
		return noValue(l.RemoveRoster(a[0]))
	}},
	// The goalkeeper flag follows the five numbers
	"add_player": {5, func(l *core.League, a []int, goalkeeper bool) (string, error) {
		return noValue(l.AddPlayer(a[0], a[1], a[2], a[3], a[4], goalkeeper))
	}},
	"remove_player": {1, func(l *core.League, a []int, _ bool) (string, error) {
		return noValue(l.RemovePlayer(a[0]))
	}},
	"update_player_stats": {4, func(l *core.League, a []int, _ bool) (string, error) {
		return noValue(l.UpdatePlayerStats(a[0], a[1], a[2], a[3]))
	}},
	"play_match": {2, func(l *core.League, a []int, _ bool) (string, error) {
		_, err := l.PlayMatch(a[0], a[1])
		return noValue(err)
	}},
	"get_num_played_games": {1, func(l *core.League, a []int, _ bool) (string, error) {
		return intValue(l.GamesPlayed(a[0]))
	}},
	"get_team_points": {1, func(l *core.League, a []int, _ bool) (string, error) {
		return intValue(l.Points(a[0]))
	}},
	"unite_teams": {3, func(l *core.League, a []int, _ bool) (string, error) {
		return noValue(l.UniteRosters(a[0], a[1], a[2]))
	}},
	"get_top_scorer": {1, func(l *core.League, a []int, _ bool) (string, error) {
		return intValue(l.TopScorer(a[0]))
	}},
	"get_all_players_count": {1, func(l *core.League, a []int, _ bool) (string, error) {
		return intValue(l.PlayerCount(a[0]))
	}},
	"get_all_players": {1, func(l *core.League, a []int, _ bool) (string, error) {
		ids, err := l.RankedPlayers(a[0])
		if err != nil {
			return "", err
		}
		values := make([]string, len(ids))
		for i, id := range ids {
			values[i] = strconv.Itoa(id)
		}
		return strings.Join(values, " "), nil
	}},
	"get_closest_player": {2, func(l *core.League, a []int, _ bool) (string, error) {
		return intValue(l.ClosestPlayer(a[0], a[1]))
	}},
	"knockout_winner": {2, func(l *core.League, a []int, _ bool) (string, error) {
		return intValue(l.KnockoutWinner(a[0], a[1]))
	}},
}

// Parses one script line into its command name, integer
// arguments and the optional trailing flag
func parseLine(line string) (string, command, []int, bool, error) {
	fields := strings.Fields(line)
	name := fields[0]
	cmd, ok := commands[name]
	if !ok {
		return name, cmd, nil, false, fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}

	rest := fields[1:]
	flag := false
	if name == "add_player" {
		if len(rest) != cmd.args+1 {
			return name, cmd, nil, false, fmt.Errorf("%s takes %d arguments: %w", name, cmd.args+1, ErrArguments)
		}
		var err error
		flag, err = strconv.ParseBool(rest[cmd.args])
		if err != nil {
			return name, cmd, nil, false, fmt.Errorf("%s goalkeeper flag: %w", name, ErrArguments)
		}
		rest = rest[:cmd.args]
	}
	if len(rest) != cmd.args {
		return name, cmd, nil, false, fmt.Errorf("%s takes %d arguments: %w", name, cmd.args, ErrArguments)
	}

	args := make([]int, len(rest))
	for i, r := range rest {
		v, err := strconv.Atoi(r)
		if err != nil {
			return name, cmd, nil, false, fmt.Errorf("%s argument %q: %w", name, r, ErrArguments)
		}
		args[i] = v
	}
	return name, cmd, args, flag, nil
}

// Runs every command of the script against the league and writes
// one status line per command to out. Blank lines and lines
// starting with # are skipped.
//
// Failing league operations are reported in the output. Only a
// malformed script stops the replay with an error.
func Replay(league *core.League, script io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(script)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber += 1
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, cmd, args, flag, err := parseLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}

		value, err := cmd.run(league, args, flag)
		status := StatusOf(err)
		if value != "" {
			_, err = fmt.Fprintf(out, "%s: %s, %s\n", name, status, value)
		} else {
			_, err = fmt.Fprintf(out, "%s: %s\n", name, status)
		}
		if err != nil {
			return err
		}
	}
	return scanner.Err()
}
