package core

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ezBadminton/leagueindex/football"
	"github.com/ezBadminton/leagueindex/index"
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrRosterNotEmpty    = errors.New("roster still has players")
	ErrIneligible        = errors.New("roster is not eligible to play")
	ErrAllocationFailure = errors.New("allocation failure")
)

// The format of the knockout stage
type KnockoutFormat int

const (
	// Every match is played by the survivor of the previous
	// match against the next contender in ascending id order.
	KnockoutLadder KnockoutFormat = iota

	// Contenders are paired up in ascending id order and the
	// survivors of a round are paired again until one remains.
	KnockoutRounds
)

type Config struct {
	// The rules of the league. The zero value selects
	// [football.DefaultRules].
	Rules football.Rules

	Knockout KnockoutFormat

	// Capacity limits, zero means unlimited
	MaxPlayers int
	MaxRosters int

	// Defaults to a logger that discards everything
	Logger *slog.Logger
}

// A League is the registry of all rosters and players.
//
// Besides the primary indexes by id the league maintains the
// ranking of all players by their [RankKey], a thread through
// the ranking that links every player to its neighbors, the
// index of eligible rosters with a thread in ascending id order
// and the cached top scorers. Every mutation keeps all of them
// consistent.
type League struct {
	players  *index.Index[int, *Player]
	ranking  *index.Index[RankKey, *Player]
	rosters  *index.Index[int, *Roster]
	eligible *index.Index[int, *Roster]

	topScorer *Player

	rules      football.Rules
	knockout   KnockoutFormat
	maxPlayers int
	maxRosters int
	logger     *slog.Logger
}

func NewLeague(cfg Config) (*League, error) {
	if cfg.Rules == (football.Rules{}) {
		cfg.Rules = football.DefaultRules()
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("league rules: %w", err)
	}
	if cfg.MaxPlayers < 0 || cfg.MaxRosters < 0 {
		return nil, fmt.Errorf("negative capacity: %w", ErrInvalidArgument)
	}
	if cfg.Knockout != KnockoutLadder && cfg.Knockout != KnockoutRounds {
		return nil, fmt.Errorf("knockout format %d: %w", cfg.Knockout, ErrInvalidArgument)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	league := &League{
		players:    index.New[int, *Player](),
		ranking:    index.NewFunc[RankKey, *Player](RankKey.Compare),
		rosters:    index.New[int, *Roster](),
		eligible:   index.New[int, *Roster](),
		rules:      cfg.Rules,
		knockout:   cfg.Knockout,
		maxPlayers: cfg.MaxPlayers,
		maxRosters: cfg.MaxRosters,
		logger:     cfg.Logger,
	}
	return league, nil
}

func (l *League) Rules() football.Rules {
	return l.rules
}

// Registers an empty roster
func (l *League) AddRoster(id, points int) error {
	if id <= 0 || points < 0 {
		return fmt.Errorf("roster %d with %d points: %w", id, points, ErrInvalidArgument)
	}
	if l.rosters.Contains(id) {
		return fmt.Errorf("roster %d: %w", id, ErrAlreadyExists)
	}
	if l.maxRosters > 0 && l.rosters.Len() >= l.maxRosters {
		return fmt.Errorf("roster %d exceeds %d rosters: %w", id, l.maxRosters, ErrAllocationFailure)
	}

	check(l.rosters.Insert(id, newRoster(id, points)))
	return nil
}

// Removes a roster. Only rosters without players can be removed.
func (l *League) RemoveRoster(id int) error {
	if id <= 0 {
		return fmt.Errorf("roster %d: %w", id, ErrInvalidArgument)
	}
	roster, err := l.roster(id)
	if err != nil {
		return err
	}
	if roster.Size() != 0 {
		return fmt.Errorf("roster %d: %w", id, ErrRosterNotEmpty)
	}

	if l.eligible.Contains(id) {
		l.unlinkEligible(roster)
	}
	check(l.rosters.Remove(id))
	return nil
}

// Adds a player to a roster.
//
// gamesPlayed is the total number of games that the player has
// played so far. A player who scored goals or received cards must
// have played at least one game.
func (l *League) AddPlayer(id, teamId, gamesPlayed, goals, cards int, goalkeeper bool) error {
	if id <= 0 || teamId <= 0 || gamesPlayed < 0 || goals < 0 || cards < 0 ||
		(gamesPlayed == 0 && (goals > 0 || cards > 0)) {
		return fmt.Errorf("player %d: %w", id, ErrInvalidArgument)
	}
	roster, err := l.roster(teamId)
	if err != nil {
		return err
	}
	if l.players.Contains(id) {
		return fmt.Errorf("player %d: %w", id, ErrAlreadyExists)
	}
	if l.maxPlayers > 0 && l.players.Len() >= l.maxPlayers {
		return fmt.Errorf("player %d exceeds %d players: %w", id, l.maxPlayers, ErrAllocationFailure)
	}

	player := &Player{
		id:          id,
		teamId:      teamId,
		roster:      roster,
		gamesOffset: gamesPlayed - roster.gamesPlayed,
		goals:       goals,
		cards:       cards,
		goalkeeper:  goalkeeper,
	}

	check(l.players.Insert(id, player))
	check(l.ranking.Insert(player.RankKey(), player))
	l.linkPlayer(player)

	roster.addPlayer(player)
	l.syncEligibility(roster)

	key := player.RankKey()
	if roster.topScorer == nil || key.Compare(roster.topScorer.RankKey()) > 0 {
		roster.topScorer = player
	}
	if l.topScorer == nil || key.Compare(l.topScorer.RankKey()) > 0 {
		l.topScorer = player
	}

	return nil
}

// Removes a player from the league and its roster
func (l *League) RemovePlayer(id int) error {
	if id <= 0 {
		return fmt.Errorf("player %d: %w", id, ErrInvalidArgument)
	}
	player, err := l.player(id)
	if err != nil {
		return err
	}
	roster := player.roster
	key := player.RankKey()

	if l.topScorer == player {
		l.topScorer = player.prev
	}
	if roster.topScorer == player {
		_, pred, _ := roster.byRank.Predecessor(key)
		roster.topScorer = pred
	}

	unlinkPlayer(player)
	check(l.players.Remove(id))
	check(l.ranking.Remove(key))

	roster.removePlayer(player)
	l.syncEligibility(roster)

	player.roster = nil
	return nil
}

// Adds the given games, goals and cards to the statistics of a player
func (l *League) UpdatePlayerStats(id, gamesPlayed, goals, cards int) error {
	if id <= 0 || gamesPlayed < 0 || goals < 0 || cards < 0 {
		return fmt.Errorf("player %d: %w", id, ErrInvalidArgument)
	}
	player, err := l.player(id)
	if err != nil {
		return err
	}
	roster := player.roster

	// The rank key changes so the player is reinserted
	// into both rankings
	oldKey := player.RankKey()
	oldPrev := player.prev
	check(l.ranking.Remove(oldKey))
	check(roster.byRank.Remove(oldKey))

	player.gamesOffset += gamesPlayed
	player.goals += goals
	player.cards += cards
	roster.goals += goals
	roster.cards += cards

	newKey := player.RankKey()
	check(l.ranking.Insert(newKey, player))
	check(roster.byRank.Insert(newKey, player))

	_, newPrev, _ := l.ranking.Predecessor(newKey)
	if newPrev != oldPrev {
		unlinkPlayer(player)
		l.linkPlayer(player)
	}

	roster.topScorer = refreshTopScorer(roster.topScorer, player, roster.byRank)
	l.topScorer = refreshTopScorer(l.topScorer, player, l.ranking)

	return nil
}

// Plays a match between two eligible rosters.
//
// The stronger roster wins, equal strength is a draw. Both rosters
// are credited with a played game which also counts for every
// player in their squads.
func (l *League) PlayMatch(homeId, awayId int) (football.Result, error) {
	if homeId <= 0 || awayId <= 0 || homeId == awayId {
		return football.Result{}, fmt.Errorf("match %d vs. %d: %w", homeId, awayId, ErrInvalidArgument)
	}
	home, err := l.roster(homeId)
	if err != nil {
		return football.Result{}, err
	}
	away, err := l.roster(awayId)
	if err != nil {
		return football.Result{}, err
	}
	for _, r := range []*Roster{home, away} {
		if !l.isEligible(r) {
			return football.Result{}, fmt.Errorf("roster %d: %w", r.id, ErrIneligible)
		}
	}

	result := football.Result{Home: home.Strength(), Away: away.Strength()}
	homePoints, awayPoints := l.rules.Award(result)
	home.points += homePoints
	away.points += awayPoints
	home.gamesPlayed += 1
	away.gamesPlayed += 1

	return result, nil
}

// Unites two rosters into a new roster with the id newId.
//
// newId may be one of the two united ids. The squads, points and
// statistics of both rosters are combined and the games that the
// players have played are preserved.
func (l *League) UniteRosters(id1, id2, newId int) error {
	if id1 <= 0 || id2 <= 0 || newId <= 0 || id1 == id2 {
		return fmt.Errorf("unite %d and %d into %d: %w", id1, id2, newId, ErrInvalidArgument)
	}
	if newId != id1 && newId != id2 && l.rosters.Contains(newId) {
		return fmt.Errorf("roster %d: %w", newId, ErrAlreadyExists)
	}
	r1, err := l.roster(id1)
	if err != nil {
		return err
	}
	r2, err := l.roster(id2)
	if err != nil {
		return err
	}

	byId, err := index.Merge(r1.byId, r2.byId)
	if err != nil {
		return fmt.Errorf("unite %d and %d: %w", id1, id2, err)
	}
	byRank, err := index.Merge(r1.byRank, r2.byRank)
	if err != nil {
		return fmt.Errorf("unite %d and %d: %w", id1, id2, err)
	}

	united := &Roster{
		id:          newId,
		points:      r1.points + r2.points,
		goalkeepers: r1.goalkeepers + r2.goalkeepers,
		cards:       r1.cards + r2.cards,
		goals:       r1.goals + r2.goals,
		topScorer:   unitedTopScorer(r1.topScorer, r2.topScorer),
		byId:        byId,
		byRank:      byRank,
	}

	for _, r := range []*Roster{r1, r2} {
		for _, p := range r.byId.All() {
			// The united roster starts without games so the
			// old roster's games move into the offset
			p.gamesOffset += r.gamesPlayed
			p.roster = united
			p.teamId = newId
		}

		if l.eligible.Contains(r.id) {
			l.unlinkEligible(r)
		}
		check(l.rosters.Remove(r.id))
	}

	check(l.rosters.Insert(newId, united))
	l.syncEligibility(united)

	l.logger.Debug("rosters united",
		"roster1", id1, "roster2", id2, "united", newId, "squad", united.Size())

	return nil
}

// Returns the total number of games a player has played
func (l *League) GamesPlayed(playerId int) (int, error) {
	if playerId <= 0 {
		return 0, fmt.Errorf("player %d: %w", playerId, ErrInvalidArgument)
	}
	player, err := l.player(playerId)
	if err != nil {
		return 0, err
	}
	return player.GamesPlayed(), nil
}

func (l *League) Points(teamId int) (int, error) {
	if teamId <= 0 {
		return 0, fmt.Errorf("roster %d: %w", teamId, ErrInvalidArgument)
	}
	roster, err := l.roster(teamId)
	if err != nil {
		return 0, err
	}
	return roster.points, nil
}

// Returns the id of the best player of a roster or of the
// whole league when teamId is negative
func (l *League) TopScorer(teamId int) (int, error) {
	if teamId == 0 {
		return 0, fmt.Errorf("roster %d: %w", teamId, ErrInvalidArgument)
	}

	topScorer := l.topScorer
	if teamId > 0 {
		roster, err := l.roster(teamId)
		if err != nil {
			return 0, err
		}
		topScorer = roster.topScorer
	}

	if topScorer == nil {
		return 0, fmt.Errorf("top scorer: %w", ErrNotFound)
	}
	return topScorer.id, nil
}

// Returns the number of players of a roster or of the
// whole league when teamId is negative
func (l *League) PlayerCount(teamId int) (int, error) {
	if teamId == 0 {
		return 0, fmt.Errorf("roster %d: %w", teamId, ErrInvalidArgument)
	}
	if teamId < 0 {
		return l.players.Len(), nil
	}
	roster, err := l.roster(teamId)
	if err != nil {
		return 0, err
	}
	return roster.Size(), nil
}

// Writes the ids of all players of a roster, or of the league when
// teamId is negative, into output in ascending [RankKey] order.
//
// output has to be exactly as long as the number of players.
func (l *League) AllPlayers(teamId int, output []int) error {
	if teamId == 0 {
		return fmt.Errorf("roster %d: %w", teamId, ErrInvalidArgument)
	}

	ranking := l.ranking
	if teamId > 0 {
		roster, err := l.roster(teamId)
		if err != nil {
			return err
		}
		ranking = roster.byRank
	}

	if len(output) != ranking.Len() {
		return fmt.Errorf("output holds %d of %d players: %w", len(output), ranking.Len(), ErrInvalidArgument)
	}

	i := 0
	for _, p := range ranking.All() {
		output[i] = p.id
		i += 1
	}
	return nil
}

// Returns the ids of all players of a roster, or of the league when
// teamId is negative, in ascending [RankKey] order
func (l *League) RankedPlayers(teamId int) ([]int, error) {
	count, err := l.PlayerCount(teamId)
	if err != nil {
		return nil, err
	}
	output := make([]int, count)
	if err := l.AllPlayers(teamId, output); err != nil {
		return nil, err
	}
	return output, nil
}

// Returns the id of the league player whose statistics are closest
// to those of the given player. Only the direct neighbors in the
// league ranking are candidates, see [RankKey.Closest].
func (l *League) ClosestPlayer(playerId, teamId int) (int, error) {
	if playerId <= 0 || teamId <= 0 {
		return 0, fmt.Errorf("player %d of roster %d: %w", playerId, teamId, ErrInvalidArgument)
	}
	roster, err := l.roster(teamId)
	if err != nil {
		return 0, err
	}
	player, ok := roster.byId.Get(playerId)
	if !ok {
		return 0, fmt.Errorf("player %d in roster %d: %w", playerId, teamId, ErrNotFound)
	}

	var prev, next *RankKey
	if player.prev != nil {
		k := player.prev.RankKey()
		prev = &k
	}
	if player.next != nil {
		k := player.next.RankKey()
		next = &k
	}

	closest, ok := player.RankKey().Closest(prev, next)
	if !ok {
		return 0, fmt.Errorf("player %d is alone: %w", playerId, ErrNotFound)
	}
	return closest.ID, nil
}

func (l *League) player(id int) (*Player, error) {
	player, ok := l.players.Get(id)
	if !ok {
		return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	return player, nil
}

func (l *League) roster(id int) (*Roster, error) {
	roster, ok := l.rosters.Get(id)
	if !ok {
		return nil, fmt.Errorf("roster %d: %w", id, ErrNotFound)
	}
	return roster, nil
}

func (l *League) isEligible(r *Roster) bool {
	return l.rules.Eligible(r.Size(), r.goalkeepers)
}

// Returns the top scorer after the statistics of the updated
// player changed
func refreshTopScorer(topScorer, updated *Player, ranking *index.Index[RankKey, *Player]) *Player {
	if topScorer == updated {
		// Cards can push the top scorer down the ranking
		_, best, _ := ranking.Max()
		return best
	}
	if topScorer == nil || updated.RankKey().Compare(topScorer.RankKey()) > 0 {
		return updated
	}
	return topScorer
}

// Returns the top scorer of two united rosters. Only the goals are
// compared and the second roster's top scorer wins a tie.
func unitedTopScorer(p1, p2 *Player) *Player {
	switch {
	case p1 == nil:
		return p2
	case p2 == nil:
		return p1
	case p1.goals > p2.goals:
		return p1
	default:
		return p2
	}
}

// Panics when an index operation fails after the arguments of a
// league operation were validated. This means the indexes are out
// of sync with each other.
func check(err error) {
	if err != nil {
		panic(fmt.Sprintf("league indexes out of sync: %v", err))
	}
}
