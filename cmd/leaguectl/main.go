// leaguectl replays command scripts against a league and reports
// the status of every command.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ezBadminton/leagueindex/core"
	"github.com/ezBadminton/leagueindex/football"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Flags may be preset in a .env file next to the scripts
	_ = godotenv.Load()

	app := cli.App{
		Name:  "leaguectl",
		Usage: "replay league command scripts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity (error, warn, info, debug)",
				Value:   "warn",
				EnvVars: []string{"LEAGUECTL_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "knockout",
				Usage:   "knockout format (ladder, rounds)",
				Value:   "ladder",
				EnvVars: []string{"LEAGUECTL_KNOCKOUT"},
			},
			&cli.IntFlag{
				Name:    "max-players",
				Usage:   "player capacity of the league, 0 is unlimited",
				EnvVars: []string{"LEAGUECTL_MAX_PLAYERS"},
			},
			&cli.IntFlag{
				Name:    "max-teams",
				Usage:   "team capacity of the league, 0 is unlimited",
				EnvVars: []string{"LEAGUECTL_MAX_TEAMS"},
			},
			&cli.IntFlag{
				Name:    "min-squad",
				Usage:   "players a team needs to play",
				Value:   football.DefaultRules().MinSquad,
				EnvVars: []string{"LEAGUECTL_MIN_SQUAD"},
			},
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:      "run",
			Usage:     "replay a script and print the command statuses",
			ArgsUsage: "<script>",
			Action:    runReplay,
		},
		{
			Name:      "dump",
			Usage:     "replay a script silently and print the player ranking tree",
			ArgsUsage: "<script>",
			Action:    runDump,
		},
	}
	app.RunAndExitOnError()
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func configLeague(cctx *cli.Context) (*core.League, error) {
	var format core.KnockoutFormat
	switch cctx.String("knockout") {
	case "ladder":
		format = core.KnockoutLadder
	case "rounds":
		format = core.KnockoutRounds
	default:
		return nil, fmt.Errorf("unknown knockout format %q", cctx.String("knockout"))
	}

	rules := football.DefaultRules()
	rules.MinSquad = cctx.Int("min-squad")

	return core.NewLeague(core.Config{
		Rules:      rules,
		Knockout:   format,
		MaxPlayers: cctx.Int("max-players"),
		MaxRosters: cctx.Int("max-teams"),
		Logger:     configLogger(cctx, os.Stderr),
	})
}

func replayFile(cctx *cli.Context, out io.Writer) (*core.League, error) {
	path := cctx.Args().First()
	if path == "" {
		return nil, fmt.Errorf("need to provide a script as an argument")
	}

	league, err := configLeague(cctx)
	if err != nil {
		return nil, err
	}

	script, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer script.Close()

	if err := Replay(league, script, out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return league, nil
}

func runReplay(cctx *cli.Context) error {
	league, err := replayFile(cctx, os.Stdout)
	if err != nil {
		return err
	}
	players, _ := league.PlayerCount(-1)
	slog.Debug("script replayed", "players", players)
	return nil
}

func runDump(cctx *cli.Context) error {
	league, err := replayFile(cctx, io.Discard)
	if err != nil {
		return err
	}
	if err := league.Validate(); err != nil {
		return err
	}
	fmt.Print(league.RankingTree().String())
	return nil
}
