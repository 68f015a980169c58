package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/pflag"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/movegen"
	"github.com/domino14/othello/search"
)

func main() {
	cfg := &config.Config{}
	err := cfg.Load(os.Args[1:], func(fs *pflag.FlagSet) {
		fs.String("moves", "", "move history to play from the starting position, e.g. f5d6c3")
		fs.String("position", "", "position in compact form: 64 squares a1..h8, side to move, ply")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	log.Logger = logger
	log.Debug().Interface("settings", cfg.SanitizedSettings()).Msg("loaded-config")

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	pos := board.NewStartingPosition()
	if p := cfg.GetString("position"); p != "" {
		pos, err = board.ParsePosition(p)
		if err != nil {
			log.Fatal().Err(err).Msg("bad position")
		}
	}
	if history := cfg.GetString("moves"); history != "" {
		if _, err := movegen.PlayMoveList(&pos, history); err != nil {
			log.Fatal().Err(err).Msg("bad move history")
		}
	}
	fmt.Println(pos.ToDisplayText(movegen.MoveBits(&pos, pos.ToMove)))

	solver := search.NewSolver(cfg)
	if path := cfg.GetString(config.ConfigLogIterations); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create iteration log")
		}
		defer f.Close()
		solver.SetLogStream(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	budget := search.BudgetFromConfig(cfg)
	res, err := solver.ChooseMove(ctx, &pos, budget)
	if errors.Is(err, search.ErrGameOver) {
		fmt.Printf("Game over. Final disc difference for %s: %d\n",
			board.Black, movegen.FinalDiscDiff(&pos, board.Black))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("search failed")
		return
	}

	pv := strings.Join(lo.Map(res.PV, func(sq board.Square, _ int) string {
		return sq.String()
	}), " ")
	fmt.Printf("%s plays %s\n", pos.ToMove, res.Move)
	if res.Exact {
		fmt.Printf("Exact result: %+d discs\n", res.DiscDiff)
	} else {
		fmt.Printf("Score: %d (depth %d)\n", res.Score, res.Depth)
	}
	fmt.Printf("PV: %s\n", pv)
	fmt.Printf("%d nodes in %v\n", res.Nodes, res.Elapsed.Round(time.Millisecond))
}
