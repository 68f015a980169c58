package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/movegen"
)

func main() {
	cfg := &config.Config{}
	err := cfg.Load(os.Args[1:], func(fs *pflag.FlagSet) {
		fs.Int("depth", 8, "count leaf nodes to this depth")
		fs.Bool("unique", false, "also count distinct leaf positions")
		fs.String("moves", "", "move history to play from the starting position")
		fs.String("position", "", "position in compact form")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
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

	unique := cfg.GetBool("unique")
	for depth := 1; depth <= cfg.GetInt("depth"); depth++ {
		start := time.Now()
		var nodes uint64
		var distinct int
		if unique {
			nodes, distinct = movegen.PerftUnique(&pos, depth)
		} else {
			nodes = movegen.Perft(&pos, depth)
		}
		elapsed := time.Since(start)
		ev := log.Info().Int("depth", depth).Uint64("nodes", nodes).
			Dur("elapsed", elapsed).
			Float64("nps", float64(nodes)/max(elapsed.Seconds(), 1e-9))
		if unique {
			ev = ev.Int("unique", distinct)
		}
		ev.Msg("perft")
	}
}
