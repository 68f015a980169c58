// selfplay plays the engine against itself and writes a CSV record of every
// turn.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/othello/automatic"
	"github.com/domino14/othello/config"
)

func main() {
	cfg := &config.Config{}
	err := cfg.Load(os.Args[1:], func(fs *pflag.FlagSet) {
		fs.Int("games", 10, "number of games to play")
		fs.Int("threads", runtime.NumCPU(), "games to play at once")
		fs.Int("random-opener", 4, "plies of random moves at the start of each game")
		fs.String("out", "selfplay.csv", "turn log")
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
	log.Debug().Interface("settings", cfg.SanitizedSettings()).Msg("loaded-config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tally, err := automatic.StartCompVCompGames(ctx, cfg, cfg.GetInt("games"),
		max(1, cfg.GetInt("threads")), cfg.GetInt("random-opener"), cfg.GetString("out"))
	if err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}
	if len(tally.DiscDiffs) == 0 {
		return
	}
	diffs := lo.Map(tally.DiscDiffs, func(d int, _ int) float64 { return float64(d) })
	mean, std := stat.MeanStdDev(diffs, nil)
	fmt.Printf("%d games: black %d, white %d, draws %d\n", len(diffs),
		tally.BlackWins, tally.WhiteWins, tally.Draws)
	fmt.Printf("black disc difference: mean %+.2f, stdev %.2f\n", mean, std)
}
