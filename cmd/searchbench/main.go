// searchbench runs fixed-depth searches over random midgame positions and
// reports how many nodes and how much time they took.
package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"lukechampine.com/frand"

	"github.com/domino14/othello/config"
	"github.com/domino14/othello/movegen"
	"github.com/domino14/othello/search"
)

type benchResult struct {
	res     search.Result
	elapsed time.Duration
}

func main() {
	cfg := &config.Config{}
	err := cfg.Load(os.Args[1:], func(fs *pflag.FlagSet) {
		fs.Int("count", 20, "number of positions to search")
		fs.Int("empties", 36, "empty squares left in each position")
		fs.Uint64("seed", 1, "seed for the random playouts that build the positions")
		fs.Bool("no-tt", false, "turn off the transposition table")
		fs.Bool("no-killers", false, "turn off killer moves")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:], cfg.GetUint64("seed"))
	rng := frand.NewCustom(seed[:], 1024, 12)

	depth := cfg.GetInt(config.ConfigSearchDepth)
	solver := search.NewSolver(cfg)
	solver.SetTranspositionTableOptim(!cfg.GetBool("no-tt"))
	solver.SetKillerPlayOptim(!cfg.GetBool("no-killers"))

	var results []benchResult
	for len(results) < cfg.GetInt("count") {
		pos := movegen.RandomPosition(rng, cfg.GetInt("empties"))
		if !movegen.HasAnyLegalMove(&pos, pos.ToMove) {
			continue
		}
		start := time.Now()
		res, err := solver.Search(context.Background(), &pos, depth)
		if err != nil {
			log.Fatal().Err(err).Str("position", pos.String()).Msg("search failed")
		}
		results = append(results, benchResult{res: res, elapsed: time.Since(start)})
		fmt.Printf("%3d  %s  %-4s %8d  %10d nodes  %v\n", len(results), pos.String(),
			res.Move, res.Score, res.Nodes, time.Since(start).Round(time.Microsecond))
	}

	nodes := lo.Map(results, func(r benchResult, _ int) float64 { return float64(r.res.Nodes) })
	secs := lo.Map(results, func(r benchResult, _ int) float64 { return r.elapsed.Seconds() })
	totalNodes := lo.SumBy(results, func(r benchResult) uint64 { return r.res.Nodes })

	mean, std := stat.MeanStdDev(nodes, nil)
	// 95% confidence interval for the mean node count.
	z := distuv.UnitNormal.Quantile(0.975)
	margin := z * std / math.Sqrt(float64(len(nodes)))
	sorted := append([]float64(nil), nodes...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	fmt.Printf("\ndepth %d, %d positions, %d empties\n", depth, len(results), cfg.GetInt("empties"))
	fmt.Printf("nodes: mean %.0f ± %.0f, median %.0f, stdev %.0f, total %d\n", mean, margin, median, std, totalNodes)
	totalSecs := lo.Sum(secs)
	fmt.Printf("time: mean %.3fs, total %.3fs, %.0f nodes/s\n",
		stat.Mean(secs, nil), totalSecs, float64(totalNodes)/totalSecs)
	fmt.Println("\nnodes per search:")
	h := histogram.Hist(15, nodes)
	if err := histogram.Fprint(os.Stdout, h, histogram.Linear(40)); err != nil {
		log.Error().Err(err).Msg("printing histogram")
	}
}
