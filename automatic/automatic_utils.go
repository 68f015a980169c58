package automatic

// Data collection for automatic games: computer vs computer, many at once.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/othello/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

const logHeader = "mover,gameID,ply,play,score,exact,depth,nodes,ms,empties\n"

var (
	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
	ErrNoThreads      = errors.New("need at least one thread")
)

// Tally counts finished games by result.
type Tally struct {
	BlackWins int
	WhiteWins int
	Draws     int
	// DiscDiffs holds each game's final disc difference for Black.
	DiscDiffs []int
}

func (t *Tally) add(diff int) {
	switch {
	case diff > 0:
		t.BlackWins++
	case diff < 0:
		t.WhiteWins++
	default:
		t.Draws++
	}
	t.DiscDiffs = append(t.DiscDiffs, diff)
}

type Job struct{}

// StartCompVCompGames plays numGames games across threads runners and writes
// one CSV line per turn to outputFilename. It returns once every queued game
// has finished or ctx is cancelled.
func StartCompVCompGames(ctx context.Context, cfg *config.Config, numGames, threads,
	randomOpener int, outputFilename string) (Tally, error) {

	if threads < 1 {
		return Tally{}, fmt.Errorf("%w: got %d", ErrNoThreads, threads)
	}
	// Not atomic with the workers starting; concurrent callers may both pass.
	if IsPlaying.Value() > 0 {
		return Tally{}, ErrAlreadyPlaying
	}

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return Tally{}, err
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	CVCCounter.Set(0)
	jobs := make(chan Job, 100)
	logChan := make(chan string, 100)
	var tally Tally
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i := 1; i <= threads; i++ {
		g.Go(func() error {
			r := NewGameRunner(logChan, cfg)
			r.SetRandomOpener(randomOpener)
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for range jobs {
				diff, err := r.PlayGame(gctx)
				if err != nil {
					return err
				}
				mu.Lock()
				tally.add(diff)
				mu.Unlock()
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := 1; i < numGames+1; i++ {
			select {
			case jobs <- Job{}:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
			if i%1000 == 0 {
				log.Info().Msgf("Queued %v jobs", i)
			}
		}
		log.Info().Msg("Finished queueing all jobs.")
		return nil
	})

	var logWg sync.WaitGroup
	var logErr error
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		_, werr := logfile.WriteString(logHeader)
		if werr != nil {
			log.Error().Err(werr).Str("file", outputFilename).Msg("writing turn log")
		}
		for msg := range logChan {
			if werr != nil {
				continue
			}
			if _, werr = logfile.WriteString(msg); werr != nil {
				log.Error().Err(werr).Str("file", outputFilename).Msg("writing turn log")
			}
		}
		if werr != nil {
			logErr = werr
		}
		log.Info().Msg("Exiting turn logger goroutine!")
	}()

	err = g.Wait()
	close(logChan)
	logWg.Wait()
	if cerr := logfile.Close(); err == nil {
		err = cerr
	}
	if err == nil && logErr != nil {
		err = fmt.Errorf("writing turn log: %w", logErr)
	}
	log.Info().Int("games", int(CVCCounter.Value())).Msg("All games finished.")
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return tally, err
}
