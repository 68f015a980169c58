package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/domino14/othello/config"
)

// MaxSearchDepth is the deepest iteration ever attempted. A game never has
// more than 60 moves left to play.
const MaxSearchDepth = 60

var ErrInvalidBudget = errors.New("invalid search budget")

// Budget limits a search by depth, by wall-clock time, or both. A MaxDepth of
// 0 means no depth limit; a TimeLimit of 0 means no time limit.
type Budget struct {
	MaxDepth  int
	TimeLimit time.Duration
}

func (b Budget) Validate() error {
	if b.MaxDepth < 0 || b.TimeLimit < 0 {
		return fmt.Errorf("%w: depth %d, time limit %v", ErrInvalidBudget, b.MaxDepth, b.TimeLimit)
	}
	if b.MaxDepth < 1 && b.TimeLimit == 0 {
		return fmt.Errorf("%w: need a depth of at least 1 or a time limit", ErrInvalidBudget)
	}
	return nil
}

func (b Budget) depthLimit() int {
	if b.MaxDepth < 1 || b.MaxDepth > MaxSearchDepth {
		return MaxSearchDepth
	}
	return b.MaxDepth
}

func BudgetFromConfig(cfg *config.Config) Budget {
	return Budget{
		MaxDepth:  cfg.GetInt(config.ConfigSearchDepth),
		TimeLimit: cfg.GetDuration(config.ConfigTimeLimit),
	}
}
