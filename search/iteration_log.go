package search

import (
	"io"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// IterationLog records one completed iterative-deepening iteration. Entries
// are written as YAML list items, so the whole stream parses as one list.
type IterationLog struct {
	Depth     int      `json:"depth" yaml:"depth"`
	Score     int32    `json:"score" yaml:"score"`
	Move      string   `json:"move" yaml:"move"`
	PV        []string `json:"pv" yaml:"pv,flow"`
	Nodes     uint64   `json:"nodes" yaml:"nodes"`
	ElapsedMs int64    `json:"elapsed_ms" yaml:"elapsed_ms"`
	Exact     bool     `json:"exact,omitempty" yaml:"exact,omitempty"`
}

func (s *Solver) SetLogStream(l io.Writer) {
	s.logStream = l
}

func (s *Solver) writeIterationLog(logIter IterationLog) {
	if s.logStream == nil {
		return
	}
	out, err := yaml.Marshal([]IterationLog{logIter})
	if err != nil {
		log.Error().Err(err).Msg("marshalling log")
		return
	}
	if _, err := s.logStream.Write(out); err != nil {
		log.Error().Err(err).Msg("writing log")
	}
}
