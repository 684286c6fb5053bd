// Package experiments runs batches of self-play games, the workload used to
// compare evaluators and to produce training statistics.
package experiments

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"tetris/game"
	"tetris/searcher"
)

// GameRecord is the outcome of one self-play game.
type GameRecord struct {
	Game       int32 `parquet:"game"`
	Seed       int64 `parquet:"seed"`
	Score      int64 `parquet:"score"`
	Lines      int32 `parquet:"lines"`
	Moves      int32 `parquet:"moves"`
	DurationMs int64 `parquet:"duration_ms"`
}

type Config struct {
	Games      int
	Seed       uint64
	Goroutines int
	Evaluate   game.Evaluate
	Logger     zerolog.Logger
}

// Run plays cfg.Games independent games to completion. Game i uses seed
// cfg.Seed+i for both the board and the searcher, so a run is reproducible
// end to end.
func Run(cfg Config) []GameRecord {
	records := make([]GameRecord, 0, cfg.Games)

	for i := 0; i < cfg.Games; i++ {
		seed := cfg.Seed + uint64(i)
		rng := rand.New(rand.NewSource(seed))
		s := searcher.New(
			searcher.WithSeed(seed),
			searcher.WithGoroutines(cfg.Goroutines),
		)

		pos := game.NewPosition(rng)
		moves := 0
		start := time.Now()
		for {
			mv, ok := s.FindBestMove(cfg.Evaluate, pos)
			if !ok {
				break
			}
			next, ok := pos.Apply(mv, rng)
			if !ok {
				panic("experiments: surviving move ended the game on apply")
			}
			pos = next
			moves++
		}
		elapsed := time.Since(start)

		cfg.Logger.Info().
			Int("game", i+1).
			Uint64("seed", seed).
			Int64("score", pos.Score).
			Int("lines", pos.Lines).
			Int("moves", moves).
			Dur("elapsed", elapsed).
			Msg("game finished")

		records = append(records, GameRecord{
			Game:       int32(i + 1),
			Seed:       int64(seed),
			Score:      pos.Score,
			Lines:      int32(pos.Lines),
			Moves:      int32(moves),
			DurationMs: elapsed.Milliseconds(),
		})
	}

	return records
}
