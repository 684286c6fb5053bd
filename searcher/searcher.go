package searcher

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"tetris/experiments/metrics"
	"tetris/game"
)

type Option func(*Searcher)

// Searcher picks placements by simulating every legal move and scoring the
// resulting boards with an evaluator. One search is a bounded, CPU-only
// computation: at most 4 rotations x 11 columns x 2 piece choices.
type Searcher struct {
	goroutines int
	rng        *rand.Rand
	metrics    metrics.Collector
}

// WithGoroutines fans the per-candidate evaluator calls out over n
// goroutines. Candidate simulation itself stays sequential so the random
// source is consumed in a reproducible order; results are identical for any
// goroutine count.
func WithGoroutines(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.goroutines = n
		}
	}
}

// WithSeed makes queue regeneration during candidate simulation
// reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics(c metrics.Collector) Option {
	return func(s *Searcher) {
		if c != nil {
			s.metrics = c
		}
	}
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		goroutines: 1,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

type candidate struct {
	move  game.Move
	child *game.Position
}

// FindBestMove returns the legal move whose resulting board the evaluator
// likes best. ok is false when every candidate ends the game: the board is
// already doomed and the caller decides how to report the loss.
func (s *Searcher) FindBestMove(evaluate game.Evaluate, pos *game.Position) (game.Move, bool) {
	mv, _, ok := s.findBest(evaluate, pos)
	return mv, ok
}

// PlayGame plays from pos to completion and returns the last surviving
// Position, whose score is the game result.
func (s *Searcher) PlayGame(evaluate game.Evaluate, pos *game.Position) *game.Position {
	for {
		_, child, ok := s.findBest(evaluate, pos)
		if !ok {
			return pos
		}
		pos = child
	}
}

func (s *Searcher) findBest(evaluate game.Evaluate, pos *game.Position) (game.Move, *game.Position, bool) {
	s.metrics.Start()
	defer s.metrics.Complete()

	moves := pos.LegalMoves()
	s.metrics.AddCandidates(len(moves))

	survivors := make([]candidate, 0, len(moves))
	for _, mv := range moves {
		child, ok := pos.Apply(mv, s.rng)
		if !ok {
			s.metrics.AddDiscarded()
			continue
		}
		survivors = append(survivors, candidate{move: mv, child: child})
	}
	if len(survivors) == 0 {
		return game.Move{}, nil, false
	}

	scores := make([]float64, len(survivors))
	if s.goroutines <= 1 {
		for i := range survivors {
			scores[i] = evaluate(survivors[i].child.Features())
			s.metrics.AddEvaluation()
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for g := 0; g < s.goroutines; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					scores[i] = evaluate(survivors[i].child.Features())
					s.metrics.AddEvaluation()
				}
			}()
		}
		for i := range survivors {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	// Stable arg-max: ties keep the earliest candidate in generation order.
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return survivors[best].move, survivors[best].child, true
}
