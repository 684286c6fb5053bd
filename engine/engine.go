// Package engine owns the authoritative game position and drives decisions
// against the loaded evaluator. It is the surface the driver layer talks to,
// whether the engine is advising an external game or playing on its own.
package engine

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"tetris/game"
	"tetris/searcher"
)

// ErrNotReady reports a decision query made before an evaluator was loaded.
var ErrNotReady = errors.New("no evaluator loaded")

// ErrGameOver reports that no candidate placement survives: the board is
// lost. It is an expected outcome, not a failure of the engine.
var ErrGameOver = errors.New("no surviving move")

type Option func(*Engine)

type Engine struct {
	pos      *game.Position
	evaluate game.Evaluate
	searcher *searcher.Searcher
	rng      *rand.Rand
	logger   zerolog.Logger
}

func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func WithSearcher(s *searcher.Searcher) Option {
	return func(e *Engine) {
		if s != nil {
			e.searcher = s
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func New(options ...Option) *Engine {
	e := &Engine{ // Default values
		searcher: searcher.New(),
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		logger:   zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}
	e.pos = game.NewPosition(e.rng)
	return e
}

// LoadEvaluator installs the evaluator used by all subsequent decisions.
func (e *Engine) LoadEvaluator(evaluate game.Evaluate) {
	e.evaluate = evaluate
}

// Ready reports whether an evaluator is loaded.
func (e *Engine) Ready() bool {
	return e.evaluate != nil
}

// Position returns the current authoritative position.
func (e *Engine) Position() *game.Position {
	return e.pos
}

// Inject replaces the position wholesale, resynchronizing the engine with an
// externally-run game.
func (e *Engine) Inject(pos *game.Position) {
	e.pos = pos
}

// Reset discards the position and starts a fresh game.
func (e *Engine) Reset() {
	e.pos = game.NewPosition(e.rng)
}

// Step makes one decision: it searches for the best move, applies it with
// queue regeneration, and returns it. ErrGameOver means the board is lost
// and the position is left untouched.
func (e *Engine) Step() (game.Move, error) {
	if !e.Ready() {
		return game.Move{}, ErrNotReady
	}

	mv, ok := e.searcher.FindBestMove(e.evaluate, e.pos)
	if !ok {
		return game.Move{}, ErrGameOver
	}

	// The chosen move survived during search, and survival does not depend
	// on the regenerated queue tail, so this apply cannot end the game.
	pos, ok := e.pos.Apply(mv, e.rng)
	if !ok {
		panic("engine: surviving move ended the game on apply")
	}
	e.pos = pos

	e.logger.Debug().
		Int("col", mv.Col).
		Int("rotation", mv.Rotation).
		Bool("swap", mv.Swap).
		Int64("score", pos.Score).
		Int("lines", pos.Lines).
		Msg("applied move")
	return mv, nil
}

// PlayGame plays the current position to completion, returns the final
// surviving position, and resets the engine for a new game.
func (e *Engine) PlayGame() (*game.Position, error) {
	if !e.Ready() {
		return nil, ErrNotReady
	}

	final := e.searcher.PlayGame(e.evaluate, e.pos)
	e.logger.Info().
		Int64("score", final.Score).
		Int("lines", final.Lines).
		Msg("game over")
	e.Reset()
	return final, nil
}
