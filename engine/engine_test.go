package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tetris/game"
	"tetris/searcher"
)

// greedyTall rewards stacking, which loses games in short order.
func greedyTall(f game.Features) float64 { return f.AggregateHeight }

func TestStep(t *testing.T) {
	t.Run("requires a loaded evaluator", func(t *testing.T) {
		e := New(WithSeed(1))

		_, err := e.Step()
		require.ErrorIs(t, err, ErrNotReady)
	})

	t.Run("advances the position", func(t *testing.T) {
		e := New(WithSeed(1), WithSearcher(searcher.New(searcher.WithSeed(1))))
		e.LoadEvaluator(game.EvaluateClassic)
		before := e.Position()

		mv, err := e.Step()
		require.NoError(t, err)

		after := e.Position()
		require.NotSame(t, before, after)
		require.Len(t, after.NextPieces, game.QueueLength)

		// The applied move matches the returned one.
		expected, ok := before.Apply(mv, nil)
		require.True(t, ok)
		require.Equal(t, expected.Board, after.Board)
		require.Equal(t, expected.Score, after.Score)
	})

	t.Run("reports game over on a lost board", func(t *testing.T) {
		e := New(WithSeed(1))
		e.LoadEvaluator(game.EvaluateClassic)
		e.Inject(doomedPosition(t))
		before := e.Position()

		_, err := e.Step()
		require.ErrorIs(t, err, ErrGameOver)
		require.Same(t, before, e.Position(), "a lost board must be left untouched")
	})
}

func TestInject(t *testing.T) {
	e := New(WithSeed(1))
	pos := doomedPosition(t)

	e.Inject(pos)
	require.Same(t, pos, e.Position())
}

func TestReset(t *testing.T) {
	e := New(WithSeed(1))
	e.Inject(doomedPosition(t))

	e.Reset()

	pos := e.Position()
	require.Zero(t, pos.Score)
	require.Zero(t, pos.Lines)
	for _, row := range pos.Board {
		for _, cell := range row {
			require.Zero(t, cell)
		}
	}
}

func TestPlayGame(t *testing.T) {
	t.Run("requires a loaded evaluator", func(t *testing.T) {
		e := New(WithSeed(1))

		_, err := e.PlayGame()
		require.ErrorIs(t, err, ErrNotReady)
	})

	t.Run("returns the final position and resets", func(t *testing.T) {
		e := New(WithSeed(7), WithSearcher(searcher.New(searcher.WithSeed(7))))
		e.LoadEvaluator(greedyTall)

		final, err := e.PlayGame()
		require.NoError(t, err)
		require.NotNil(t, final)

		// A fresh game is waiting afterwards.
		pos := e.Position()
		require.NotSame(t, final, pos)
		require.Zero(t, pos.Score)
		require.Len(t, pos.NextPieces, game.QueueLength)
	})
}

func doomedPosition(t *testing.T) *game.Position {
	t.Helper()
	board := make([][]uint8, game.BoardHeight)
	for y := range board {
		board[y] = make([]uint8, game.BoardWidth)
		if y >= 2 {
			for x := 1; x < game.BoardWidth; x++ {
				board[y][x] = 1
			}
		}
	}
	pos, err := game.PositionFromSnapshot(board, 6, []int{5, 5, 5, 5}, 0, 0)
	require.NoError(t, err)
	return pos
}
