package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShapeRotations(t *testing.T) {
	t.Run("rotating four times returns the canonical shape", func(t *testing.T) {
		for piece := 1; piece <= NumPieces; piece++ {
			canonical := Shape(piece, 0)
			rotated := canonical
			for r := 0; r < 4; r++ {
				rotated = rotateMatrix(rotated)
			}
			require.Equal(t, canonical, rotated, "piece %d should be unchanged by a full turn", piece)
		}
	})

	t.Run("rotation swaps the bounding box dimensions", func(t *testing.T) {
		for piece := 1; piece <= NumPieces; piece++ {
			flat := Shape(piece, 0)
			upright := Shape(piece, 1)
			require.Equal(t, len(flat), len(upright[0]), "piece %d rows should become columns", piece)
			require.Equal(t, len(flat[0]), len(upright), "piece %d columns should become rows", piece)
		}
	})

	t.Run("rotation index wraps modulo 4", func(t *testing.T) {
		require.Equal(t, Shape(7, 1), Shape(7, 5))
	})

	t.Run("cell codes match the piece id", func(t *testing.T) {
		for piece := 1; piece <= NumPieces; piece++ {
			for rotation := 0; rotation < 4; rotation++ {
				cells := 0
				for _, row := range Shape(piece, rotation) {
					for _, cell := range row {
						if cell != 0 {
							require.Equal(t, uint8(piece), cell)
							cells++
						}
					}
				}
				require.Equal(t, 4, cells, "piece %d rotation %d should cover four cells", piece, rotation)
			}
		}
	})
}

func TestRotateMatrix(t *testing.T) {
	in := [][]uint8{
		{1, 2, 3},
		{4, 5, 6},
	}
	want := [][]uint8{
		{4, 1},
		{5, 2},
		{6, 3},
	}
	require.Equal(t, want, rotateMatrix(in))
}
