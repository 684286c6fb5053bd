package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"tetris/game"
)

// greedyTall rewards stacking, which keeps test games short.
func greedyTall(f game.Features) float64 { return f.AggregateHeight }

func TestRun(t *testing.T) {
	cfg := Config{
		Games:    2,
		Seed:     42,
		Evaluate: greedyTall,
		Logger:   zerolog.Nop(),
	}

	records := Run(cfg)

	require.Len(t, records, 2)
	for i, rec := range records {
		require.Equal(t, int32(i+1), rec.Game)
		require.Equal(t, int64(42+i), rec.Seed)
		require.Positive(t, rec.Moves)
		require.GreaterOrEqual(t, rec.Score, int64(0))
	}

	t.Run("same seed reproduces outcomes", func(t *testing.T) {
		again := Run(cfg)
		require.Len(t, again, 2)
		for i := range records {
			require.Equal(t, records[i].Score, again[i].Score)
			require.Equal(t, records[i].Lines, again[i].Lines)
			require.Equal(t, records[i].Moves, again[i].Moves)
		}
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		other := cfg
		other.Seed = 43
		shifted := Run(other)
		// Game 2 of the first run and game 1 of the shifted run share a seed.
		require.Equal(t, records[1].Score, shifted[0].Score)
		require.Equal(t, records[1].Moves, shifted[0].Moves)
	})
}

func TestWriter(t *testing.T) {
	t.Run("requires an output directory", func(t *testing.T) {
		_, err := NewWriter("")
		require.Error(t, err)
	})

	t.Run("round-trips records through parquet", func(t *testing.T) {
		dir := t.TempDir()
		w, err := NewWriter(dir)
		require.NoError(t, err)

		records := []GameRecord{
			{Game: 1, Seed: 42, Score: 1200, Lines: 9, Moves: 57, DurationMs: 12},
			{Game: 2, Seed: 43, Score: 340, Lines: 5, Moves: 41, DurationMs: 8},
		}

		path, err := w.WriteGameRecords(records)
		require.NoError(t, err)
		require.Equal(t, dir, filepath.Dir(path))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		stat, err := f.Stat()
		require.NoError(t, err)

		pf, err := parquet.OpenFile(f, stat.Size())
		require.NoError(t, err)

		meta, ok := pf.Lookup("schema")
		require.True(t, ok)
		require.Equal(t, "game_record_v1", meta)

		reader := parquet.NewGenericReader[GameRecord](pf)
		defer reader.Close()
		rows := make([]GameRecord, len(records))
		n, err := reader.Read(rows)
		require.Equal(t, len(records), n)
		require.Equal(t, records, rows[:n])
	})
}
