package experiments

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Writer persists game records as zstd-compressed parquet files. Files are
// written under a tmp directory and renamed into place so readers never see
// a partial file.
type Writer struct {
	outDir string
	tmpDir string
}

func NewWriter(outDir string) (*Writer, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	return &Writer{outDir: absOut, tmpDir: tmpDir}, nil
}

// WriteGameRecords writes one batch of records and returns the final path.
func (w *Writer) WriteGameRecords(records []GameRecord) (string, error) {
	name := fmt.Sprintf("games_%d.parquet", time.Now().UnixNano())
	tmpPath := filepath.Join(w.tmpDir, name)
	outPath := filepath.Join(w.outDir, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open tmp parquet: %w", err)
	}

	pw := parquet.NewGenericWriter[GameRecord](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	pw.SetKeyValueMetadata("schema", "game_record_v1")

	if _, err := pw.Write(records); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write records: %w", err)
	}
	if err := pw.Close(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close tmp parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("finalize parquet: %w", err)
	}
	return outPath, nil
}
