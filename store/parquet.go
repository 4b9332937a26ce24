// Package store writes finished arena games to Parquet files.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const schemaName = "jass_result_v1"

// ResultRow is the summary of one finished game.
//
// Points are the game totals of each team at the end. Winner is 1 or 2.
type ResultRow struct {
	GameID     string `parquet:"game_id"`
	Seed       uint64 `parquet:"seed"`
	Player1    string `parquet:"player1,dict"`
	Player2    string `parquet:"player2,dict"`
	Player3    string `parquet:"player3,dict"`
	Player4    string `parquet:"player4,dict"`
	Team1      int32  `parquet:"team1_points"`
	Team2      int32  `parquet:"team2_points"`
	Winner     int32  `parquet:"winner"`
	Tricks     int32  `parquet:"tricks"`
	Turns      int32  `parquet:"turns"`
	DurationMs int64  `parquet:"duration_ms"`
	Source     string `parquet:"source,dict"`
	FinishedAt int64  `parquet:"finished_at_unix_ms"`
}

func writeOptions() []parquet.WriterOption {
	return []parquet.WriterOption{
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schemaName),
	}
}

// WriteResultsParquetAtomic writes a Parquet file into outDir/tmp and then
// moves it into outDir, so readers never see a partial file.
func WriteResultsParquetAtomic(outDir string, rows []ResultRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("results_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows, writeOptions()...); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}

	return finalPath, nil
}

// ReadResults loads every row of a results file.
func ReadResults(path string) ([]ResultRow, error) {
	rows, err := parquet.ReadFile[ResultRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}
