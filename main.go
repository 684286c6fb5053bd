package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tetris/communication"
	"tetris/engine"
	"tetris/experiments"
	"tetris/game"
	"tetris/searcher"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tetris",
		Short:         "Heuristic move-selection engine for falling-block games",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSelfplayCmd())
	return cmd
}

// newLogger builds the process logger. It writes to stderr: stdout belongs
// to the protocol.
func newLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}

func newServeCmd() *cobra.Command {
	var seed uint64
	var goroutines int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer move requests over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger := newLogger(level)

			options := []engine.Option{
				engine.WithLogger(logger),
				engine.WithSearcher(searcher.New(searcher.WithGoroutines(goroutines))),
			}
			if seed != 0 {
				options = append(options, engine.WithSeed(seed))
			}
			eng := engine.New(options...)

			logger.Info().Msg("listening on stdin")
			return communication.Loop(os.Stdin, os.Stdout, eng, logger)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for piece generation (0 = time-based)")
	cmd.Flags().IntVar(&goroutines, "goroutines", 1, "Goroutines for candidate scoring")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every applied move")

	return cmd
}

func newSelfplayCmd() *cobra.Command {
	var games int
	var seed uint64
	var goroutines int
	var outDir string

	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Play games with the built-in evaluator and record the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(zerolog.InfoLevel)
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			records := experiments.Run(experiments.Config{
				Games:      games,
				Seed:       seed,
				Goroutines: goroutines,
				Evaluate:   game.EvaluateClassic,
				Logger:     logger,
			})

			if outDir == "" {
				return nil
			}
			writer, err := experiments.NewWriter(outDir)
			if err != nil {
				return err
			}
			path, err := writer.WriteGameRecords(records)
			if err != nil {
				return err
			}
			logger.Info().Str("path", path).Int("games", len(records)).Msg("records written")
			return nil
		},
	}

	cmd.Flags().IntVar(&games, "games", 10, "Number of games to play")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Base seed (0 = time-based)")
	cmd.Flags().IntVar(&goroutines, "goroutines", 1, "Goroutines for candidate scoring")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory for parquet game records (optional)")

	return cmd
}
