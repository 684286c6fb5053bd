// Package communication implements the line-oriented JSON protocol that
// drives the engine from an external process, normally over stdin/stdout.
// The core packages never depend on it.
package communication

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"tetris/engine"
	"tetris/network"
)

// Loop reads one JSON request per line from r until EOF, dispatching each to
// the engine and writing responses to w. Malformed or failing requests
// answer Ko and keep the loop alive; only I/O errors stop it.
func Loop(r io.Reader, w io.Writer, eng *engine.Engine, logger zerolog.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg inMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			logger.Warn().Err(err).Msg("malformed request")
			if err := sendStatus(w, false); err != nil {
				return err
			}
			continue
		}

		if err := dispatch(w, eng, logger, msg); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func dispatch(w io.Writer, eng *engine.Engine, logger zerolog.Logger, msg inMessage) error {
	switch msg.Type {
	case msgLoad:
		net, err := network.New(msg.InputNodes, msg.OutputNodes, msg.NodeEvals)
		if err != nil {
			logger.Warn().Err(err).Msg("rejected network load")
			return sendStatus(w, false)
		}
		eng.LoadEvaluator(net.Evaluate)
		logger.Info().
			Int("inputs", len(msg.InputNodes)).
			Int("nodes", len(msg.NodeEvals)).
			Msg("evaluator loaded")
		return nil

	case msgPos:
		pos, err := snapshotPosition(msg)
		if err != nil {
			logger.Warn().Err(err).Msg("rejected position snapshot")
			return sendStatus(w, false)
		}
		eng.Inject(pos)
		return nil

	case msgPeek:
		pos := eng.Position()
		return send(w, outPos{
			Type:         "Pos",
			Score:        pos.Score,
			CurrentPiece: pos.CurrentPiece,
			NextPieces:   pos.NextPieces,
			Lines:        pos.Lines,
			Board:        boardToWire(pos.Board),
		})

	case msgGo:
		mv, err := eng.Step()
		switch {
		case errors.Is(err, engine.ErrNotReady):
			return sendStatus(w, false)
		case errors.Is(err, engine.ErrGameOver):
			// A doomed board is a result, not an error: report the final
			// score so the driver can start a new game.
			return send(w, outGameResult{Type: "GameResult", Score: eng.Position().Score})
		case err != nil:
			return fmt.Errorf("step: %w", err)
		}
		return send(w, outMove{Type: "Move", Col: mv.Col, Row: mv.Rotation, Swap: mv.Swap})

	case msgPlayGame:
		final, err := eng.PlayGame()
		if errors.Is(err, engine.ErrNotReady) {
			return sendStatus(w, false)
		} else if err != nil {
			return fmt.Errorf("play game: %w", err)
		}
		return send(w, outGameResult{Type: "GameResult", Score: final.Score})

	case msgReady:
		return sendStatus(w, eng.Ready())

	default:
		logger.Warn().Str("type", msg.Type).Msg("unknown request type")
		return sendStatus(w, false)
	}
}

func send(w io.Writer, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func sendStatus(w io.Writer, ok bool) error {
	if ok {
		return send(w, outStatus{Type: "Ok"})
	}
	return send(w, outStatus{Type: "Ko"})
}
