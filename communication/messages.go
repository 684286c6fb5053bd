package communication

import (
	"fmt"

	"tetris/game"
	"tetris/network"
)

// Inbound requests are newline-delimited JSON objects discriminated by the
// "type" field. A single struct covers every variant; absent fields stay
// zero.
type inMessage struct {
	Type string `json:"type"`

	// Load
	InputNodes  []int64            `json:"input_nodes"`
	OutputNodes []int64            `json:"output_nodes"`
	NodeEvals   []network.NodeEval `json:"node_evals"`

	// Pos
	Score        int64   `json:"score"`
	CurrentPiece int     `json:"current_piece"`
	NextPieces   []int   `json:"next_pieces"`
	Lines        int     `json:"lines"`
	Board        [][]int `json:"board"`
}

// Inbound message types.
const (
	msgLoad     = "Load"
	msgPos      = "Pos"
	msgPeek     = "Peek"
	msgPlayGame = "PlayGame"
	msgReady    = "Ready"
	msgGo       = "Go"
)

// outMove reports the chosen placement. The wire names col/row predate the
// hold mechanic: row carries the rotation index.
type outMove struct {
	Type string `json:"type"`
	Col  int    `json:"col"`
	Row  int    `json:"row"`
	Swap bool   `json:"swap"`
}

type outPos struct {
	Type         string  `json:"type"`
	Score        int64   `json:"score"`
	CurrentPiece int     `json:"current_piece"`
	NextPieces   []int   `json:"next_pieces"`
	Lines        int     `json:"lines"`
	Board        [][]int `json:"board"`
}

type outGameResult struct {
	Type  string `json:"type"`
	Score int64  `json:"score"`
}

// outStatus is the bare Ok/Ko acknowledgement.
type outStatus struct {
	Type string `json:"type"`
}

// The board crosses the wire as arrays of numbers. []uint8 is []byte to
// encoding/json and would round-trip as base64, so rows convert through
// [][]int at the boundary.

func boardFromWire(rows [][]int) ([][]uint8, error) {
	board := make([][]uint8, len(rows))
	for y, row := range rows {
		board[y] = make([]uint8, len(row))
		for x, cell := range row {
			if cell < 0 || cell > 255 {
				return nil, fmt.Errorf("cell (%d,%d) holds %d, not a cell code", y, x, cell)
			}
			board[y][x] = uint8(cell)
		}
	}
	return board, nil
}

// snapshotPosition rebuilds and validates the injected position carried by a
// Pos request.
func snapshotPosition(msg inMessage) (*game.Position, error) {
	board, err := boardFromWire(msg.Board)
	if err != nil {
		return nil, err
	}
	return game.PositionFromSnapshot(board, msg.CurrentPiece, msg.NextPieces, msg.Lines, msg.Score)
}

func boardToWire(board [][]uint8) [][]int {
	rows := make([][]int, len(board))
	for y, row := range board {
		rows[y] = make([]int, len(row))
		for x, cell := range row {
			rows[y][x] = int(cell)
		}
	}
	return rows
}
