package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
)

// Position is the complete game state: board, active piece, upcoming queue,
// held piece, bag and counters. It is handled as an immutable value - Apply
// never touches its receiver and returns a brand-new Position, so candidate
// placements can be simulated freely during search.
type Position struct {
	Board        [][]uint8
	CurrentPiece int
	NextPieces   []int
	Pocket       int // held piece id, 0 until the first hold
	Bag          []int
	Score        int64
	Lines        int
}

// NewPosition starts a fresh game: empty board, a current piece and a primed
// queue drawn from a new shuffled bag.
func NewPosition(rng *rand.Rand) *Position {
	bag := newShuffledBag(rng)
	current := bag[len(bag)-1]
	bag = bag[:len(bag)-1]

	next := make([]int, QueueLength)
	for i := range next {
		next[i] = bag[len(bag)-1]
		bag = bag[:len(bag)-1]
	}

	return &Position{
		Board:        emptyBoard(),
		CurrentPiece: current,
		NextPieces:   next,
		Bag:          bag,
	}
}

// PositionFromSnapshot rebuilds a Position from an externally supplied game
// snapshot, validating it before it can corrupt simulation. The bag restarts
// empty: the external game owns piece generation, so the next local draw
// simply begins a fresh cycle.
func PositionFromSnapshot(board [][]uint8, currentPiece int, nextPieces []int, lines int, score int64) (*Position, error) {
	if len(board) != BoardHeight {
		return nil, fmt.Errorf("board has %d rows, want %d", len(board), BoardHeight)
	}
	for y, row := range board {
		if len(row) != BoardWidth {
			return nil, fmt.Errorf("board row %d has %d cells, want %d", y, len(row), BoardWidth)
		}
		for x, cell := range row {
			if cell > NumPieces {
				return nil, fmt.Errorf("cell (%d,%d) holds code %d, want 0..%d", y, x, cell, NumPieces)
			}
		}
	}
	if currentPiece < 1 || currentPiece > NumPieces {
		return nil, fmt.Errorf("current piece id %d out of range 1..%d", currentPiece, NumPieces)
	}
	for i, piece := range nextPieces {
		if piece < 1 || piece > NumPieces {
			return nil, fmt.Errorf("queued piece %d has id %d out of range 1..%d", i, piece, NumPieces)
		}
	}

	boardCopy := make([][]uint8, BoardHeight)
	for y := range board {
		boardCopy[y] = make([]uint8, BoardWidth)
		copy(boardCopy[y], board[y])
	}
	next := make([]int, len(nextPieces))
	copy(next, nextPieces)

	return &Position{
		Board:        boardCopy,
		CurrentPiece: currentPiece,
		NextPieces:   next,
		Lines:        lines,
		Score:        score,
	}, nil
}

// Apply drops a piece according to mv and returns the resulting Position.
// A nil rng skips regenerating the next-piece queue, otherwise one piece per
// queue pop is drawn from the bag and appended to the tail. ok is false when
// the placement ends the game: the stack reached the two-row spawn buffer
// and no Position is produced.
func (p *Position) Apply(mv Move, rng *rand.Rand) (*Position, bool) {
	if len(p.NextPieces) == 0 {
		panic("apply on a position with an empty piece queue")
	}

	next := make([]int, len(p.NextPieces))
	copy(next, p.NextPieces)
	current := next[0]
	next = next[1:]

	bag := p.Bag
	pocket := p.Pocket
	if rng != nil {
		var drawn int
		drawn, bag = drawPiece(bag, rng)
		next = append(next, drawn)
	}

	var piece [][]uint8
	switch {
	case !mv.Swap:
		piece = Shape(p.CurrentPiece, mv.Rotation)
	case p.Pocket != 0:
		// Hold-swap: play the held piece, stash the current one.
		piece = Shape(p.Pocket, mv.Rotation)
		pocket = p.CurrentPiece
	default:
		// First hold: stash the current piece and play the queue front,
		// which consumes a second queued piece to stay current.
		pocket = p.CurrentPiece
		piece = Shape(current, mv.Rotation)
		if len(next) == 0 {
			panic("apply: hold consumed the whole piece queue")
		}
		current = next[0]
		next = next[1:]
		if rng != nil {
			var drawn int
			drawn, bag = drawPiece(bag, rng)
			next = append(next, drawn)
		}
	}

	sizeY := len(piece)
	sizeX := len(piece[0])
	if mv.Col < 0 || mv.Col+sizeX > BoardWidth {
		panic(fmt.Sprintf("apply: column %d does not fit a %d-wide piece", mv.Col, sizeX))
	}

	for y := 0; y <= BoardHeight-sizeY; y++ {
		// y is the landing row when the piece touches the floor there, or
		// when dropping one row further would overlap the existing stack.
		// Scanning top to bottom finds the true resting row first.
		if y != BoardHeight-sizeY && !overlaps(p.Board, piece, mv.Col, y+1) {
			continue
		}

		board := cloneBoard(p.Board)
		for j := 0; j < sizeY; j++ {
			for i := 0; i < sizeX; i++ {
				if piece[j][i] != 0 && board[y+j][mv.Col+i] == 0 {
					board[y+j][mv.Col+i] = piece[j][i]
				}
			}
		}

		cleared := clearFullRows(board)

		// The stack reaching the spawn buffer ends the game.
		for x := 0; x < BoardWidth; x++ {
			if board[0][x] != 0 || board[1][x] != 0 {
				return nil, false
			}
		}

		return &Position{
			Board:        board,
			CurrentPiece: current,
			NextPieces:   next,
			Pocket:       pocket,
			Bag:          bag,
			Score:        p.Score + lineScore(cleared),
			Lines:        p.Lines + cleared,
		}, true
	}

	// The floor case matches at the last scanned row, so this is unreachable.
	panic(fmt.Sprintf("apply: no landing row for piece %d at column %d", p.CurrentPiece, mv.Col))
}

// overlaps reports whether the piece placed with its top-left corner at
// (row, col) would cover an occupied board cell.
func overlaps(board, piece [][]uint8, col, row int) bool {
	for j := range piece {
		for i := range piece[j] {
			if piece[j][i] != 0 && board[row+j][col+i] != 0 {
				return true
			}
		}
	}
	return false
}

// clearFullRows removes every row with no empty cell, inserting a fresh row
// at the top for each. A single top-to-bottom scan handles simultaneous
// clears: rows below a removed row keep their indices and rows above are
// renumbered consistently.
func clearFullRows(board [][]uint8) int {
	cleared := 0
	for y := 0; y < BoardHeight; y++ {
		full := true
		for x := 0; x < BoardWidth; x++ {
			if board[y][x] == 0 {
				full = false
				break
			}
		}
		if !full {
			continue
		}

		cleared++
		row := board[y]
		copy(board[1:y+1], board[0:y])
		for x := range row {
			row[x] = 0
		}
		board[0] = row
	}
	return cleared
}

// lineScore is the score delta for clearing rows in a single placement.
func lineScore(cleared int) int64 {
	switch cleared {
	case 1:
		return 40
	case 2:
		return 100
	case 3:
		return 300
	case 4:
		return 1200
	default:
		return 0
	}
}

func emptyBoard() [][]uint8 {
	board := make([][]uint8, BoardHeight)
	for y := range board {
		board[y] = make([]uint8, BoardWidth)
	}
	return board
}

func cloneBoard(board [][]uint8) [][]uint8 {
	out := make([][]uint8, len(board))
	for y := range board {
		out[y] = make([]uint8, len(board[y]))
		copy(out[y], board[y])
	}
	return out
}

// String renders the board grid, one row per line.
func (p *Position) String() string {
	var sb strings.Builder
	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			fmt.Fprintf(&sb, "%d ", p.Board[y][x])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
