package game

// Board dimensions. Row 0 is the top of the board; the top two rows act as
// the spawn buffer and must stay empty after every placement.
const (
	BoardWidth  = 10
	BoardHeight = 22
)

// NumPieces is the number of distinct piece types. Piece ids run 1..NumPieces
// and double as the cell codes stamped onto the board.
const NumPieces = 7

// QueueLength is how many upcoming pieces a fresh Position keeps primed.
const QueueLength = 4

// Features are the board statistics an evaluator scores.
type Features struct {
	Holes           float64
	Bumpiness       float64
	AggregateHeight float64
	CompletedLines  float64
}

// Vector returns the features in their canonical input order.
func (f Features) Vector() []float64 {
	return []float64{f.Holes, f.Bumpiness, f.AggregateHeight, f.CompletedLines}
}

// Evaluate scores a feature vector. Higher is better. An Evaluate must be a
// pure function of its input so that search stays deterministic.
type Evaluate func(Features) float64
