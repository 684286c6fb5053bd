package game

import "math"

// Features derives the board statistics consumed by an evaluator. Row 0 is
// the spawn buffer and never contributes to aggregate height or the
// per-column fill counts.
//
// These are deliberately not the classic per-column top-height statistics:
// aggregate height counts every filled cell, bumpiness compares per-column
// fill counts, and holes counts every buried empty cell in a run. Trained
// evaluator parameters depend on these exact definitions.
func (p *Position) Features() Features {
	holes := 0
	aggregateHeight := 0
	var fills [BoardWidth]float64

	for y := 1; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			if p.Board[y][x] != 0 {
				aggregateHeight += BoardHeight - y
				fills[x]++
			}
			if p.Board[y-1][x] != 0 && p.Board[y][x] == 0 {
				// Count the whole buried run, not just its first cell.
				holes++
				for l := 1; y+l < BoardHeight && p.Board[y+l][x] == 0; l++ {
					holes++
				}
			}
		}
	}

	bumpiness := 0.0
	for x := 1; x < BoardWidth; x++ {
		bumpiness += math.Abs(fills[x-1] - fills[x])
	}

	return Features{
		Holes:           float64(holes),
		Bumpiness:       bumpiness,
		AggregateHeight: float64(aggregateHeight),
		CompletedLines:  float64(p.Lines),
	}
}
