package game

// The seven canonical shapes. Cell codes equal the piece id so a stamped
// board remembers which piece filled each cell.
var canonicalShapes = [NumPieces][][]uint8{
	{{0, 0, 1}, {1, 1, 1}},
	{{2, 0, 0}, {2, 2, 2}},
	{{0, 3, 3}, {3, 3, 0}},
	{{4, 4, 0}, {0, 4, 4}},
	{{0, 5, 0}, {5, 5, 5}},
	{{6, 6}, {6, 6}},
	{{7, 7, 7, 7}},
}

// pieces[p-1][r] holds piece p at rotation r, precomputed once at start.
var pieces [NumPieces][4][][]uint8

func init() {
	for p, canonical := range canonicalShapes {
		shape := canonical
		pieces[p][0] = shape
		for r := 1; r < 4; r++ {
			shape = rotateMatrix(shape)
			pieces[p][r] = shape
		}
	}
}

// Shape returns the cell matrix of a piece id (1..NumPieces) at a rotation.
// The rotation index wraps modulo 4. The matrix is shared and read-only.
func Shape(piece, rotation int) [][]uint8 {
	return pieces[piece-1][rotation%4]
}

// rotateMatrix rotates a shape 90 degrees: new[j][n-1-i] = old[i][j].
func rotateMatrix(matrix [][]uint8) [][]uint8 {
	n := len(matrix)
	m := len(matrix[0])
	result := make([][]uint8, m)
	for j := range result {
		result[j] = make([]uint8, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			result[j][n-1-i] = matrix[i][j]
		}
	}
	return result
}
