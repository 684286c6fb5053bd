package game

import "golang.org/x/exp/rand"

// drawPiece takes one piece id out of the bag, refilling it with a fresh
// shuffled 7-piece cycle first when it is empty. The input bag is never
// modified; callers get a new slice back. Over any cycle each of the seven
// ids is drawn exactly once.
func drawPiece(bag []int, rng *rand.Rand) (int, []int) {
	var next []int
	if len(bag) == 0 {
		next = newShuffledBag(rng)
	} else {
		next = make([]int, len(bag))
		copy(next, bag)
	}
	piece := next[len(next)-1]
	return piece, next[:len(next)-1]
}

// newShuffledBag returns a random permutation of the piece ids 1..NumPieces.
func newShuffledBag(rng *rand.Rand) []int {
	bag := make([]int, NumPieces)
	for i := range bag {
		bag[i] = i + 1
	}
	rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	return bag
}
