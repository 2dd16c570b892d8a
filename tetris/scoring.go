package tetris

// MaxLinesPerLock is the most rows a single tetromino can complete.
const MaxLinesPerLock = 4

var lineScores = [MaxLinesPerLock + 1]int{0, 100, 300, 500, 800}

// LineScore returns the points for clearing n rows in one lock. Standard
// geometry never completes more than four rows at once; larger counts are
// clamped to the four-row award and negative counts score nothing.
func LineScore(n int) int {
	switch {
	case n <= 0:
		return 0
	case n > MaxLinesPerLock:
		return lineScores[MaxLinesPerLock]
	default:
		return lineScores[n]
	}
}
