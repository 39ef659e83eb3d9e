package advisor

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetfuel/reconciliation-engine/internal/domain"
)

var (
	ten = decimal.NewFromInt(10)

	// A transposed pair of digits always produces a difference divisible
	// by 9 at the scale of the swapped positions. The remainder tolerance
	// absorbs decimal noise.
	transpositionSteps = []decimal.Decimal{
		decimal.NewFromFloat(0.09),
		decimal.NewFromFloat(0.9),
		decimal.NewFromInt(9),
	}
	remainderTolerance = decimal.NewFromFloat(0.001)
)

// isPotentialTransposition reports whether the two amounts look like a
// digit-transposition pair: a non-zero difference that is a multiple of 9
// at the whole-unit, tenth, or cent scale, and whose two-decimal renderings
// are digit-for-digit anagrams.
func isPotentialTransposition(a, b decimal.Decimal) bool {
	diff := a.Sub(b).Abs()
	if diff.IsZero() {
		return false
	}

	nearMultiple := false
	for _, step := range transpositionSteps {
		if diff.Mod(step).LessThan(remainderTolerance) {
			nearMultiple = true
			break
		}
	}
	if !nearMultiple {
		return false
	}

	return sortedDigits(a) == sortedDigits(b)
}

// sortedDigits renders an amount to two decimal places, strips punctuation,
// and sorts the digits so anagram amounts compare equal.
func sortedDigits(d decimal.Decimal) string {
	s := strings.NewReplacer(".", "", "-", "").Replace(d.StringFixed(2))
	digits := []byte(s)
	sort.Slice(digits, func(i, j int) bool { return digits[i] < digits[j] })
	return string(digits)
}

// isScalingError reports whether a equals b shifted by one decimal place in
// either direction, within the amount tolerance.
func isScalingError(a, b decimal.Decimal) bool {
	return domain.AmountsEqual(a, b.Mul(ten)) || domain.AmountsEqual(a, b.Div(ten))
}

// withinDays reports whether two calendar dates are at most the given number
// of days apart.
func withinDays(a, b time.Time, days int) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= time.Duration(days)*24*time.Hour
}

// levenshteinDistance is the classic edit distance between two strings,
// used to spot invoice-id typos.
func levenshteinDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
