package searcher

import "math"

type uct struct {
	numerator float64
}

func newUCT(c float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: c * c * math.Log(N)}
}

// evaluate scores a child with reward q over n visits. A minimizing parent
// negates the win ratio since rewards are kept from the root player's view.
func (u uct) evaluate(q float64, n float64, maximizing bool) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	ratio := q / n
	if !maximizing {
		ratio = -ratio
	}
	// UCT = ±q/n + c*sqrt(ln(N)/n)
	return ratio + math.Sqrt(u.numerator/n)
}
