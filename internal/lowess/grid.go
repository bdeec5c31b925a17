package lowess

import "math"

// Grid returns start, start+step, start+2*step, ... up to but excluding stop.
// It returns nil when step is not positive or the interval is empty.
func Grid(start, stop, step float64) []float64 {
	if !(step > 0) || !(stop > start) {
		return nil
	}
	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
