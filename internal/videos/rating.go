package videos

import "math"

// RunningMean folds value into a mean taken over count prior ratings and
// rounds the result to two decimal places.
func RunningMean(mean float64, count int, value float64) float64 {
	if count < 0 {
		count = 0
	}
	n := float64(count)
	return math.Round((mean*n+value)/(n+1)*100) / 100
}
