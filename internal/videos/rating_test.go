package videos

import (
	"math"
	"testing"
)

func TestRunningMean(t *testing.T) {
	cases := []struct {
		name  string
		mean  float64
		count int
		value float64
		want  float64
	}{
		{"first", 0, 0, 4, 4},
		{"second", 4, 1, 5, 4.5},
		{"roundsToTwoDecimals", 4, 2, 5, 4.33},
		{"roundsUp", 1, 2, 0, 0.67},
		{"negativeCountTreatedAsZero", 3, -2, 2, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RunningMean(tc.mean, tc.count, tc.value); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("RunningMean(%v, %d, %v) = %v want %v", tc.mean, tc.count, tc.value, got, tc.want)
			}
		})
	}
}

func TestRunningMeanTracksArithmeticMean(t *testing.T) {
	sequences := [][]float64{
		{4, 5},
		{5, 5, 5, 5},
		{0, 5, 0, 5},
		{1, 2, 3, 4, 5},
		{3.5, 4.25, 2, 1.75, 5, 0.5},
	}

	for _, seq := range sequences {
		var (
			mean  float64
			count int
			sum   float64
		)
		for _, r := range seq {
			mean = RunningMean(mean, count, r)
			count++
			sum += r
		}

		want := math.Round(sum/float64(len(seq))*100) / 100
		// Each step rounds, so allow for accumulated rounding drift.
		if math.Abs(mean-want) > 0.01*float64(len(seq)) {
			t.Fatalf("sequence %v: got mean %v want about %v", seq, mean, want)
		}
		if count != len(seq) {
			t.Fatalf("expected count %d got %d", len(seq), count)
		}
	}
}
