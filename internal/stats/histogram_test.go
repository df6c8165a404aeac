package stats

import (
	"math"
	"math/rand"
	"testing"
)

func TestSturgesBins(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{10, 5},
		{365, 10},
		{1095, 12},
	}
	for _, tt := range tests {
		if got := SturgesBins(tt.n); got != tt.want {
			t.Errorf("SturgesBins(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestCalculateHistogram_Uniform(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins := CalculateHistogram(values)

	if len(bins) != 5 {
		t.Fatalf("Expected 5 Sturges bins, got %d", len(bins))
	}
	for i, b := range bins {
		if b.Count != 2 {
			t.Errorf("bin %d: expected 2 observations, got %d", i, b.Count)
		}
		if !almostEqual(b.End-b.Start, 1.8, epsilon) {
			t.Errorf("bin %d: expected width 1.8, got %v", i, b.End-b.Start)
		}
	}
	if bins[0].Start != 1 || !almostEqual(bins[len(bins)-1].End, 10, epsilon) {
		t.Errorf("Expected bins to span [1, 10], got [%v, %v]", bins[0].Start, bins[len(bins)-1].End)
	}
}

func TestCalculateHistogram_CountsSumToN(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 2, 3, 17, 365, 1095} {
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.NormFloat64()*5000 - 1000
		}
		total := 0
		for _, b := range CalculateHistogram(values) {
			total += b.Count
		}
		if total != n {
			t.Errorf("n=%d: bin counts sum to %d", n, total)
		}
	}
}

func TestCalculateHistogram_DensityOverlay(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins := CalculateHistogram(values)

	mean := Mean(values)
	sd := StdDev(values, mean)
	width := bins[0].End - bins[0].Start
	for i, b := range bins {
		want := GaussianDensity(b.Center, mean, sd) * float64(len(values)) * width
		if !almostEqual(b.Density, want, epsilon) {
			t.Errorf("bin %d: expected scaled density %v, got %v", i, want, b.Density)
		}
	}
	// Symmetric input gives a symmetric overlay.
	if !almostEqual(bins[0].Density, bins[4].Density, epsilon) {
		t.Errorf("Expected symmetric overlay, got %v vs %v", bins[0].Density, bins[4].Density)
	}
}

func TestCalculateHistogram_Degenerate(t *testing.T) {
	if bins := CalculateHistogram(nil); bins != nil {
		t.Errorf("Expected nil bins for empty input, got %v", bins)
	}

	bins := CalculateHistogram([]float64{4, 4, 4})
	if len(bins) != 1 || bins[0].Count != 3 {
		t.Fatalf("Expected a single bin with 3 observations, got %+v", bins)
	}
	if bins[0].Start != 4 || bins[0].End != 4 || bins[0].Density != 0 {
		t.Errorf("Unexpected degenerate bin: %+v", bins[0])
	}
	if math.IsNaN(bins[0].Density) {
		t.Errorf("Density must never be NaN")
	}
}

func TestGaussianCurve(t *testing.T) {
	values := []float64{-10, 0, 10}
	points := GaussianCurve(values, 0)
	if len(points) != DefaultCurveSteps+1 {
		t.Fatalf("Expected %d points, got %d", DefaultCurveSteps+1, len(points))
	}
	if points[0].Value != -10 || !almostEqual(points[len(points)-1].Value, 10, epsilon) {
		t.Errorf("Expected curve to span [-10, 10], got [%v, %v]", points[0].Value, points[len(points)-1].Value)
	}
	peak := points[DefaultCurveSteps/2]
	if !almostEqual(peak.Value, 0, epsilon) {
		t.Errorf("Expected midpoint at the mean, got %v", peak.Value)
	}
	for _, p := range points {
		if p.Density > peak.Density+epsilon {
			t.Errorf("Density at %v exceeds the peak at the mean", p.Value)
		}
	}

	if got := GaussianCurve(nil, 10); got != nil {
		t.Errorf("Expected nil curve for empty input")
	}
	if got := GaussianCurve([]float64{2, 2}, 10); len(got) != 1 {
		t.Errorf("Expected a single point for constant input, got %d", len(got))
	}
}
