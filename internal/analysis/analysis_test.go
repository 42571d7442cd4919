package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func sine(freq, dt float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 3 + math.Cos(2*math.Pi*freq*float64(i)*dt)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		freq float64
		dt   float64
		n    int
	}{
		{1.125, 0.01, 1000},
		{0.7958, 0.01, 2000},
		{5, 0.02, 500},
	}
	for _, tt := range tests {
		got, err := DominantFrequency(sine(tt.freq, tt.dt, tt.n), tt.dt)
		if err != nil {
			t.Fatal(err)
		}
		resolution := 1 / (float64(tt.n) * tt.dt)
		if math.Abs(got-tt.freq) > resolution {
			t.Errorf("expected %.4f Hz (±%.4f), got %.4f", tt.freq, resolution, got)
		}
	}
}

func TestDominantFrequencyShort(t *testing.T) {
	if _, err := DominantFrequency([]float64{1, 2}, 0.1); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	ps := PowerSpectrum([]float64{5, 5, 5, 5, 5, 5, 5, 5})
	for i, v := range ps {
		if v > 1e-9 {
			t.Errorf("constant series should have no power, bin %d = %f", i, v)
		}
	}
}

func TestPhasePortraitASCII(t *testing.T) {
	xs := make([]float64, 200)
	vs := make([]float64, 200)
	for i := range xs {
		th := 2 * math.Pi * float64(i) / 200
		xs[i], vs[i] = math.Cos(th), -math.Sin(th)
	}
	out := PhasePortraitToASCII(NewPhasePortrait("x", xs, "v", vs[:150]), 40, 20)
	if !strings.HasPrefix(out, "v vs x\n") {
		t.Errorf("missing caption: %q", out[:10])
	}
	if strings.Count(out, "•") < 20 {
		t.Error("expected the ellipse to be plotted")
	}
	if PhasePortraitToASCII(nil, 10, 10) != "" {
		t.Error("nil portrait should render nothing")
	}
}
