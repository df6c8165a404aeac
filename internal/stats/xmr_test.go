package stats

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestCalculateXmRWithKeys(t *testing.T) {
	values := []float64{10, 12, 11, 13, 11}
	result := CalculateXmRWithKeys(values, nil)

	expectedAvg := 11.4
	if math.Abs(result.Average-expectedAvg) > 0.001 {
		t.Errorf("Expected average %v, got %v", expectedAvg, result.Average)
	}

	expectedAmR := 1.75
	if math.Abs(result.AmR-expectedAmR) > 0.001 {
		t.Errorf("Expected AmR %v, got %v", expectedAmR, result.AmR)
	}

	expectedUNPL := 16.055
	if math.Abs(result.UNPL-expectedUNPL) > 0.001 {
		t.Errorf("Expected UNPL %v, got %v", expectedUNPL, result.UNPL)
	}

	expectedLNPL := 6.745
	if math.Abs(result.LNPL-expectedLNPL) > 0.001 {
		t.Errorf("Expected LNPL %v, got %v", expectedLNPL, result.LNPL)
	}

	if len(result.Signals) != 0 {
		t.Errorf("Expected 0 signals, got %v", len(result.Signals))
	}
}

func TestCalculateXmRWithKeys_NegativeLimitNotFloored(t *testing.T) {
	values := []float64{-100, 100, -100, 100}
	result := CalculateXmRWithKeys(values, nil)
	if result.LNPL >= 0 {
		t.Errorf("Expected a negative lower limit for overdrawn balances, got %v", result.LNPL)
	}
}

func TestXmRSignals(t *testing.T) {
	// Rule 1: Outlier
	values := []float64{10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 100}
	keys := []string{"d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8", "d9", "d10", "d11"}
	result := CalculateXmRWithKeys(values, keys)
	foundOutlier := false
	for _, s := range result.Signals {
		if s.Type == "outlier" && s.Index == 10 && s.Key == "d11" {
			foundOutlier = true
		}
	}
	if !foundOutlier {
		t.Errorf("Expected outlier at index 10 not found. UNPL was %v, Value was 100", result.UNPL)
	}

	// Rule 2: Shift (8 points on one side)
	values = []float64{10, 10, 10, 10, 10, 10, 10, 10, 2, 2, 2, 2, 2, 2, 2, 2}
	result = CalculateXmRWithKeys(values, nil)
	foundShift := 0
	for _, s := range result.Signals {
		if s.Type == "shift" {
			foundShift++
		}
	}
	if foundShift < 2 {
		t.Errorf("Expected 2 shift signals (one at index 7, one at index 15), got %v", foundShift)
	}
}

func TestAnalyzeBalanceBehavior(t *testing.T) {
	if res := AnalyzeBalanceBehavior([]float64{10, 12, 11, 13, 11}, nil); res.Status != "stable" {
		t.Errorf("Expected stable status, got %v", res.Status)
	}
	res := AnalyzeBalanceBehavior([]float64{10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 100}, nil)
	if res.Status != "unstable" {
		t.Errorf("Expected unstable status, got %v", res.Status)
	}
	if empty := AnalyzeBalanceBehavior(nil, nil); empty.Status != "stable" || len(empty.XmR.Values) != 0 {
		t.Errorf("Expected empty stable result, got %+v", empty)
	}
}

func TestCalculateXmRWithKeys_EmptySlicesNotNull(t *testing.T) {
	for name, values := range map[string][]float64{"empty": nil, "single": {42}} {
		out, err := json.Marshal(CalculateXmRWithKeys(values, nil))
		if err != nil {
			t.Fatalf("%s: marshal failed: %v", name, err)
		}
		if strings.Contains(string(out), "null") {
			t.Errorf("%s: expected empty arrays instead of null, got %s", name, out)
		}
	}
}
