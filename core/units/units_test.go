package units

import (
	"math"
	"testing"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestThicknessScales(t *testing.T) {
	if got := MicronToMm(160); got != 0.16 {
		t.Errorf("MicronToMm(160) = %v", got)
	}
	if got := MicronToTiao(160); got != 16 {
		t.Errorf("MicronToTiao(160) = %v", got)
	}
	if got := MmToMicron(0.25); got != 250 {
		t.Errorf("MmToMicron(0.25) = %v", got)
	}
	if got := TiaoToMicron(12); got != 120 {
		t.Errorf("TiaoToMicron(12) = %v", got)
	}
}

func TestPoundsGSM(t *testing.T) {
	const area = 25 * 38
	gsm := PoundsToGSM(80, area)
	if !near(gsm, 118.40, 0.1) {
		t.Fatalf("80 lb @25x38 = %v gsm, want ≈118.40", gsm)
	}
	if lb := GSMToPounds(gsm, area); !near(lb, 80, 1e-9) {
		t.Fatalf("round trip lb = %v", lb)
	}
	if lb := GSMToPounds(118.40, area); !near(lb, 80, 0.1) {
		t.Fatalf("118.40 gsm = %v lb", lb)
	}
}
