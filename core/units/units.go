// Package units holds the fixed scale factors used by the paper calculator.
package units

const (
	MicronPerMm   = 1000.0
	MicronPerTiao = 10.0 // 1 tiao = 0.01 mm

	SqInToSqM     = 0.00064516 // 1 in² in m²
	GramsPerLb    = 453.59237
	SheetsPerReam = 500.0
)

func MicronToMm(um float64) float64   { return um / MicronPerMm }
func MicronToTiao(um float64) float64 { return um / MicronPerTiao }
func MmToMicron(mm float64) float64   { return mm * MicronPerMm }
func TiaoToMicron(t float64) float64  { return t * MicronPerTiao }

// SheetAreaM2 converts a reference sheet area in square inches to m².
func SheetAreaM2(areaSqIn float64) float64 { return areaSqIn * SqInToSqM }

// PoundsToGSM converts ream weight (lb per 500 sheets) to g/m² for a sheet
// of areaSqIn square inches.
func PoundsToGSM(lb, areaSqIn float64) float64 {
	return lb * GramsPerLb / SheetsPerReam / SheetAreaM2(areaSqIn)
}

// GSMToPounds is the inverse of PoundsToGSM.
func GSMToPounds(gsm, areaSqIn float64) float64 {
	return gsm * SheetAreaM2(areaSqIn) * SheetsPerReam / GramsPerLb
}
