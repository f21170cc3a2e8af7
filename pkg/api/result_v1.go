// pkg/api/result_v1.go
package api

// ResultV1 is the stable JSON/CBOR/msgpack schema for one evaluation.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
// CBOR reuses the json tags.
type ResultV1 struct {
	EvaluationID string  `json:"evaluation_id" msgpack:"evaluation_id"`
	Preset       string  `json:"preset" msgpack:"preset"`
	WidthIn      float64 `json:"width_in" msgpack:"width_in"`
	HeightIn     float64 `json:"height_in" msgpack:"height_in"`
	AreaSqIn     float64 `json:"area_sq_in" msgpack:"area_sq_in"`

	BasisWeightGSM *float64 `json:"basis_weight_gsm,omitempty" msgpack:"basis_weight_gsm,omitempty"`
	ThicknessUm    *float64 `json:"thickness_um,omitempty" msgpack:"thickness_um,omitempty"`
	ThicknessMm    *float64 `json:"thickness_mm,omitempty" msgpack:"thickness_mm,omitempty"`
	ThicknessTiao  *float64 `json:"thickness_tiao,omitempty" msgpack:"thickness_tiao,omitempty"`
	BulkCm3G       *float64 `json:"bulk_cm3_g,omitempty" msgpack:"bulk_cm3_g,omitempty"`
	PoundWeightLb  *float64 `json:"pound_weight_lb,omitempty" msgpack:"pound_weight_lb,omitempty"`
	DensityGCm3    *float64 `json:"density_g_cm3,omitempty" msgpack:"density_g_cm3,omitempty"`

	Derived   []string     `json:"derived,omitempty" msgpack:"derived,omitempty"`
	Conflicts []ConflictV1 `json:"conflicts,omitempty" msgpack:"conflicts,omitempty"`
}

// ConflictV1 reports supplied values that disagree with each other.
type ConflictV1 struct {
	Identity string  `json:"identity" msgpack:"identity"`
	Field    string  `json:"field" msgpack:"field"`
	Got      float64 `json:"got" msgpack:"got"`
	Want     float64 `json:"want" msgpack:"want"`
}
