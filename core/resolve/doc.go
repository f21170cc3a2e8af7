// Package resolve fills in a partial Measurement Set from the identities
// that relate paper thickness, basis weight, bulk and ream weight:
//
//	thickness(μm) = bulk(cm³/g) × basis weight(g/m²)
//	1 mm = 1000 μm, 1 tiao = 10 μm
//	basis weight = lb × 453.59237 / 500 / sheet area(m²)
//
// Resolution is a bounded fixed-point iteration over an ordered rule list.
// A rule only ever writes a field that is still absent, so supplied values
// are echoed unchanged and the first rule in list order to reach a field wins.
//
// Rule precedence (also the order of every pass):
//
//  1. thickness-from-micron, thickness-from-mm, thickness-from-tiao
//  2. lb-to-gsm, gsm-to-lb
//  3. bulk-from-thickness, gsm-from-thickness, thickness-from-product
//
// Resolve is a pure function and is safe for concurrent use.
package resolve
