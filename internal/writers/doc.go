// Package writers turns display results into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (text card, TSV, JSON, CBOR, msgpack).
//   • The engine stays domain-only; calcapp stays orchestration-only.
//   • JSON/CBOR/msgpack go through pkg/api (v1) for a stable wire format.
package writers
