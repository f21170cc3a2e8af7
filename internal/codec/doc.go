// Package codec wraps the binary encodings papercalc emits and accepts:
// deterministic CBOR (RFC 8949 §4.2) and MessagePack with sorted map keys.
// Callers import this package rather than the encoder libraries directly.
package codec
