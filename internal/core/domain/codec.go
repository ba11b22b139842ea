package domain

// Codec is the behavioral contract checked by construct-and-verify probes.
// A capability value claiming to provide a codec must round-trip a sample
// value through Encode and Decode before the gate trusts it; a value that
// merely exists but fails the round-trip is treated as broken.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte) (any, error)
}
