// Package codec provides the deterministic CBOR configuration shared by the
// native collaborators' binary formats (multi-recipient envelopes and config
// dumps).
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. Same logical
// data always produces identical bytes, so envelopes and signed dumps are
// stable across runs.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec
