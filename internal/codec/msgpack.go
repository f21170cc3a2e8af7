package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalMsgpack encodes v with sorted map keys so equal values produce
// equal bytes.
func MarshalMsgpack(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalMsgpack decodes MessagePack data into v. Maps decoded into an
// interface value become map[string]any.
func UnmarshalMsgpack(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
