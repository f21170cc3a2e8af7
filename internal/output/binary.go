package output

import (
	"io"

	"papercalc/internal/codec"
	"papercalc/internal/display"
)

// WriteCBOR writes one v1 result as deterministic CBOR.
func WriteCBOR(w io.Writer, r display.Result) error {
	data, err := codec.MarshalCBOR(ToAPIResult(r))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteMsgpack writes one v1 result as MessagePack.
func WriteMsgpack(w io.Writer, r display.Result) error {
	data, err := codec.MarshalMsgpack(ToAPIResult(r))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
