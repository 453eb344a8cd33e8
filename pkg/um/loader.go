package um

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// LoadScroll reads r to completion and decodes it as a contiguous
// stream of big-endian 32-bit platters, one group of 4 bytes per
// platter, in order. It fails if the byte length is not a multiple of
// 4; this is the one load-time error the engine surfaces before a
// Machine is ever constructed.
func LoadScroll(r io.Reader) ([]Platter, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading scroll")
	}
	if len(raw)%4 != 0 {
		return nil, ErrMalformedScroll
	}
	platters := make([]Platter, len(raw)/4)
	for i := range platters {
		platters[i] = binary.BigEndian.Uint32(raw[i*4 : i*4+4])
	}
	return platters, nil
}
