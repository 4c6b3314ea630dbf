package store

import (
	"encoding/binary"
	"math"
)

// #region curve-encoding
// Forecast curves are stored as little-endian float32 blobs: compact,
// fixed-width, and order-preserving for the horizon.
func encodeCurve(v []float64) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(f)))
	}
	return buf
}

func decodeCurve(b []byte) []float64 {
	v := make([]float64, len(b)/4)
	for i := range v {
		v[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
	}
	return v
}

// #endregion curve-encoding
