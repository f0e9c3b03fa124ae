package codec

import (
	"bytes"
	"encoding/base64"
	"io"

	"github.com/klauspost/compress/flate"
)

// deflateToURLSafe compresses data with DEFLATE and encodes the result in
// the unpadded URL-safe base64 alphabet, so the payload can live in a query
// parameter without escaping.
func deflateToURLSafe(data []byte) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// inflateFromURLSafe reverses deflateToURLSafe.
func inflateFromURLSafe(s string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return data, nil
}
