package share

import (
	"bytes"
	"io"

	crerr "github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zlib"
	"github.com/valyala/bytebufferpool"
)

// DefaultMaxPayloadBytes caps the inflated size of a share payload.
const DefaultMaxPayloadBytes = 1 << 20

// Compress deflates text into a zlib stream at the default level.
func Compress(text []byte) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := compressTo(buf, text); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func compressTo(w io.Writer, text []byte) error {
	zw := zlib.NewWriter(w)
	if _, err := zw.Write(text); err != nil {
		_ = zw.Close()
		return crerr.Wrap(err, "deflate share payload")
	}
	if err := zw.Close(); err != nil {
		return crerr.Wrap(err, "flush share payload")
	}
	return nil
}

// Decompress inflates a zlib stream of at most DefaultMaxPayloadBytes.
func Decompress(data []byte) ([]byte, error) {
	return decompressLimit(data, DefaultMaxPayloadBytes)
}

func decompressLimit(data []byte, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxPayloadBytes
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, malformed(err, "open zlib stream")
	}
	defer zr.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	n, err := buf.ReadFrom(io.LimitReader(zr, int64(limit)+1))
	if err != nil {
		return nil, malformed(err, "inflate share payload")
	}
	if n > int64(limit) {
		return nil, crerr.Mark(crerr.Newf("inflated payload exceeds %d bytes", limit), ErrMalformedPayload)
	}
	return append([]byte(nil), buf.B...), nil
}
