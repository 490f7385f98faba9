package share

import (
	crerr "github.com/cockroachdb/errors"
)

var (
	ErrMalformedPayload    = crerr.New("malformed share payload")
	ErrLegacyDecodeFailure = crerr.New("legacy share payload could not be decoded")
	ErrClipboardDenied     = crerr.New("clipboard write denied")
)

func malformed(err error, msg string) error {
	return crerr.Mark(crerr.Wrap(err, msg), ErrMalformedPayload)
}
