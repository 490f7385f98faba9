package share

import (
	"context"

	"github.com/atotto/clipboard"
	crerr "github.com/cockroachdb/errors"

	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
)

type ClipboardWriter interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return crerr.WithStack(ErrClipboardDenied)
	}
	return clipboard.WriteAll(text)
}

// CopyToClipboard reports whether text reached the clipboard. Failures are logged, never raised.
func CopyToClipboard(ctx context.Context, w ClipboardWriter, text string) (ok bool) {
	logger := logging.Default()
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "clipboard write panicked", "panic", r)
			ok = false
		}
	}()

	if w == nil {
		logger.WarnContext(ctx, "failed to copy to clipboard", "error", ErrClipboardDenied)
		return false
	}
	if ctx != nil && ctx.Err() != nil {
		logger.WarnContext(ctx, "failed to copy to clipboard", "error", ctx.Err())
		return false
	}

	if err := w.WriteAll(text); err != nil {
		logger.WarnContext(ctx, "failed to copy to clipboard",
			"error", crerr.Mark(err, ErrClipboardDenied),
		)
		return false
	}
	return true
}
