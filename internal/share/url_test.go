package share

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateShareableURL(t *testing.T) {
	url, err := GenerateShareableURL("https://lineups.example.com/", sampleLineup())
	require.NoError(t, err)

	prefix := "https://lineups.example.com/lineups/share?data="
	require.True(t, strings.HasPrefix(url, prefix), url)

	token, err := ExtractToken(url)
	require.NoError(t, err)
	require.Equal(t, strings.TrimPrefix(url, prefix), token)

	got, ok := newTestDecoder().Decode(context.Background(), token)
	require.True(t, ok)
	require.Equal(t, sampleLineup(), got)
}

func TestExtractToken(t *testing.T) {
	token, err := ExtractToken("  eJwabc  ")
	require.NoError(t, err)
	require.Equal(t, "eJwabc", token)

	_, err = ExtractToken("https://lineups.example.com/lineups/share?other=1")
	require.Error(t, err)
}

type fakeClipboard struct {
	text string
	err  error
	boom bool
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.boom {
		panic("clipboard exploded")
	}
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestCopyToClipboard(t *testing.T) {
	ctx := context.Background()

	ok := &fakeClipboard{}
	require.True(t, CopyToClipboard(ctx, ok, "https://x/lineups/share?data=e"))
	require.Equal(t, "https://x/lineups/share?data=e", ok.text)

	require.False(t, CopyToClipboard(ctx, &fakeClipboard{err: errors.New("permission denied")}, "x"))
	require.False(t, CopyToClipboard(ctx, &fakeClipboard{boom: true}, "x"))
	require.False(t, CopyToClipboard(ctx, nil, "x"))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.False(t, CopyToClipboard(canceled, &fakeClipboard{}, "x"))
}
