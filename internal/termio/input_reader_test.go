package termio

import (
	"testing"

	"github.com/arifd/gd/internal/pager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDecoderPlainRunes(t *testing.T) {
	var d KeyDecoder
	keys := d.Feed([]byte("gd"))
	require.Len(t, keys, 2)
	assert.Equal(t, pager.KeyRune, keys[0].Code)
	assert.Equal(t, 'g', keys[0].Rune)
	assert.Equal(t, 'd', keys[1].Rune)
}

func TestKeyDecoderArrowSequence(t *testing.T) {
	var d KeyDecoder
	keys := d.Feed([]byte("\x1b[A"))
	require.Len(t, keys, 1)
	assert.Equal(t, pager.KeyUp, keys[0].Code)
}

func TestKeyDecoderSplitAcrossFeeds(t *testing.T) {
	var d KeyDecoder
	assert.Empty(t, d.Feed([]byte("\x1b")), "expected no keys yet")
	assert.Empty(t, d.Feed([]byte("[")), "expected sequence still pending")

	keys := d.Feed([]byte("B"))
	require.Len(t, keys, 1)
	assert.Equal(t, pager.KeyDown, keys[0].Code, "expected KeyDown once sequence completes")
}

func TestKeyDecoderBareEscape(t *testing.T) {
	var d KeyDecoder
	keys := d.Feed([]byte{0x1b})
	assert.Empty(t, keys, "bare trailing ESC should wait for more input")

	keys = d.Feed([]byte("q"))
	require.Len(t, keys, 2)
	assert.Equal(t, pager.KeyEscape, keys[0].Code)
	assert.Equal(t, 'q', keys[1].Rune)
}

func TestKeyDecoderControlBytes(t *testing.T) {
	var d KeyDecoder
	keys := d.Feed([]byte{0x03, '\t', 0x7f})
	require.Len(t, keys, 3)
	assert.Equal(t, pager.KeyCtrlC, keys[0].Code)
	assert.Equal(t, pager.KeyTab, keys[1].Code)
	assert.Equal(t, pager.KeyBackspace, keys[2].Code)
}

func TestKeyDecoderMultibyteRune(t *testing.T) {
	var d KeyDecoder
	keys := d.Feed([]byte("café"))
	require.Len(t, keys, 4)
	assert.Equal(t, 'é', keys[3].Rune)
}
