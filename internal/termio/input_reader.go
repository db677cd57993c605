package termio

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/arifd/gd/internal/pager"
)

// sequenceMap covers the escape sequences this pager's keymap actually binds to: cursor keys, paging keys,
// and the alt-modified word-editing keys used by search input. Mouse reporting and bracketed paste are
// dropped entirely — out of scope for the keymap this decodes into.
var sequenceMap = map[string]pager.KeyCode{
	"\x1b[A":    pager.KeyUp,
	"\x1bOA":    pager.KeyUp,
	"\x1b[B":    pager.KeyDown,
	"\x1bOB":    pager.KeyDown,
	"\x1b[C":    pager.KeyRight,
	"\x1bOC":    pager.KeyRight,
	"\x1b[D":    pager.KeyLeft,
	"\x1bOD":    pager.KeyLeft,
	"\x1b[1;3C": pager.KeyAltRight,
	"\x1b[1;3D": pager.KeyAltLeft,
	"\x1b\x62":  pager.KeyAltLeft,  // Alt-b, common readline word-left
	"\x1b\x66":  pager.KeyAltRight, // Alt-f, common readline word-right
	"\x1b\x7f":  pager.KeyAltBackspace,
	"\x1b\x08":  pager.KeyAltBackspace,
	"\x1b[1~":   pager.KeyHome,
	"\x1b[7~":   pager.KeyHome,
	"\x1b[H":    pager.KeyHome,
	"\x1bOH":    pager.KeyHome,
	"\x1b[4~":   pager.KeyEnd,
	"\x1b[8~":   pager.KeyEnd,
	"\x1b[F":    pager.KeyEnd,
	"\x1bOF":    pager.KeyEnd,
	"\x1b[5~":   pager.KeyPageUp,
	"\x1b[6~":   pager.KeyPageDown,
}

var sequencePrefixes map[string]struct{}

func init() {
	sequencePrefixes = make(map[string]struct{})
	for seq := range sequenceMap {
		for i := 1; i < len(seq); i++ {
			sequencePrefixes[seq[:i]] = struct{}{}
		}
	}
}

// matchSequence looks for an exact or partial match of pending against sequenceMap. needMore is true when
// pending is a strict prefix of some known sequence and the caller should wait for more bytes before deciding.
func matchSequence(pending []byte) (code pager.KeyCode, length int, ok bool, needMore bool) {
	if code, ok := sequenceMap[string(pending)]; ok {
		return code, len(pending), true, false
	}
	if _, isPrefix := sequencePrefixes[string(pending)]; isPrefix {
		return 0, 0, false, true
	}
	return 0, 0, false, false
}

func controlByteToKey(b byte) (pager.Key, bool) {
	switch b {
	case '\r', '\n':
		return pager.Key{Code: pager.KeyEnter}, true
	case '\t':
		return pager.Key{Code: pager.KeyTab}, true
	case 0x7f:
		return pager.Key{Code: pager.KeyBackspace}, true
	case 0x03:
		return pager.Key{Code: pager.KeyCtrlC}, true
	case 0x04:
		return pager.Key{Code: pager.KeyCtrlD}, true
	case 0x08:
		return pager.Key{Code: pager.KeyCtrlH}, true
	case 0x15:
		return pager.Key{Code: pager.KeyCtrlU}, true
	case 0x0c:
		return pager.Key{Code: pager.KeyCtrlL}, true
	default:
		return pager.Key{}, false
	}
}

// KeyDecoder turns a raw byte stream from the terminal into pager.Key values, one escape sequence or UTF-8
// rune at a time. It buffers incomplete multi-byte sequences across Feed calls, with no paste-bracket
// handling.
type KeyDecoder struct {
	pending []byte
}

// Feed appends newly read bytes and returns every fully decoded key found so far. Bytes that form the prefix
// of a known escape sequence are held back until Feed sees enough to resolve them.
func (d *KeyDecoder) Feed(data []byte) []pager.Key {
	d.pending = append(d.pending, data...)

	var keys []pager.Key
	for len(d.pending) > 0 {
		b := d.pending[0]

		if b == 0x1b {
			if len(d.pending) == 1 {
				break // might be the start of a sequence; wait for more
			}
			code, length, ok, needMore := matchSequence(d.pending)
			if needMore {
				break
			}
			if ok {
				keys = append(keys, pager.Key{Code: code})
				d.pending = d.pending[length:]
				continue
			}
			// Bare ESC, or an unrecognized escape sequence: emit Escape and drop just the ESC byte.
			keys = append(keys, pager.Key{Code: pager.KeyEscape})
			d.pending = d.pending[1:]
			continue
		}

		if b < 0x20 || b == 0x7f {
			if key, ok := controlByteToKey(b); ok {
				keys = append(keys, key)
			}
			d.pending = d.pending[1:]
			continue
		}

		if !utf8.FullRune(d.pending) {
			break
		}
		r, size := utf8.DecodeRune(d.pending)
		if r == utf8.RuneError && size <= 1 {
			d.pending = d.pending[1:]
			continue
		}
		keys = append(keys, pager.Key{Code: pager.KeyRune, Rune: r})
		d.pending = d.pending[size:]
	}
	return keys
}

// KeyReader runs a background read loop over in, decoding bytes into pager.Key values delivered on Keys().
// A single channel carries all events (no paste mode, no mouse events) since this pager never enables mouse
// reporting.
type KeyReader struct {
	keys chan pager.Key
	done chan struct{}
}

// StartKeyReader begins reading from in on a background goroutine. The goroutine exits when in returns an
// error (typically because the terminal was closed during shutdown).
func StartKeyReader(in io.Reader) *KeyReader {
	r := &KeyReader{
		keys: make(chan pager.Key, 64),
		done: make(chan struct{}),
	}
	go r.run(in)
	return r
}

func (r *KeyReader) run(in io.Reader) {
	defer close(r.done)
	br := bufio.NewReaderSize(in, 1024)
	var dec KeyDecoder
	buf := make([]byte, 256)
	for {
		n, err := br.Read(buf)
		if n > 0 {
			for _, k := range dec.Feed(buf[:n]) {
				r.keys <- k
			}
		}
		if err != nil {
			return
		}
	}
}

// Keys returns the channel of decoded key events. It is closed (via Done) when the underlying reader fails;
// callers should select on both.
func (r *KeyReader) Keys() <-chan pager.Key {
	return r.keys
}

// Done is closed once the background read loop has exited.
func (r *KeyReader) Done() <-chan struct{} {
	return r.done
}
