package event

import (
	"encoding/hex"
	"strconv"
)

// fixedWriter appends into a caller-supplied buffer and records overflow
// instead of growing. All serialization in this package goes through it so
// that a too-small buffer surfaces as BufferTooSmallError, never as a
// silent truncation or an allocation.
type fixedWriter struct {
	buf      []byte
	n        int
	overflow bool
}

func (w *fixedWriter) writeByte(c byte) {
	if w.n >= len(w.buf) {
		w.overflow = true
		return
	}
	w.buf[w.n] = c
	w.n++
}

func (w *fixedWriter) writeString(s string) {
	if w.n+len(s) > len(w.buf) {
		w.overflow = true
		return
	}
	w.n += copy(w.buf[w.n:], s)
}

func (w *fixedWriter) writeBytes(b []byte) {
	if w.n+len(b) > len(w.buf) {
		w.overflow = true
		return
	}
	w.n += copy(w.buf[w.n:], b)
}

func (w *fixedWriter) writeUint(v uint64) {
	var scratch [20]byte
	w.writeBytes(strconv.AppendUint(scratch[:0], v, 10))
}

func (w *fixedWriter) writeHex(b []byte) {
	if w.n+hex.EncodedLen(len(b)) > len(w.buf) {
		w.overflow = true
		return
	}
	w.n += hex.Encode(w.buf[w.n:], b)
}

const hexDigits = "0123456789abcdef"

// writeEscaped writes s as a JSON string, quoted, with the exact escaping
// peers use when reconstructing the preimage: ", \, and the named control
// escapes get a backslash form, remaining bytes below 0x20 become \u00XX,
// everything else passes through verbatim. See NIP-01.
func (w *fixedWriter) writeEscaped(s string) {
	w.writeByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			w.writeString(`\"`)
		case c == '\\':
			w.writeString(`\\`)
		case c == '\b':
			w.writeString(`\b`)
		case c == '\t':
			w.writeString(`\t`)
		case c == '\n':
			w.writeString(`\n`)
		case c == '\f':
			w.writeString(`\f`)
		case c == '\r':
			w.writeString(`\r`)
		case c < 0x20:
			w.writeString(`\u00`)
			w.writeByte(hexDigits[c>>4])
			w.writeByte(hexDigits[c&0xf])
		default:
			w.writeByte(c)
		}
	}
	w.writeByte('"')
}

func (w *fixedWriter) writeTags(tags []Tag) {
	w.writeByte('[')
	for i, tag := range tags {
		if i > 0 {
			w.writeByte(',')
		}
		w.writeByte('[')
		for j, el := range tag {
			if j > 0 {
				w.writeByte(',')
			}
			w.writeEscaped(el)
		}
		w.writeByte(']')
	}
	w.writeByte(']')
}

func (w *fixedWriter) result() (int, error) {
	if w.overflow {
		return 0, &BufferTooSmallError{Cap: len(w.buf)}
	}
	return w.n, nil
}

// Canonical writes the exact byte sequence whose SHA-256 digest is the
// event id into dst:
//
//	[0,"<pubkey hex>",<created_at>,<kind>,<tags>,"<content>"]
//
// The public key is lowercase hex, integers are plain decimal, and tags
// are an array of arrays of escaped strings. Serializing the same fields
// twice produces byte-identical output. Returns the number of bytes
// written, or BufferTooSmallError when dst cannot hold the preimage.
func Canonical(dst []byte, pubkey [32]byte, createdAt uint64, kind Kind, tags []Tag, content string) (int, error) {
	w := fixedWriter{buf: dst}
	w.writeString(`[0,"`)
	w.writeHex(pubkey[:])
	w.writeString(`",`)
	w.writeUint(createdAt)
	w.writeByte(',')
	w.writeUint(uint64(kind))
	w.writeByte(',')
	w.writeTags(tags)
	w.writeByte(',')
	w.writeEscaped(content)
	w.writeByte(']')
	return w.result()
}
