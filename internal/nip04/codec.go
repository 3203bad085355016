// Package nip04 implements the legacy encrypted direct message content
// format: AES-256-CBC under an ECDH-derived key, wrapped as
// base64(ciphertext) + "?iv=" + base64(iv).
// https://github.com/nostr-protocol/nips/blob/master/04.md
package nip04

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

const (
	// IVSize is the AES-CBC initialization vector size.
	IVSize = 16

	blockSize = 16
	ivMarker  = "?iv="
)

// Codec encrypts and decrypts direct message payloads within a fixed
// plaintext budget. The scratch buffer is sized once at construction and
// never grows; a Codec is single-owner, like a Builder, but independent
// codecs may run in parallel.
type Codec struct {
	maxPlaintext int
	scratch      []byte
}

// NewCodec returns a codec for plaintexts up to maxPlaintext bytes.
func NewCodec(maxPlaintext int) *Codec {
	return &Codec{
		maxPlaintext: maxPlaintext,
		// Room for the worst case padded ciphertext plus the base64
		// DecodedLen ceiling, which rounds up past the '=' padding.
		scratch: make([]byte, maxPlaintext+2*blockSize),
	}
}

// EncryptedLen returns the wire-format size of an n-byte plaintext.
func EncryptedLen(n int) int {
	padded := n + blockSize - n%blockSize
	return base64.StdEncoding.EncodedLen(padded) + len(ivMarker) +
		base64.StdEncoding.EncodedLen(IVSize)
}

// Encrypt seals plaintext under key/iv and writes the wire string into
// dst, returning the byte count. PKCS#7 padding always adds at least one
// byte. Fails with LengthError when the plaintext exceeds the codec's
// budget and BufferTooSmallError when dst cannot hold the wire string.
// The IV must come from a random source and never be reused with the
// same key.
func (c *Codec) Encrypt(dst []byte, plaintext []byte, key [32]byte, iv [IVSize]byte) (int, error) {
	if len(plaintext) > c.maxPlaintext {
		return 0, &LengthError{Limit: c.maxPlaintext, Have: len(plaintext)}
	}
	need := EncryptedLen(len(plaintext))
	if need > len(dst) {
		return 0, &BufferTooSmallError{Needed: need, Cap: len(dst)}
	}

	pad := blockSize - len(plaintext)%blockSize
	ct := c.scratch[:len(plaintext)+pad]
	copy(ct, plaintext)
	for i := len(plaintext); i < len(ct); i++ {
		ct[i] = byte(pad)
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return 0, err
	}
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(ct, ct)

	n := 0
	base64.StdEncoding.Encode(dst[n:], ct)
	n += base64.StdEncoding.EncodedLen(len(ct))
	n += copy(dst[n:], ivMarker)
	base64.StdEncoding.Encode(dst[n:], iv[:])
	n += base64.StdEncoding.EncodedLen(IVSize)
	return n, nil
}

// Decrypt opens a wire string and writes the plaintext into dst,
// returning the byte count. Malformed framing or base64 fails with
// ErrEncoding; inconsistent padding fails with ErrPadding after the
// whole final block has been examined, so decrypt time does not depend
// on where the padding check fails.
func (c *Codec) Decrypt(dst []byte, wire string, key [32]byte) (int, error) {
	idx := strings.Index(wire, ivMarker)
	if idx < 0 {
		return 0, ErrEncoding
	}
	ctB64, ivB64 := wire[:idx], wire[idx+len(ivMarker):]

	if len(ivB64) != base64.StdEncoding.EncodedLen(IVSize) {
		return 0, ErrEncoding
	}
	var ivBuf [IVSize + 2]byte // DecodedLen rounds up past the padding
	var iv [IVSize]byte
	ivLen, err := base64.StdEncoding.Decode(ivBuf[:], []byte(ivB64))
	if err != nil || ivLen != IVSize {
		return 0, ErrEncoding
	}
	copy(iv[:], ivBuf[:IVSize])

	if base64.StdEncoding.DecodedLen(len(ctB64)) > len(c.scratch) {
		return 0, &LengthError{Limit: len(c.scratch), Have: base64.StdEncoding.DecodedLen(len(ctB64))}
	}
	ctLen, err := base64.StdEncoding.Decode(c.scratch, []byte(ctB64))
	if err != nil {
		return 0, ErrEncoding
	}
	if ctLen == 0 || ctLen%blockSize != 0 {
		return 0, ErrEncoding
	}
	ct := c.scratch[:ctLen]

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return 0, err
	}
	cipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(ct, ct)

	pad, ok := checkPadding(ct)
	if !ok {
		return 0, ErrPadding
	}
	n := ctLen - pad
	if n > len(dst) {
		return 0, &BufferTooSmallError{Needed: n, Cap: len(dst)}
	}
	copy(dst, ct[:n])
	return n, nil
}

// checkPadding validates PKCS#7 padding over the whole final block in
// constant time: a single comparison pass, no early exit, so the failing
// byte position is not observable through timing.
func checkPadding(ct []byte) (int, bool) {
	last := int(ct[len(ct)-1])
	valid := subtle.ConstantTimeLessOrEq(1, last) &
		subtle.ConstantTimeLessOrEq(last, blockSize)
	// Use a safe in-range pad length while validity is still undecided.
	pad := subtle.ConstantTimeSelect(valid, last, 1)

	final := ct[len(ct)-blockSize:]
	var mismatch byte
	for i := 0; i < blockSize; i++ {
		inPad := subtle.ConstantTimeLessOrEq(blockSize-pad, i)
		mismatch |= byte(inPad) & (final[i] ^ byte(last))
	}
	valid &= subtle.ConstantTimeByteEq(mismatch, 0)
	return pad, valid == 1
}
