package nip04

import "fmt"

// CodecError is a decryption failure: the input was malformed or tampered
// with. The two causes carry distinct codes so tests and logs can tell
// them apart, but the application layer must treat any CodecError as one
// opaque failure — never branch on the cause, never retry.
type CodecError struct {
	code string
}

func (e *CodecError) Error() string { return "nip04: " + e.code }

var (
	// ErrEncoding: the wire string is missing the "?iv=" delimiter, is
	// not valid base64, or has impossible ciphertext/IV dimensions.
	ErrEncoding = &CodecError{code: "malformed message encoding"}
	// ErrPadding: the decrypted padding is inconsistent. The check runs
	// over the whole final block in constant time.
	ErrPadding = &CodecError{code: "invalid message padding"}
)

// LengthError reports a plaintext or ciphertext that exceeds the codec's
// bounded buffer capacity.
type LengthError struct {
	Limit int
	Have  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("nip04: message length %d exceeds capacity %d", e.Have, e.Limit)
}

// BufferTooSmallError reports a caller-supplied output buffer that cannot
// hold the result. The caller must retry with a larger buffer.
type BufferTooSmallError struct {
	Needed int
	Cap    int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("nip04: output buffer too small: need %d, have %d", e.Needed, e.Cap)
}
