package crypto

import "fmt"

// KeyError reports malformed or invalid key material. It is fatal to the
// current operation; a default key is never substituted.
type KeyError struct {
	Op     string // "derive", "sign", "shared_secret", ...
	Reason string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("crypto: %s: %s", e.Op, e.Reason)
}

func keyErr(op, reason string) *KeyError {
	return &KeyError{Op: op, Reason: reason}
}
