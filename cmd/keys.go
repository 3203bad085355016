package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/Shugur-Network/quill/internal/crypto"
	"github.com/spf13/cobra"
)

// resolveSecretKey loads the signing key, in order of precedence:
// --key flag, --key-file flag, the configured key file, then the
// QUILL_SECKEY environment variable.
func resolveSecretKey(cmd *cobra.Command) ([crypto.SecretKeySize]byte, error) {
	var sk [crypto.SecretKeySize]byte

	if raw, _ := cmd.Flags().GetString("key"); raw != "" {
		return decodeSecretKey(raw)
	}

	keyFile, _ := cmd.Flags().GetString("key-file")
	if keyFile == "" && cfg != nil {
		keyFile = cfg.Signer.KeyFile
	}
	if keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return sk, fmt.Errorf("read key file: %w", err)
		}
		return decodeSecretKey(strings.TrimSpace(string(data)))
	}

	if raw := os.Getenv("QUILL_SECKEY"); raw != "" {
		return decodeSecretKey(raw)
	}

	return sk, fmt.Errorf("no signing key: pass --key, --key-file, or set QUILL_SECKEY")
}

func decodeSecretKey(raw string) ([crypto.SecretKeySize]byte, error) {
	var sk [crypto.SecretKeySize]byte
	b, err := hex.DecodeString(raw)
	if err != nil || len(b) != crypto.SecretKeySize {
		return sk, fmt.Errorf("signing key must be %d hex-encoded bytes", crypto.SecretKeySize)
	}
	copy(sk[:], b)
	return sk, nil
}

func decodePublicKey(raw string) ([crypto.PublicKeySize]byte, error) {
	var pk [crypto.PublicKeySize]byte
	b, err := hex.DecodeString(raw)
	if err != nil || len(b) != crypto.PublicKeySize {
		return pk, fmt.Errorf("public key must be %d hex-encoded bytes", crypto.PublicKeySize)
	}
	copy(pk[:], b)
	return pk, nil
}
