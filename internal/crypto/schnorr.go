package crypto

import (
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Key and signature sizes, in bytes. Public keys are BIP-340 x-only.
const (
	SecretKeySize = 32
	PublicKeySize = 32
	SignatureSize = 64
)

// secretKey validates sk as a secp256k1 scalar and returns the private key.
// Zero and values >= the curve order are rejected.
func secretKey(op string, sk [SecretKeySize]byte) (*secp256k1.PrivateKey, error) {
	var scalar secp256k1.ModNScalar
	overflow := scalar.SetBytes(&sk)
	if overflow != 0 {
		return nil, keyErr(op, "secret key overflows curve order")
	}
	if scalar.IsZero() {
		return nil, keyErr(op, "secret key is zero")
	}
	return secp256k1.NewPrivateKey(&scalar), nil
}

// DerivePublicKey returns the x-only public key for sk.
func DerivePublicKey(sk [SecretKeySize]byte) ([PublicKeySize]byte, error) {
	var pub [PublicKeySize]byte
	priv, err := secretKey("derive", sk)
	if err != nil {
		return pub, err
	}
	copy(pub[:], schnorr.SerializePubKey(priv.PubKey()))
	return pub, nil
}

// Sign produces a BIP-340 schnorr signature over digest. Nonces are derived
// deterministically from the key and digest (RFC 6979), so the same inputs
// always yield the same signature.
func Sign(digest [DigestSize]byte, sk [SecretKeySize]byte) ([SignatureSize]byte, error) {
	var out [SignatureSize]byte
	priv, err := secretKey("sign", sk)
	if err != nil {
		return out, err
	}
	sig, err := schnorr.Sign(priv, digest[:])
	if err != nil {
		return out, keyErr("sign", err.Error())
	}
	copy(out[:], sig.Serialize())
	return out, nil
}

// Verify reports whether sig is a valid signature over digest for pubkey.
// It never returns an error; any malformed input simply verifies false.
func Verify(digest [DigestSize]byte, pubkey [PublicKeySize]byte, sig [SignatureSize]byte) bool {
	pk, err := schnorr.ParsePubKey(pubkey[:])
	if err != nil {
		return false
	}
	s, err := schnorr.ParseSignature(sig[:])
	if err != nil {
		return false
	}
	return s.Verify(digest[:], pk)
}
