package crypto

import (
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SharedSecret computes the NIP-04 symmetric key between sk and the peer's
// x-only public key: the raw x-coordinate of the ECDH point, with no key
// derivation step (legacy scheme). Both directions of a conversation derive
// the same key.
func SharedSecret(sk [SecretKeySize]byte, theirPubkey [PublicKeySize]byte) ([32]byte, error) {
	var secret [32]byte
	priv, err := secretKey("shared_secret", sk)
	if err != nil {
		return secret, err
	}
	// Lift the x-only key to the even-Y point, as BIP-340 defines it.
	compressed := make([]byte, 0, 33)
	compressed = append(compressed, secp256k1.PubKeyFormatCompressedEven)
	compressed = append(compressed, theirPubkey[:]...)
	pub, err := secp256k1.ParsePubKey(compressed)
	if err != nil {
		return secret, keyErr("shared_secret", "peer public key is not on the curve")
	}
	copy(secret[:], secp256k1.GenerateSharedSecret(priv, pub))
	return secret, nil
}
