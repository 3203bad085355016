package crypto_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/Shugur-Network/quill/internal/crypto"
	"github.com/stretchr/testify/require"
)

const (
	seckeyAHex = "a5084b35a58e3e1a26f5efb46cb9dbada73191526aa6d11bccb590cbeb2d8fa3"
	pubkeyAHex = "098ef66bce60dd4cf10b4ae5949d1ec6dd777ddeb4bc49b47f97275a127a63cf"
	seckeyBHex = "aecb67d55da9b658cd419013d7026f30ee23c5c5b032948e84e8ae523b559f92"
)

func key32(t *testing.T, h string) [32]byte {
	t.Helper()
	var k [32]byte
	b, err := hex.DecodeString(h)
	require.NoError(t, err)
	require.Len(t, b, 32)
	copy(k[:], b)
	return k
}

func TestDerivePublicKey(t *testing.T) {
	pub, err := crypto.DerivePublicKey(key32(t, seckeyAHex))
	require.NoError(t, err)
	require.Equal(t, pubkeyAHex, hex.EncodeToString(pub[:]))
}

func TestInvalidSecretKeys(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		var zero [32]byte
		_, err := crypto.DerivePublicKey(zero)
		var keyErr *crypto.KeyError
		require.ErrorAs(t, err, &keyErr)
	})

	t.Run("overflows curve order", func(t *testing.T) {
		var sk [32]byte
		for i := range sk {
			sk[i] = 0xff
		}
		_, err := crypto.DerivePublicKey(sk)
		var keyErr *crypto.KeyError
		require.ErrorAs(t, err, &keyErr)

		_, err = crypto.Sign([32]byte{1}, sk)
		require.ErrorAs(t, err, &keyErr)

		_, err = crypto.SharedSecret(sk, key32(t, pubkeyAHex))
		require.ErrorAs(t, err, &keyErr)
	})
}

func TestSignAndVerify(t *testing.T) {
	sk := key32(t, seckeyAHex)
	pub, err := crypto.DerivePublicKey(sk)
	require.NoError(t, err)

	digest := crypto.Digest([]byte("payload"))
	sig, err := crypto.Sign(digest, sk)
	require.NoError(t, err)

	require.True(t, crypto.Verify(digest, pub, sig))

	otherDigest := crypto.Digest([]byte("other payload"))
	require.False(t, crypto.Verify(otherDigest, pub, sig))

	tampered := sig
	tampered[0] ^= 0x01
	require.False(t, crypto.Verify(digest, pub, tampered))

	wrongPub, err := crypto.DerivePublicKey(key32(t, seckeyBHex))
	require.NoError(t, err)
	require.False(t, crypto.Verify(digest, wrongPub, sig))
}

func TestSignDeterministic(t *testing.T) {
	sk := key32(t, seckeyAHex)
	digest := crypto.Digest([]byte("payload"))

	sig1, err := crypto.Sign(digest, sk)
	require.NoError(t, err)
	sig2, err := crypto.Sign(digest, sk)
	require.NoError(t, err)
	require.Equal(t, sig1, sig2)
}

func TestVerifyMalformedInputs(t *testing.T) {
	digest := crypto.Digest([]byte("payload"))

	// x-coordinate not on the curve
	var badPub [32]byte
	for i := range badPub {
		badPub[i] = 0xff
	}
	require.False(t, crypto.Verify(digest, badPub, [64]byte{}))

	pub, err := crypto.DerivePublicKey(key32(t, seckeyAHex))
	require.NoError(t, err)
	require.False(t, crypto.Verify(digest, pub, [64]byte{}))
}

func TestSharedSecretSymmetry(t *testing.T) {
	skA, skB := key32(t, seckeyAHex), key32(t, seckeyBHex)
	pubA, err := crypto.DerivePublicKey(skA)
	require.NoError(t, err)
	pubB, err := crypto.DerivePublicKey(skB)
	require.NoError(t, err)

	ab, err := crypto.SharedSecret(skA, pubB)
	require.NoError(t, err)
	ba, err := crypto.SharedSecret(skB, pubA)
	require.NoError(t, err)
	require.Equal(t, ab, ba)
	require.False(t, bytes.Equal(ab[:], make([]byte, 32)))
}

func TestDigest(t *testing.T) {
	// FIPS 180-4 "abc" vector
	d := crypto.Digest([]byte("abc"))
	require.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		hex.EncodeToString(d[:]))
}
