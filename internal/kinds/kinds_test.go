package kinds_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/Shugur-Network/quill/internal/crypto"
	"github.com/Shugur-Network/quill/internal/event"
	"github.com/Shugur-Network/quill/internal/kinds"
	"github.com/Shugur-Network/quill/internal/nip04"
	"github.com/stretchr/testify/require"
)

const (
	seckeyAHex = "a5084b35a58e3e1a26f5efb46cb9dbada73191526aa6d11bccb590cbeb2d8fa3"
	pubkeyAHex = "098ef66bce60dd4cf10b4ae5949d1ec6dd777ddeb4bc49b47f97275a127a63cf"
	seckeyBHex = "aecb67d55da9b658cd419013d7026f30ee23c5c5b032948e84e8ae523b559f92"

	noteID = "b515da91ac5df638fae0a6e658e03acc1dda6152dd2107d02d5702ccfcf927e8"
	authID = "762b497576a41636c41eb5c74c0eb80894ecb2444c3e5117da0d00d9870d914a"
)

func key32(t *testing.T, h string) [32]byte {
	t.Helper()
	var k [32]byte
	b, err := hex.DecodeString(h)
	require.NoError(t, err)
	copy(k[:], b)
	return k
}

func TestShortNote(t *testing.T) {
	ev, err := kinds.ShortNote(key32(t, seckeyAHex), "esptest", 1686880020, event.DefaultLimits())
	require.NoError(t, err)

	require.Equal(t, event.KindShortTextNote, ev.Kind())
	require.Equal(t, noteID, ev.IDHex())
	require.Equal(t, pubkeyAHex, ev.PubKeyHex())

	ok, err := ev.Verify(make([]byte, 1536))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestShortNoteWithTags(t *testing.T) {
	ev, err := kinds.ShortNote(key32(t, seckeyAHex), "esptest", 1686880020,
		event.DefaultLimits(), event.Tag{"l", "bitcoin"})
	require.NoError(t, err)
	require.Equal(t,
		"f5a693c9a4add3739a4186c0422f925981f75cb1f7a0adfc48852e54973415a6",
		ev.IDHex())
}

func TestShortNoteOverBudget(t *testing.T) {
	lim := event.DefaultLimits()
	_, err := kinds.ShortNote(key32(t, seckeyAHex),
		strings.Repeat("x", lim.MaxContentLen+1), 1686880020, lim)
	var capErr *event.CapacityError
	require.ErrorAs(t, err, &capErr)
}

func TestAuthChallenge(t *testing.T) {
	ev, err := kinds.AuthChallenge(key32(t, seckeyAHex),
		"wss://relay.damus.io", "challenge_me", 1691712199, event.DefaultLimits())
	require.NoError(t, err)

	require.Equal(t, event.KindClientAuthentication, ev.Kind())
	require.Equal(t, authID, ev.IDHex())
	require.Equal(t, "", ev.Content())
	require.Equal(t, "challenge_me", ev.FirstTagValue("challenge"))
	require.Equal(t, "wss://relay.damus.io", ev.FirstTagValue("relay"))
}

func TestAuthChallengeRequiredFields(t *testing.T) {
	sk := key32(t, seckeyAHex)
	_, err := kinds.AuthChallenge(sk, "wss://relay.damus.io", "", 1, event.DefaultLimits())
	require.Error(t, err)
	_, err = kinds.AuthChallenge(sk, "", "challenge_me", 1, event.DefaultLimits())
	require.Error(t, err)
}

func TestIOTPayload(t *testing.T) {
	ev, err := kinds.IOTPayload(key32(t, seckeyAHex),
		`{"temp":21.5}`, "greenhouse-7", 1686880020, event.DefaultLimits())
	require.NoError(t, err)

	require.Equal(t, event.KindIOTPayload, ev.Kind())
	require.Equal(t, "greenhouse-7", ev.FirstTagValue("d"))

	ok, err := ev.Verify(make([]byte, 1536))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIOTPayloadNoDevice(t *testing.T) {
	ev, err := kinds.IOTPayload(key32(t, seckeyAHex), "raw", "", 1686880020, event.DefaultLimits())
	require.NoError(t, err)
	require.Empty(t, ev.Tags())
}

func TestCustom(t *testing.T) {
	ev, err := kinds.Custom(key32(t, seckeyAHex), event.Kind(30023), "post", 1686880020,
		event.DefaultLimits(), event.Tag{"d", "my-post"})
	require.NoError(t, err)
	require.Equal(t, event.Kind(30023), ev.Kind())

	ok, err := ev.Verify(make([]byte, 1536))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDirectMessageRoundTrip(t *testing.T) {
	skA, skB := key32(t, seckeyAHex), key32(t, seckeyBHex)
	pubB, err := crypto.DerivePublicKey(skB)
	require.NoError(t, err)
	lim := event.DefaultLimits()

	var iv [nip04.IVSize]byte
	copy(iv[:], "0123456789abcdef")

	ev, err := kinds.DirectMessage(skA, pubB, "hello from the internet", iv, 1686880020, lim)
	require.NoError(t, err)
	require.Equal(t, event.KindEncryptedDirectMessage, ev.Kind())
	require.Equal(t, hex.EncodeToString(pubB[:]), ev.FirstTagValue("p"))
	require.Contains(t, ev.Content(), "?iv=")

	ok, err := ev.Verify(make([]byte, 1536))
	require.NoError(t, err)
	require.True(t, ok)

	// The recipient opens against the author key.
	plain, err := kinds.OpenDirectMessage(skB, &ev, lim)
	require.NoError(t, err)
	require.Equal(t, "hello from the internet", plain)

	// The author opens their own copy against the "p" tag.
	plain, err = kinds.OpenDirectMessage(skA, &ev, lim)
	require.NoError(t, err)
	require.Equal(t, "hello from the internet", plain)
}

func TestDirectMessageBudget(t *testing.T) {
	skA := key32(t, seckeyAHex)
	pubB, err := crypto.DerivePublicKey(key32(t, seckeyBHex))
	require.NoError(t, err)
	lim := event.DefaultLimits()

	var iv [nip04.IVSize]byte

	// The sealed wire string must fit the content budget, so the usable
	// plaintext ceiling sits well below MaxContentLen.
	_, err = kinds.DirectMessage(skA, pubB, strings.Repeat("x", lim.MaxContentLen), iv, 1, lim)
	require.Error(t, err)
}

func TestOpenDirectMessageWrongKind(t *testing.T) {
	ev, err := kinds.ShortNote(key32(t, seckeyAHex), "not encrypted", 1, event.DefaultLimits())
	require.NoError(t, err)
	_, err = kinds.OpenDirectMessage(key32(t, seckeyBHex), &ev, event.DefaultLimits())
	require.Error(t, err)
}

func TestLabel(t *testing.T) {
	require.Equal(t, "short_note", kinds.Label(event.KindShortTextNote))
	require.Equal(t, "direct_message", kinds.Label(event.KindEncryptedDirectMessage))
	require.Equal(t, "iot", kinds.Label(event.KindIOTPayload))
	require.Equal(t, "auth", kinds.Label(event.KindClientAuthentication))
	require.Equal(t, "regular", kinds.Label(event.Kind(1234)))
	require.Equal(t, "replaceable", kinds.Label(event.Kind(10002)))
	require.Equal(t, "ephemeral", kinds.Label(event.Kind(20001)))
	require.Equal(t, "parameterized_replaceable", kinds.Label(event.Kind(30023)))
	require.Equal(t, "custom", kinds.Label(event.Kind(7)))
}
