package event_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/Shugur-Network/quill/internal/event"
	"github.com/stretchr/testify/require"
)

const (
	testPubkeyHex = "098ef66bce60dd4cf10b4ae5949d1ec6dd777ddeb4bc49b47f97275a127a63cf"

	// Known-answer ids for events signed with the matching secret key.
	noteID       = "b515da91ac5df638fae0a6e658e03acc1dda6152dd2107d02d5702ccfcf927e8"
	taggedNoteID = "f5a693c9a4add3739a4186c0422f925981f75cb1f7a0adfc48852e54973415a6"
)

func testPubkey(t *testing.T) [32]byte {
	t.Helper()
	var pk [32]byte
	b, err := hex.DecodeString(testPubkeyHex)
	require.NoError(t, err)
	copy(pk[:], b)
	return pk
}

func TestCanonicalPreimage(t *testing.T) {
	pk := testPubkey(t)
	buf := make([]byte, 1536)

	n, err := event.Canonical(buf, pk, 1686880020, event.KindShortTextNote, nil, "esptest")
	require.NoError(t, err)

	want := `[0,"` + testPubkeyHex + `",1686880020,1,[],"esptest"]`
	require.Equal(t, want, string(buf[:n]))

	digest := sha256.Sum256(buf[:n])
	require.Equal(t, noteID, hex.EncodeToString(digest[:]))
}

func TestCanonicalWithTags(t *testing.T) {
	pk := testPubkey(t)
	buf := make([]byte, 1536)

	tags := []event.Tag{{"l", "bitcoin"}}
	n, err := event.Canonical(buf, pk, 1686880020, event.KindShortTextNote, tags, "esptest")
	require.NoError(t, err)

	want := `[0,"` + testPubkeyHex + `",1686880020,1,[["l","bitcoin"]],"esptest"]`
	require.Equal(t, want, string(buf[:n]))

	digest := sha256.Sum256(buf[:n])
	require.Equal(t, taggedNoteID, hex.EncodeToString(digest[:]))
}

func TestCanonicalEscaping(t *testing.T) {
	pk := testPubkey(t)
	buf := make([]byte, 1536)

	cases := []struct {
		name    string
		content string
		wantSub string
	}{
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "line1\nline2", `"line1\nline2"`},
		{"tab", "a\tb", `"a\tb"`},
		{"carriage_return", "a\rb", `"a\rb"`},
		{"backspace", "a\bb", `"a\bb"`},
		{"form_feed", "a\fb", `"a\fb"`},
		{"control", "a\x01b", "\"a\\u0001b\""},
		{"unicode_passthrough", "héllo ✏️", `"héllo ✏️"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := event.Canonical(buf, pk, 1, event.KindShortTextNote, nil, tc.content)
			require.NoError(t, err)
			require.Contains(t, string(buf[:n]), tc.wantSub)
		})
	}
}

func TestCanonicalDeterministic(t *testing.T) {
	pk := testPubkey(t)
	a := make([]byte, 1536)
	b := make([]byte, 1536)

	tags := []event.Tag{{"l", "bitcoin"}, {"t", "test"}}
	n1, err := event.Canonical(a, pk, 1686880020, event.KindShortTextNote, tags, "esptest")
	require.NoError(t, err)
	n2, err := event.Canonical(b, pk, 1686880020, event.KindShortTextNote, tags, "esptest")
	require.NoError(t, err)
	require.Equal(t, string(a[:n1]), string(b[:n2]))
}

func TestCanonicalBufferTooSmall(t *testing.T) {
	pk := testPubkey(t)
	buf := make([]byte, 32)

	_, err := event.Canonical(buf, pk, 1686880020, event.KindShortTextNote, nil, "esptest")
	var tooSmall *event.BufferTooSmallError
	require.ErrorAs(t, err, &tooSmall)
	require.Equal(t, 32, tooSmall.Cap)
}
