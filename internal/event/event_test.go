package event_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Shugur-Network/quill/internal/event"
	nostr "github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/require"
)

func buildSignedNote(t *testing.T, content string, tags ...event.Tag) event.Event {
	t.Helper()
	b := newTestBuilder(t)
	require.NoError(t, b.SetCreatedAt(1686880020))
	for _, tag := range tags {
		require.NoError(t, b.AddTag(tag...))
	}
	require.NoError(t, b.SetContent(content))
	require.NoError(t, b.Serialize())
	require.NoError(t, b.Hash())
	require.NoError(t, b.Sign())
	ev, err := b.Finish()
	require.NoError(t, err)
	return ev
}

func TestAppendJSONKeyOrder(t *testing.T) {
	ev := buildSignedNote(t, "esptest", event.Tag{"l", "bitcoin"})
	buf := make([]byte, 2048)
	n, err := ev.AppendJSON(buf)
	require.NoError(t, err)

	out := string(buf[:n])
	keys := []string{`"content"`, `"created_at"`, `"id"`, `"kind"`, `"pubkey"`, `"sig"`, `"tags"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(out, k)
		require.Greater(t, idx, last, "key %s out of order in %s", k, out)
		last = idx
	}
}

// The emitted JSON must be accepted verbatim by an independent
// implementation, with the same id and a valid signature.
func TestAppendJSONCrossCheck(t *testing.T) {
	ev := buildSignedNote(t, `mixed "content"`+"\nwith\tescapes", event.Tag{"l", "bitcoin"})
	buf := make([]byte, 2048)
	n, err := ev.AppendJSON(buf)
	require.NoError(t, err)

	var theirs nostr.Event
	require.NoError(t, json.Unmarshal(buf[:n], &theirs))
	require.Equal(t, ev.IDHex(), theirs.ID)
	require.Equal(t, ev.IDHex(), theirs.GetID())

	ok, err := theirs.CheckSignature()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAppendEnvelope(t *testing.T) {
	ev := buildSignedNote(t, "esptest")
	buf := make([]byte, 2048)

	n, err := ev.AppendEnvelope(buf, event.FrameEvent)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(buf[:n]), `["EVENT",{`))
	require.True(t, strings.HasSuffix(string(buf[:n]), `}]`))

	n, err = ev.AppendEnvelope(buf, event.FrameAuth)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(buf[:n]), `["AUTH",{`))
}

func TestAppendJSONBufferTooSmall(t *testing.T) {
	ev := buildSignedNote(t, "esptest")
	var tooSmall *event.BufferTooSmallError
	_, err := ev.AppendJSON(make([]byte, 64))
	require.ErrorAs(t, err, &tooSmall)
}

func TestVerify(t *testing.T) {
	ev := buildSignedNote(t, "esptest")
	scratch := make([]byte, 1536)

	ok, err := ev.Verify(scratch)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = ev.Verify(make([]byte, 16))
	var tooSmall *event.BufferTooSmallError
	require.ErrorAs(t, err, &tooSmall)
}

func TestTagAccessors(t *testing.T) {
	ev := buildSignedNote(t, "esptest",
		event.Tag{"l", "bitcoin"},
		event.Tag{"l", "nostr", "extra"},
		event.Tag{"t", "test"},
	)

	require.Equal(t, "bitcoin", ev.FirstTagValue("l"))
	require.Equal(t, "test", ev.FirstTagValue("t"))
	require.Equal(t, "", ev.FirstTagValue("missing"))

	vals := ev.TagValues("l")
	require.Len(t, vals, 2)
	require.Equal(t, []string{"bitcoin"}, vals[0])
	require.Equal(t, []string{"nostr", "extra"}, vals[1])
}

func TestKindClasses(t *testing.T) {
	require.True(t, event.KindIOTPayload.IsRegular())
	require.True(t, event.Kind(10002).IsReplaceable())
	require.True(t, event.KindClientAuthentication.IsEphemeral())
	require.True(t, event.Kind(30023).IsParameterizedReplaceable())
	require.False(t, event.KindEncryptedDirectMessage.IsEphemeral())
}
