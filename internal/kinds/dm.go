package kinds

import (
	"encoding/hex"
	"fmt"

	"github.com/Shugur-Network/quill/internal/crypto"
	"github.com/Shugur-Network/quill/internal/event"
	"github.com/Shugur-Network/quill/internal/metrics"
	"github.com/Shugur-Network/quill/internal/nip04"
)

// DirectMessage builds and signs a kind 4 encrypted direct message. The
// plaintext is sealed with the NIP-04 codec under the ECDH shared secret
// with the recipient, and the recipient is referenced with a "p" tag.
// The iv must come from a random source and never repeat for a key pair.
//
// The sealed wire string, not the plaintext, must fit the content budget
// in lim; base64 and padding overhead make it roughly 4/3 of the
// plaintext plus 30 bytes.
func DirectMessage(sk [crypto.SecretKeySize]byte, recipient [crypto.PublicKeySize]byte, plaintext string, iv [nip04.IVSize]byte, createdAt uint64, lim event.Limits) (event.Event, error) {
	secret, err := crypto.SharedSecret(sk, recipient)
	if err != nil {
		return event.Event{}, err
	}
	codec := nip04.NewCodec(lim.MaxContentLen)
	wire := make([]byte, lim.MaxContentLen)
	n, err := codec.Encrypt(wire, []byte(plaintext), secret, iv)
	if err != nil {
		metrics.CodecOps.WithLabelValues("encrypt", "error").Inc()
		return event.Event{}, err
	}
	metrics.CodecOps.WithLabelValues("encrypt", "ok").Inc()

	b, err := event.NewBuilder(sk, lim)
	if err != nil {
		return event.Event{}, err
	}
	if err := b.SetKind(event.KindEncryptedDirectMessage); err != nil {
		return event.Event{}, err
	}
	if err := b.SetCreatedAt(createdAt); err != nil {
		return event.Event{}, err
	}
	if err := b.AddTag("p", hex.EncodeToString(recipient[:])); err != nil {
		return event.Event{}, err
	}
	if err := b.SetContent(string(wire[:n])); err != nil {
		return event.Event{}, err
	}
	return finish(b, event.KindEncryptedDirectMessage)
}

// OpenDirectMessage decrypts the content of a kind 4 event addressed to
// or authored by the holder of sk. The ECDH peer is the event author
// unless we authored the event ourselves, in which case it is the "p"
// tag recipient (so both copies of a conversation open with one key).
func OpenDirectMessage(sk [crypto.SecretKeySize]byte, ev *event.Event, lim event.Limits) (string, error) {
	if ev.Kind() != event.KindEncryptedDirectMessage {
		return "", fmt.Errorf("cannot open a kind %d event as a direct message", ev.Kind())
	}
	ourPub, err := crypto.DerivePublicKey(sk)
	if err != nil {
		return "", err
	}
	peer := ev.PubKey()
	if peer == ourPub {
		peerHex := ev.FirstTagValue("p")
		decoded, err := hex.DecodeString(peerHex)
		if err != nil || len(decoded) != crypto.PublicKeySize {
			return "", fmt.Errorf("direct message has no valid recipient 'p' tag")
		}
		copy(peer[:], decoded)
	}
	secret, err := crypto.SharedSecret(sk, peer)
	if err != nil {
		return "", err
	}
	codec := nip04.NewCodec(lim.MaxContentLen)
	plain := make([]byte, lim.MaxContentLen)
	n, err := codec.Decrypt(plain, ev.Content(), secret)
	if err != nil {
		metrics.CodecOps.WithLabelValues("decrypt", "error").Inc()
		return "", err
	}
	metrics.CodecOps.WithLabelValues("decrypt", "ok").Inc()
	return string(plain[:n]), nil
}
