package kinds

import (
	"fmt"

	"github.com/Shugur-Network/quill/internal/crypto"
	"github.com/Shugur-Network/quill/internal/event"
)

// AuthChallenge builds and signs a kind 22242 relay authentication event
// per NIP-42: empty content with a "challenge" tag echoing the relay's
// challenge string and a "relay" tag naming the relay URL.
func AuthChallenge(sk [crypto.SecretKeySize]byte, relayURL, challenge string, createdAt uint64, lim event.Limits) (event.Event, error) {
	if challenge == "" {
		return event.Event{}, fmt.Errorf("auth event requires a challenge string")
	}
	if relayURL == "" {
		return event.Event{}, fmt.Errorf("auth event requires a relay URL")
	}
	b, err := event.NewBuilder(sk, lim)
	if err != nil {
		return event.Event{}, err
	}
	if err := b.SetKind(event.KindClientAuthentication); err != nil {
		return event.Event{}, err
	}
	if err := b.SetCreatedAt(createdAt); err != nil {
		return event.Event{}, err
	}
	if err := b.AddTag("challenge", challenge); err != nil {
		return event.Event{}, err
	}
	if err := b.AddTag("relay", relayURL); err != nil {
		return event.Event{}, err
	}
	if err := b.SetContent(""); err != nil {
		return event.Event{}, err
	}
	return finish(b, event.KindClientAuthentication)
}
