package kinds

import (
	"github.com/Shugur-Network/quill/internal/crypto"
	"github.com/Shugur-Network/quill/internal/event"
)

// ShortNote builds and signs a kind 1 text note. Tags are optional and
// added in order; every bound in lim applies before any cryptographic
// work happens.
func ShortNote(sk [crypto.SecretKeySize]byte, content string, createdAt uint64, lim event.Limits, tags ...event.Tag) (event.Event, error) {
	b, err := event.NewBuilder(sk, lim)
	if err != nil {
		return event.Event{}, err
	}
	if err := b.SetKind(event.KindShortTextNote); err != nil {
		return event.Event{}, err
	}
	if err := b.SetCreatedAt(createdAt); err != nil {
		return event.Event{}, err
	}
	for _, t := range tags {
		if err := b.AddTag(t...); err != nil {
			return event.Event{}, err
		}
	}
	if err := b.SetContent(content); err != nil {
		return event.Event{}, err
	}
	return finish(b, event.KindShortTextNote)
}
