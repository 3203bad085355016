package kinds

import (
	"github.com/Shugur-Network/quill/internal/crypto"
	"github.com/Shugur-Network/quill/internal/event"
)

// Custom builds and signs an event of an arbitrary kind with no shape
// requirements beyond the configured limits.
func Custom(sk [crypto.SecretKeySize]byte, k event.Kind, content string, createdAt uint64, lim event.Limits, tags ...event.Tag) (event.Event, error) {
	b, err := event.NewBuilder(sk, lim)
	if err != nil {
		return event.Event{}, err
	}
	if err := b.SetKind(k); err != nil {
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
	return finish(b, k)
}
