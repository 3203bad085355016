package kinds

import (
	"github.com/Shugur-Network/quill/internal/crypto"
	"github.com/Shugur-Network/quill/internal/event"
)

// IOTPayload builds and signs a kind 5732 sensor/telemetry event. The
// content is the device's payload verbatim; an optional device tag
// ("d", deviceID) lets consumers address a specific sensor.
func IOTPayload(sk [crypto.SecretKeySize]byte, content, deviceID string, createdAt uint64, lim event.Limits) (event.Event, error) {
	b, err := event.NewBuilder(sk, lim)
	if err != nil {
		return event.Event{}, err
	}
	if err := b.SetKind(event.KindIOTPayload); err != nil {
		return event.Event{}, err
	}
	if err := b.SetCreatedAt(createdAt); err != nil {
		return event.Event{}, err
	}
	if deviceID != "" {
		if err := b.AddTag("d", deviceID); err != nil {
			return event.Event{}, err
		}
	}
	if err := b.SetContent(content); err != nil {
		return event.Event{}, err
	}
	return finish(b, event.KindIOTPayload)
}
