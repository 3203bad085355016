// Package kinds provides the kind-specific event builders: thin
// configurations of the generic pipeline that pre-fill the kind and
// enforce the tag/content shape each kind requires.
package kinds

import (
	"time"

	"github.com/Shugur-Network/quill/internal/event"
	"github.com/Shugur-Network/quill/internal/metrics"
)

// Label returns the metrics label for a kind.
func Label(k event.Kind) string {
	switch k {
	case event.KindShortTextNote:
		return "short_note"
	case event.KindEncryptedDirectMessage:
		return "direct_message"
	case event.KindIOTPayload:
		return "iot"
	case event.KindClientAuthentication:
		return "auth"
	}
	switch {
	case k.IsRegular():
		return "regular"
	case k.IsReplaceable():
		return "replaceable"
	case k.IsEphemeral():
		return "ephemeral"
	case k.IsParameterizedReplaceable():
		return "parameterized_replaceable"
	}
	return "custom"
}

// finish runs the serialize -> hash -> sign -> finish tail of the
// pipeline and records metrics for it.
func finish(b *event.Builder, k event.Kind) (event.Event, error) {
	start := time.Now()
	ev, err := run(b)
	if err != nil {
		metrics.RecordBuildFailure(Label(k))
		return event.Event{}, err
	}
	metrics.BuildDuration.Observe(time.Since(start).Seconds())
	metrics.RecordEventBuilt(Label(ev.Kind()))
	return ev, nil
}

func run(b *event.Builder) (event.Event, error) {
	if err := b.Serialize(); err != nil {
		return event.Event{}, err
	}
	if err := b.Hash(); err != nil {
		return event.Event{}, err
	}
	if err := b.Sign(); err != nil {
		return event.Event{}, err
	}
	return b.Finish()
}
