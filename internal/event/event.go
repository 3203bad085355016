package event

import (
	"encoding/hex"

	"github.com/Shugur-Network/quill/internal/crypto"
)

// Event is a completed, signed, transmit-ready record. Instances are only
// produced by a Builder; all fields are fixed at signing time, so the id
// and signature can never go stale. Copying the value is cheap and safe.
type Event struct {
	id        [32]byte
	pubkey    [32]byte
	createdAt uint64
	kind      Kind
	tags      []Tag
	content   string
	sig       [64]byte
}

func (ev *Event) ID() [32]byte      { return ev.id }
func (ev *Event) PubKey() [32]byte  { return ev.pubkey }
func (ev *Event) CreatedAt() uint64 { return ev.createdAt }
func (ev *Event) Kind() Kind        { return ev.kind }
func (ev *Event) Content() string   { return ev.content }
func (ev *Event) Sig() [64]byte     { return ev.sig }

// IDHex returns the event id as lowercase hex.
func (ev *Event) IDHex() string { return hex.EncodeToString(ev.id[:]) }

// PubKeyHex returns the author key as lowercase hex.
func (ev *Event) PubKeyHex() string { return hex.EncodeToString(ev.pubkey[:]) }

// SigHex returns the signature as lowercase hex.
func (ev *Event) SigHex() string { return hex.EncodeToString(ev.sig[:]) }

// Tags returns the tags in canonical order. Callers must not mutate them.
func (ev *Event) Tags() []Tag { return ev.tags }

// TagValues returns the values of every tag with the given name, in order.
func (ev *Event) TagValues(name string) [][]string {
	var out [][]string
	for _, t := range ev.tags {
		if t.Name() == name {
			out = append(out, t[1:])
		}
	}
	return out
}

// FirstTagValue returns the first value of the first tag with the given
// name, or "" when absent.
func (ev *Event) FirstTagValue(name string) string {
	for _, t := range ev.tags {
		if t.Name() == name && len(t) > 1 {
			return t[1]
		}
	}
	return ""
}

// Verify recomputes the canonical digest from the event's current fields
// and checks the signature against it. An event whose stored id does not
// match the recomputed digest is not verified, regardless of the
// signature bytes. scratch must be able to hold the canonical preimage.
func (ev *Event) Verify(scratch []byte) (bool, error) {
	n, err := Canonical(scratch, ev.pubkey, ev.createdAt, ev.kind, ev.tags, ev.content)
	if err != nil {
		return false, err
	}
	digest := crypto.Digest(scratch[:n])
	if digest != ev.id {
		return false, nil
	}
	return crypto.Verify(digest, ev.pubkey, ev.sig), nil
}

// AppendJSON writes the flat event object into dst and returns the byte
// count. Keys are emitted in alphabetical order:
//
//	{"content":...,"created_at":...,"id":...,"kind":...,
//	 "pubkey":...,"sig":...,"tags":[...]}
//
// Fails with BufferTooSmallError when dst cannot hold the whole object.
func (ev *Event) AppendJSON(dst []byte) (int, error) {
	w := fixedWriter{buf: dst}
	ev.writeJSON(&w)
	return w.result()
}

func (ev *Event) writeJSON(w *fixedWriter) {
	w.writeString(`{"content":`)
	w.writeEscaped(ev.content)
	w.writeString(`,"created_at":`)
	w.writeUint(ev.createdAt)
	w.writeString(`,"id":"`)
	w.writeHex(ev.id[:])
	w.writeString(`","kind":`)
	w.writeUint(uint64(ev.kind))
	w.writeString(`,"pubkey":"`)
	w.writeHex(ev.pubkey[:])
	w.writeString(`","sig":"`)
	w.writeHex(ev.sig[:])
	w.writeString(`","tags":`)
	w.writeTags(ev.tags)
	w.writeByte('}')
}

// Frame is the leading label of a client message envelope.
type Frame string

const (
	FrameEvent Frame = "EVENT"
	FrameAuth  Frame = "AUTH"
)

// AppendEnvelope writes the event wrapped as a client frame,
// ["EVENT",{...}] or ["AUTH",{...}], ready for a transport collaborator
// to send verbatim.
func (ev *Event) AppendEnvelope(dst []byte, frame Frame) (int, error) {
	w := fixedWriter{buf: dst}
	w.writeString(`["`)
	w.writeString(string(frame))
	w.writeString(`",`)
	ev.writeJSON(&w)
	w.writeByte(']')
	return w.result()
}
