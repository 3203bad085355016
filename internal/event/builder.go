package event

import (
	"github.com/Shugur-Network/quill/internal/crypto"
)

// BuildState is the position of a Builder in the fixed construction
// pipeline. Transitions only ever move forward.
type BuildState uint8

const (
	StateEmpty BuildState = iota
	StateTagsSet
	StateContentSet
	StateSerialized
	StateHashed
	StateSigned
	stateConsumed
)

func (s BuildState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateTagsSet:
		return "tags_set"
	case StateContentSet:
		return "content_set"
	case StateSerialized:
		return "serialized"
	case StateHashed:
		return "hashed"
	case StateSigned:
		return "signed"
	case stateConsumed:
		return "consumed"
	}
	return "unknown"
}

// Builder advances an event through populate -> serialize -> hash -> sign.
// Each transition checks its precondition and fails with SequenceError
// when called out of order, so a stale or partially built event can never
// be signed. A builder owns its buffers exclusively, is not safe for
// concurrent use, and is consumed by Finish; independent builders may run
// in parallel.
type Builder struct {
	limits Limits
	state  BuildState

	sk     [crypto.SecretKeySize]byte
	pubkey [crypto.PublicKeySize]byte

	createdAt uint64
	kind      Kind
	tags      *TagStore
	content   string

	buf      []byte // canonical scratch, fixed at construction
	preimage int    // valid bytes in buf once serialized
	digest   [crypto.DigestSize]byte
	sig      [crypto.SignatureSize]byte
}

// NewBuilder validates the secret key, derives the author public key, and
// allocates every buffer the pipeline will need. No allocation happens
// after this point.
func NewBuilder(sk [crypto.SecretKeySize]byte, lim Limits) (*Builder, error) {
	pubkey, err := crypto.DerivePublicKey(sk)
	if err != nil {
		return nil, err
	}
	return &Builder{
		limits: lim,
		state:  StateEmpty,
		sk:     sk,
		pubkey: pubkey,
		kind:   KindShortTextNote,
		tags:   NewTagStore(lim),
		buf:    make([]byte, lim.CanonicalBufLen),
	}, nil
}

// PubKey returns the author key derived from the builder's secret key.
func (b *Builder) PubKey() [crypto.PublicKeySize]byte { return b.pubkey }

// State returns the builder's current pipeline position.
func (b *Builder) State() BuildState { return b.state }

func (b *Builder) guard(op string, max BuildState) error {
	if b.state > max {
		return &SequenceError{Op: op, State: b.state}
	}
	return nil
}

// SetKind sets the event kind. Allowed until serialization.
func (b *Builder) SetKind(k Kind) error {
	if err := b.guard("set_kind", StateContentSet); err != nil {
		return err
	}
	b.kind = k
	return nil
}

// SetCreatedAt sets the event timestamp (unix seconds). Allowed until
// serialization.
func (b *Builder) SetCreatedAt(ts uint64) error {
	if err := b.guard("set_created_at", StateContentSet); err != nil {
		return err
	}
	b.createdAt = ts
	return nil
}

// AddTag appends a tag. Tags must all be added before content is set;
// capacity violations surface as CapacityError and leave the builder
// usable in its current state.
func (b *Builder) AddTag(elements ...string) error {
	if err := b.guard("add_tag", StateTagsSet); err != nil {
		return err
	}
	if err := b.tags.Add(elements...); err != nil {
		return err
	}
	b.state = StateTagsSet
	return nil
}

// SetContent sets the content buffer, bounds-checked against
// Limits.MaxContentLen. May be called again to replace the content as
// long as the event has not been serialized.
func (b *Builder) SetContent(content string) error {
	if err := b.guard("set_content", StateContentSet); err != nil {
		return err
	}
	if len(content) > b.limits.MaxContentLen {
		return &CapacityError{Field: "content", Limit: b.limits.MaxContentLen, Have: len(content)}
	}
	b.content = content
	b.state = StateContentSet
	return nil
}

// Serialize produces the canonical preimage into the builder's fixed
// buffer. After this the event fields are frozen.
func (b *Builder) Serialize() error {
	if err := b.guard("serialize", StateContentSet); err != nil {
		return err
	}
	n, err := Canonical(b.buf, b.pubkey, b.createdAt, b.kind, b.tags.All(), b.content)
	if err != nil {
		return err
	}
	b.preimage = n
	b.state = StateSerialized
	return nil
}

// Preimage returns the canonical bytes produced by Serialize. The slice
// aliases the builder's buffer; callers must not hold it past Finish.
func (b *Builder) Preimage() ([]byte, error) {
	if b.state < StateSerialized || b.state == stateConsumed {
		return nil, &SequenceError{Op: "preimage", State: b.state}
	}
	return b.buf[:b.preimage], nil
}

// Hash computes the event id over the serialized preimage.
func (b *Builder) Hash() error {
	if b.state != StateSerialized {
		return &SequenceError{Op: "hash", State: b.state}
	}
	b.digest = crypto.Digest(b.buf[:b.preimage])
	b.state = StateHashed
	return nil
}

// Digest returns the event id computed by Hash.
func (b *Builder) Digest() ([crypto.DigestSize]byte, error) {
	if b.state < StateHashed || b.state == stateConsumed {
		return [32]byte{}, &SequenceError{Op: "digest", State: b.state}
	}
	return b.digest, nil
}

// Sign signs the digest with the builder's secret key. Signing is
// deterministic; the same digest and key always yield the same signature.
func (b *Builder) Sign() error {
	if b.state != StateHashed {
		return &SequenceError{Op: "sign", State: b.state}
	}
	sig, err := crypto.Sign(b.digest, b.sk)
	if err != nil {
		return err
	}
	b.sig = sig
	b.state = StateSigned
	return nil
}

// Finish returns the completed event by value and consumes the builder;
// every call after the first fails with SequenceError. The returned
// event can no longer be mutated through the builder, so its id and
// signature stay valid for good.
func (b *Builder) Finish() (Event, error) {
	if b.state != StateSigned {
		return Event{}, &SequenceError{Op: "finish", State: b.state}
	}
	b.state = stateConsumed
	ev := Event{
		id:        b.digest,
		pubkey:    b.pubkey,
		createdAt: b.createdAt,
		kind:      b.kind,
		tags:      b.tags.All(),
		content:   b.content,
		sig:       b.sig,
	}
	// Wipe the key copy; the builder is done with it.
	b.sk = [crypto.SecretKeySize]byte{}
	return ev, nil
}
