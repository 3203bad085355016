package event

// Limits fixes the memory budget of every bounded container in the event
// pipeline. All buffers are sized from these values at construction time;
// no operation grows a buffer afterwards. The defaults suit small
// embedded-style deployments and are configuration, not protocol
// constants.
type Limits struct {
	MaxTags          int // tag entries per event
	MaxTagElements   int // elements per tag
	MaxTagElementLen int // bytes per tag element
	MaxContentLen    int // bytes of content before any encryption framing
	CanonicalBufLen  int // serialization scratch, must hold the full preimage
}

// DefaultLimits returns the stock memory budget: 5 tags of up to 5 elements
// of 150 bytes, 400 bytes of content, 1536 bytes of canonical scratch.
func DefaultLimits() Limits {
	return Limits{
		MaxTags:          5,
		MaxTagElements:   5,
		MaxTagElementLen: 150,
		MaxContentLen:    400,
		CanonicalBufLen:  1536,
	}
}
