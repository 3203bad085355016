package config

import "github.com/Shugur-Network/quill/internal/event"

// LimitsConfig bounds the size of every event the pipeline will build.
type LimitsConfig struct {
	MaxTags          int `mapstructure:"MAX_TAGS"           json:"max_tags"           validate:"required,min=1,max=64"`
	MaxTagElements   int `mapstructure:"MAX_TAG_ELEMENTS"   json:"max_tag_elements"   validate:"required,min=1,max=64"`
	MaxTagElementLen int `mapstructure:"MAX_TAG_ELEMENT_LEN" json:"max_tag_element_len" validate:"required,min=1,max=4096"`
	MaxContentLen    int `mapstructure:"MAX_CONTENT_LEN"    json:"max_content_len"    validate:"required,min=1,max=65536"`
	CanonicalBuffer  int `mapstructure:"CANONICAL_BUFFER"   json:"canonical_buffer"   validate:"required,min=128,max=262144"`
}

// ToLimits converts the config section into the event package's limit set.
func (lc LimitsConfig) ToLimits() event.Limits {
	return event.Limits{
		MaxTags:          lc.MaxTags,
		MaxTagElements:   lc.MaxTagElements,
		MaxTagElementLen: lc.MaxTagElementLen,
		MaxContentLen:    lc.MaxContentLen,
		CanonicalBufLen:  lc.CanonicalBuffer,
	}
}

// minimalCanonicalBuffer is a floor, not an exact fit: the buffer must
// at least hold a tag-free event with maximal content, every byte
// escaped. Events that also carry large tags can still overflow at
// build time and are rejected per event.
func (lc LimitsConfig) minimalCanonicalBuffer() int {
	const framing = 64 // [0,"<64 hex>",<ts>,<kind>,[], ... ] skeleton
	return framing + 2*lc.MaxContentLen
}
