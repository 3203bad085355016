package event

// Kind is the integer discriminator selecting the semantic interpretation
// of an event's content and tags.
type Kind uint16

// Kinds with dedicated builders. The set known at compile time is fixed;
// anything else is passed through untouched.
const (
	KindShortTextNote          Kind = 1
	KindEncryptedDirectMessage Kind = 4
	KindIOTPayload             Kind = 5732
	KindClientAuthentication   Kind = 22242
)

// Kind class ranges per NIP-01.
func (k Kind) IsRegular() bool     { return k >= 1000 && k < 10000 }
func (k Kind) IsReplaceable() bool { return k >= 10000 && k < 20000 }
func (k Kind) IsEphemeral() bool   { return k >= 20000 && k < 30000 }

// IsParameterizedReplaceable reports whether the kind is addressable via a
// "d" tag.
func (k Kind) IsParameterizedReplaceable() bool { return k >= 30000 && k < 40000 }
