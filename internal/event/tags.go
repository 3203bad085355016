package event

// Tag is an ordered list of short strings; the first element is
// conventionally the tag name, the rest its values.
type Tag []string

// Name returns the tag name, or "" for an empty tag.
func (t Tag) Name() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// TagStore is a bounded, insertion-ordered collection of tags. Order is
// semantically significant: it is part of the canonical byte sequence.
type TagStore struct {
	limits Limits
	tags   []Tag
}

// NewTagStore returns a store whose capacity is fixed by lim.
func NewTagStore(lim Limits) *TagStore {
	return &TagStore{
		limits: lim,
		tags:   make([]Tag, 0, lim.MaxTags),
	}
}

// Add appends a tag. It fails with CapacityError when the store is full,
// the tag has too many elements, or any element is too long. No partial
// tag is stored on failure, and no cryptographic work has happened yet.
func (ts *TagStore) Add(elements ...string) error {
	if len(ts.tags) >= ts.limits.MaxTags {
		return &CapacityError{Field: "tags", Limit: ts.limits.MaxTags, Have: len(ts.tags) + 1}
	}
	if len(elements) > ts.limits.MaxTagElements {
		return &CapacityError{Field: "tag_elements", Limit: ts.limits.MaxTagElements, Have: len(elements)}
	}
	for _, el := range elements {
		if len(el) > ts.limits.MaxTagElementLen {
			return &CapacityError{Field: "tag_element", Limit: ts.limits.MaxTagElementLen, Have: len(el)}
		}
	}
	tag := make(Tag, len(elements))
	copy(tag, elements)
	ts.tags = append(ts.tags, tag)
	return nil
}

// Len returns the number of stored tags.
func (ts *TagStore) Len() int { return len(ts.tags) }

// All returns the tags in insertion order. The slice is shared; callers
// must not mutate it.
func (ts *TagStore) All() []Tag { return ts.tags }

// Values returns the values (elements after the name) of every tag whose
// name matches.
func (ts *TagStore) Values(name string) [][]string {
	var out [][]string
	for _, t := range ts.tags {
		if t.Name() == name {
			out = append(out, t[1:])
		}
	}
	return out
}

// First returns the first value of the first tag with the given name, or
// "" when absent.
func (ts *TagStore) First(name string) string {
	for _, t := range ts.tags {
		if t.Name() == name && len(t) > 1 {
			return t[1]
		}
	}
	return ""
}
