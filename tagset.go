package tagstrip

import (
	"sort"
	"strings"
)

// TagComment is the pseudo-tag that selects HTML comment nodes.
// It is part of the default set because comments are markup noise for
// most cleaning jobs, but it never matches an element by name.
const TagComment = "comment"

// TagSet is an immutable, case-insensitive set of tag names.
// Names are normalized (trimmed, lowercased) and deduplicated on
// construction. The zero value is the empty set.
type TagSet struct {
	names map[string]struct{}
}

// NewTagSet builds a TagSet from the given names. Names are trimmed and
// lowercased; duplicates collapse silently. Returns EINVALID if any name
// is empty after trimming or contains characters other than ASCII
// letters, digits, and hyphens (with a leading letter).
func NewTagSet(names ...string) (TagSet, error) {
	set := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if err := validateTagName(name); err != nil {
			return TagSet{}, err
		}
		set[name] = struct{}{}
	}
	return TagSet{names: set}, nil
}

// MustTagSet is like NewTagSet but panics on invalid names.
// Intended for static tag lists known to be valid.
func MustTagSet(names ...string) TagSet {
	ts, err := NewTagSet(names...)
	if err != nil {
		panic(err)
	}
	return ts
}

// DefaultTags returns the pre-defined tag set: common boilerplate and
// unsafe tags plus the comment pseudo-tag.
func DefaultTags() TagSet {
	return MustTagSet("script", "style", "iframe", TagComment, "header", "footer", "nav", "aside")
}

// Contains reports whether the normalized form of name is in the set.
func (ts TagSet) Contains(name string) bool {
	_, ok := ts.names[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Len returns the number of names in the set.
func (ts TagSet) Len() int {
	return len(ts.names)
}

// Names returns the set's names in lexicographic order.
func (ts TagSet) Names() []string {
	names := make([]string, 0, len(ts.names))
	for name := range ts.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Union returns a new TagSet containing the names of both sets.
func (ts TagSet) Union(other TagSet) TagSet {
	merged := make(map[string]struct{}, len(ts.names)+len(other.names))
	for name := range ts.names {
		merged[name] = struct{}{}
	}
	for name := range other.names {
		merged[name] = struct{}{}
	}
	return TagSet{names: merged}
}

// validateTagName rejects names that could never match an HTML element
// (or the comment pseudo-tag).
func validateTagName(name string) error {
	if name == "" {
		return Errorf(EINVALID, "tag name must not be empty")
	}
	if !isASCIILetter(name[0]) {
		return Errorf(EINVALID, "tag name %q must start with a letter", name)
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) && c != '-' {
			return Errorf(EINVALID, "tag name %q contains disallowed character %q", name, c)
		}
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
