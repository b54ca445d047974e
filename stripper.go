package tagstrip

// Mode selects how matching elements are removed.
type Mode string

// Removal modes.
const (
	// RemoveSubtree deletes a matching element and all its descendants.
	RemoveSubtree Mode = "remove-subtree"

	// UnwrapOnly deletes only the element's markers, promoting its
	// children to the parent's position in document order.
	UnwrapOnly Mode = "unwrap-only"
)

// AttrMode selects which elements have their attributes cleared.
type AttrMode string

// Attribute cleaning modes.
const (
	// AttrKeep leaves all attributes untouched.
	AttrKeep AttrMode = "none"

	// AttrCleanAll clears attributes from every element.
	AttrCleanAll AttrMode = "all"

	// AttrCleanSelected clears attributes only from elements named in
	// StripOptions.AttrTags.
	AttrCleanSelected AttrMode = "selected"

	// AttrCleanExcept clears attributes from every element except those
	// named in StripOptions.AttrTags.
	AttrCleanExcept AttrMode = "except"
)

// ParseAttrMode maps a user-supplied mode string onto an AttrMode.
// The empty string means AttrKeep.
func ParseAttrMode(s string) (AttrMode, error) {
	switch s {
	case "", string(AttrKeep):
		return AttrKeep, nil
	case string(AttrCleanAll):
		return AttrCleanAll, nil
	case string(AttrCleanSelected):
		return AttrCleanSelected, nil
	case string(AttrCleanExcept):
		return AttrCleanExcept, nil
	}
	return "", Errorf(EINVALID, "unknown attribute cleaning mode %q", s)
}

// StripOptions configures a single strip operation.
type StripOptions struct {
	// Tags are the tag names to remove. The comment pseudo-tag selects
	// HTML comment nodes.
	Tags TagSet

	// Mode selects subtree removal vs unwrapping. Empty defaults to
	// RemoveSubtree.
	Mode Mode

	// AttrMode selects attribute cleaning. Empty defaults to AttrKeep.
	AttrMode AttrMode

	// AttrTags scopes AttrCleanSelected and AttrCleanExcept.
	AttrTags TagSet
}

// Validate returns EINVALID if the options contain an unknown mode.
// Tag names are validated at TagSet construction.
func (o StripOptions) Validate() error {
	switch o.Mode {
	case "", RemoveSubtree, UnwrapOnly:
	default:
		return Errorf(EINVALID, "unknown removal mode %q", o.Mode)
	}
	switch o.AttrMode {
	case "", AttrKeep, AttrCleanAll, AttrCleanSelected, AttrCleanExcept:
	default:
		return Errorf(EINVALID, "unknown attribute cleaning mode %q", o.AttrMode)
	}
	return nil
}

// Stripper removes configured tags from HTML document text.
type Stripper interface {
	// Strip parses document leniently, removes elements matching
	// opts.Tags per opts.Mode, applies attribute cleaning, and
	// serializes the result. Untouched siblings keep their relative
	// order; fragments do not gain document scaffolding.
	// Returns EPARSE when the input cannot be tokenized at all.
	Strip(document string, opts StripOptions) (string, error)
}
