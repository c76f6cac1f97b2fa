package rail

// MemberReader lets a context object take over member resolution for
// scope lookups that fall through the result record. Objects that do not
// implement it are read via map keys or decoded struct fields.
type MemberReader interface {
	// Member returns the member value for name, and whether it exists.
	Member(name string) (any, bool)
}

// MemberWriter lets a context object take over mirror writes. Objects
// that do not implement it receive mirrors via map keys or settable
// struct fields.
type MemberWriter interface {
	// SetMember stores value under name on the context object.
	SetMember(name string, value any) error
}
