package domain

type IdentityKind string

const (
	IdentityInternal IdentityKind = "internal"
	IdentityExternal IdentityKind = "external"
)

// Identity is who the caller claims to be, as carried by the session
// token. It says nothing about roles: those are derived per request.
type Identity struct {
	Kind  IdentityKind
	Email Email
}

// Internal reports whether the identity names a logged-in member.
// An internal identity without an email is treated as external.
func (i Identity) Internal() bool {
	return i.Kind == IdentityInternal && i.Email != ""
}

func External() Identity {
	return Identity{Kind: IdentityExternal}
}

// RoleSet is the full set of role flags derived for one request.
type RoleSet struct {
	ExternalUser bool `json:"external_user"`
	InternalUser bool `json:"internal_user"`
	Invited      bool `json:"invited"`
	Blocked      bool `json:"blocked"`
	Moderator    bool `json:"moderator"`
}

func (r RoleSet) CanPost() bool {
	return r.InternalUser && r.Invited && !r.Blocked
}

func (r RoleSet) CanReadFeed() bool {
	return r.InternalUser && r.Invited
}
