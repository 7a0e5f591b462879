package domain

import "time"

// Invite is one row of the invite ledger. UsedByEmail is empty until
// the invite is consumed; consumption is permanent.
type Invite struct {
	Id            InviteId
	IssuedToEmail Email
	UsedByEmail   Email
	DateIssued    time.Time
	DateUsed      time.Time
}

func (i Invite) Used() bool {
	return i.UsedByEmail != ""
}
