package domain

type (
	Email    = string
	InviteId = string
	PostId   = string
)
