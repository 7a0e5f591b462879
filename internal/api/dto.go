package api

import (
	"time"

	"github.com/linkboard-dev/linkboard/internal/domain"
)

type WhoamiResponse struct {
	Status string         `json:"status"`
	Email  string         `json:"email,omitempty"`
	Roles  domain.RoleSet `json:"roles"`
}

type FeedResponse struct {
	Posts []domain.AnnotatedPost `json:"posts"`
}

type SharePostRequest struct {
	Text string `json:"text" validate:"required"`
}

type ShareResponse struct {
	Shared bool   `json:"shared"`
	Uuid   string `json:"uuid,omitempty"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

type RecordStatisticRequest struct {
	TakenAction   string `json:"taken_action" validate:"required"`
	AboutPostUuid string `json:"about_post_uuid" validate:"required"`
	AboutContent  string `json:"about_content"`
}

type StatisticResponse struct {
	Saved bool `json:"saved"`
}

// InviteInfo is the invite view exposed to its batch owner. Consumer emails
// stay in the ledger.
type InviteInfo struct {
	Uuid       string     `json:"uuid"`
	DateIssued time.Time  `json:"date_issued"`
	DateUsed   *time.Time `json:"date_used,omitempty"`
	Used       bool       `json:"used"`
}

type InvitesResponse struct {
	Invites []InviteInfo `json:"invites"`
}

type ConsumeInviteResponse struct {
	Invited bool `json:"invited"`
}

// SessionRequest is what the identity collaborator posts after a successful
// handshake: the verified identity plus the shared provision key.
type SessionRequest struct {
	Kind         string `json:"kind" validate:"required,oneof=internal external"`
	Email        string `json:"email"`
	ProvisionKey string `json:"provision_key" validate:"required"`
}

type SessionResponse struct {
	Token string `json:"token"`
}
