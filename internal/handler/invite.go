package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linkboard-dev/linkboard/internal/api"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
	mw "github.com/linkboard-dev/linkboard/internal/middleware"
	"github.com/linkboard-dev/linkboard/internal/utils"
)

// MyInvites handles GET /v1/invites
// Returns the caller's own batch. Consumer emails are not exposed.
func (h *Handler) MyInvites(w http.ResponseWriter, r *http.Request) {
	identity := mw.GetIdentityFromContext(r)
	roles := mw.GetRolesFromContext(r)

	if !roles.InternalUser {
		utils.WriteErrorAndStatusCode(w, internal_errors.Unauthorized("Not logged in"))
		return
	}
	if !roles.Invited {
		utils.WriteErrorAndStatusCode(w, internal_errors.Unauthorized("Not invited"))
		return
	}

	invites, err := h.invite.Mine(r.Context(), identity.Email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	infos := make([]api.InviteInfo, 0, len(invites))
	for _, inv := range invites {
		info := api.InviteInfo{
			Uuid:       inv.Id,
			DateIssued: inv.DateIssued,
			Used:       inv.Used(),
		}
		if inv.Used() && !inv.DateUsed.IsZero() {
			used := inv.DateUsed
			info.DateUsed = &used
		}
		infos = append(infos, info)
	}

	writeJSON(w, api.InvitesResponse{Invites: infos})
}

// ConsumeInvite handles POST /v1/invites/{id}/consume
// Only an uninvited internal member may consume; the ledger guarantees
// exactly-once.
func (h *Handler) ConsumeInvite(w http.ResponseWriter, r *http.Request) {
	identity := mw.GetIdentityFromContext(r)
	roles := mw.GetRolesFromContext(r)
	id := chi.URLParam(r, "id")

	if !roles.InternalUser {
		utils.WriteErrorAndStatusCode(w, internal_errors.Unauthorized("Not logged in"))
		return
	}
	if roles.Invited {
		utils.WriteErrorAndStatusCode(w, internal_errors.Unauthorized("Already invited"))
		return
	}

	if err := h.invite.Consume(r.Context(), id, identity.Email); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ConsumeInviteResponse{Invited: true})
}
