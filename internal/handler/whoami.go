package handler

import (
	"net/http"

	"github.com/linkboard-dev/linkboard/internal/api"
	"github.com/linkboard-dev/linkboard/internal/domain"
	mw "github.com/linkboard-dev/linkboard/internal/middleware"
)

// Whoami handles GET /v1/whoami
// Returns the resolved identity and the freshly derived role set. Works for
// external visitors too; their response carries no email.
func (h *Handler) Whoami(w http.ResponseWriter, r *http.Request) {
	identity := mw.GetIdentityFromContext(r)
	roles := mw.GetRolesFromContext(r)

	resp := api.WhoamiResponse{
		Status: string(domain.IdentityExternal),
		Roles:  roles,
	}
	if identity.Internal() {
		resp.Status = string(domain.IdentityInternal)
		resp.Email = identity.Email
	}

	writeJSON(w, resp)
}
