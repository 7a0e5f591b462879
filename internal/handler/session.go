package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/linkboard-dev/linkboard/internal/api"
	"github.com/linkboard-dev/linkboard/internal/domain"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
	mw "github.com/linkboard-dev/linkboard/internal/middleware"
	"github.com/linkboard-dev/linkboard/internal/utils"
)

// CreateSession handles POST /v1/session
// The identity collaborator exchanges a verified {kind, email} for a session
// token, authenticated by the shared provision key. The OAuth handshake
// itself happens outside this service.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body api.SessionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(body.ProvisionKey), []byte(h.cfg.Private.ProvisionKey)) != 1 {
		utils.WriteErrorAndStatusCode(w, internal_errors.Unauthorized("Invalid provision key"))
		return
	}

	identity := domain.Identity{Kind: domain.IdentityKind(body.Kind), Email: body.Email}
	if identity.Kind == domain.IdentityInternal && identity.Email == "" {
		utils.WriteErrorAndStatusCode(w, internal_errors.Validation("Internal identity requires an email"))
		return
	}
	if identity.Kind == domain.IdentityExternal {
		identity = domain.External()
	}

	token, err := h.sessions.NewToken(identity)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.cfg.SessionTTL().Seconds()),
	})
	writeJSON(w, api.SessionResponse{Token: token})
}
