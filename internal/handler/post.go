package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linkboard-dev/linkboard/internal/api"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
	mw "github.com/linkboard-dev/linkboard/internal/middleware"
	"github.com/linkboard-dev/linkboard/internal/utils"
)

// SharePost handles POST /v1/posts
func (h *Handler) SharePost(w http.ResponseWriter, r *http.Request) {
	identity := mw.GetIdentityFromContext(r)
	roles := mw.GetRolesFromContext(r)

	if !roles.CanPost() {
		utils.WriteErrorAndStatusCode(w, internal_errors.Unauthorized("Posting requires an invited, non-blocked member"))
		return
	}

	var body api.SharePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Create(r.Context(), identity.Email, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.ShareResponse{Shared: true, Uuid: post.Id})
}

// DeletePost handles DELETE /v1/posts/{id}
// Owners delete their own posts; moderators delete any. Blocked always loses.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	identity := mw.GetIdentityFromContext(r)
	roles := mw.GetRolesFromContext(r)
	id := chi.URLParam(r, "id")

	allowed := !roles.Blocked && (roles.Moderator || roles.CanPost())
	if !allowed {
		utils.WriteErrorAndStatusCode(w, internal_errors.Unauthorized("Deleting requires ownership or moderator"))
		return
	}

	if err := h.post.Delete(r.Context(), id, identity.Email, roles); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.DeleteResponse{Deleted: true})
}
