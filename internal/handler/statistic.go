package handler

import (
	"net/http"

	"github.com/linkboard-dev/linkboard/internal/api"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
	mw "github.com/linkboard-dev/linkboard/internal/middleware"
	"github.com/linkboard-dev/linkboard/internal/utils"
)

// RecordStatistic handles POST /v1/statistics
// Any internal member may report engagement, invited or not.
func (h *Handler) RecordStatistic(w http.ResponseWriter, r *http.Request) {
	identity := mw.GetIdentityFromContext(r)
	roles := mw.GetRolesFromContext(r)

	if !roles.InternalUser {
		utils.WriteErrorAndStatusCode(w, internal_errors.Unauthorized("Not logged in"))
		return
	}

	var body api.RecordStatisticRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	err := h.statistic.Record(r.Context(), identity.Email, body.TakenAction, body.AboutPostUuid, body.AboutContent)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.StatisticResponse{Saved: true})
}
