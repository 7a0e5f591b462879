package handler

import (
	"net/http"
	"strconv"

	"github.com/linkboard-dev/linkboard/internal/api"
	"github.com/linkboard-dev/linkboard/internal/domain"
	mw "github.com/linkboard-dev/linkboard/internal/middleware"
	"github.com/linkboard-dev/linkboard/internal/utils"
)

// Feed handles GET /v1/posts?limit=&hashtag=
// Uninvited and external viewers get an empty list, not an error: the public
// surface must not reveal whether posts exist.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	identity := mw.GetIdentityFromContext(r)
	roles := mw.GetRolesFromContext(r)

	if !roles.CanReadFeed() {
		writeJSON(w, api.FeedResponse{Posts: []domain.AnnotatedPost{}})
		return
	}

	limit := h.cfg.Public.FeedDefaultLimit
	if limitQuery := r.URL.Query().Get("limit"); limitQuery != "" {
		parsed, err := strconv.Atoi(limitQuery)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	hashtag := r.URL.Query().Get("hashtag")

	posts, err := h.feed.Latest(r.Context(), identity, roles, limit, hashtag)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if posts == nil {
		posts = []domain.AnnotatedPost{}
	}

	writeJSON(w, api.FeedResponse{Posts: posts})
}
