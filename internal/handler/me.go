package handler

import (
	"net/http"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtxKey).(*domain.User)
	h.successResponse(w, r, "fetched profile", user)
}
