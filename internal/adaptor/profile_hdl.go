package adaptor

import (
	"net/http"

	"cinetheque/internal/dto/request"
	"cinetheque/internal/usecase"
	"cinetheque/pkg/utils"

	"go.uber.org/zap"
)

type ProfileHandler struct {
	service   usecase.ProfileService
	watchlist usecase.WatchlistService
	flash     *utils.FlashStore
	log       *zap.Logger
}

func NewProfileHandler(service usecase.ProfileService, watchlist usecase.WatchlistService, flash *utils.FlashStore, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service:   service,
		watchlist: watchlist,
		flash:     flash,
		log:       log.With(zap.String("handler", "profile")),
	}
}

func (h *ProfileHandler) Page(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	query := r.URL.Query()
	req := &request.ProfileRequest{
		Query: query.Get("q"),
		Sort:  query.Get("sort"),
	}

	page, err := h.service.Page(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	// The profile sidebar shows the watchlist next to the review history.
	watchlist, err := h.watchlist.FetchWatchlist(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	page.Watchlist = watchlist

	page.CurrentUser = currentUser(r)
	page.Messages = h.flash.Pop(w, r)
	utils.ResponseSuccess(w, "Profile", page)
}
