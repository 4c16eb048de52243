package adaptor

import (
	"fmt"
	"net/http"

	"cinetheque/internal/dto/request"
	"cinetheque/internal/usecase"
	"cinetheque/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WatchlistHandler struct {
	service usecase.WatchlistService
	flash   *utils.FlashStore
	log     *zap.Logger
}

func NewWatchlistHandler(service usecase.WatchlistService, flash *utils.FlashStore, log *zap.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		service: service,
		flash:   flash,
		log:     log.With(zap.String("handler", "watchlist")),
	}
}

func (h *WatchlistHandler) Page(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	req := &request.WatchlistRequest{
		Sort: r.URL.Query().Get("sort"),
	}

	page, err := h.service.Page(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	page.CurrentUser = currentUser(r)
	page.Messages = h.flash.Pop(w, r)
	utils.ResponseSuccess(w, "Watchlist", page)
}

func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	filmID := chi.URLParam(r, "filmID")

	title, removed, err := h.service.Remove(r.Context(), userID, filmID)
	if err != nil {
		if utils.WantsJSON(r) {
			handleServiceError(w, h.log, err)
			return
		}
		flashError(w, r, h.flash, h.log, err, "/watchlist")
		return
	}

	if utils.WantsJSON(r) {
		utils.ResponseSuccess(w, "Watchlist updated", map[string]any{"removed": removed, "title": title})
		return
	}

	if removed {
		h.flash.Add(w, r, fmt.Sprintf("%s removed from your watchlist", title), "info")
	}
	utils.Redirect(w, r, "/watchlist")
}

func (h *WatchlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	deleted, err := h.service.Clear(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	if utils.WantsJSON(r) {
		utils.ResponseSuccess(w, "Watchlist cleared", map[string]any{"deleted": deleted})
		return
	}

	if deleted > 0 {
		h.flash.Add(w, r, fmt.Sprintf("Watchlist cleared, %d films removed", deleted), "info")
	}
	utils.Redirect(w, r, "/watchlist")
}
