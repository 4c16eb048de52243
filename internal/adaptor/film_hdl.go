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

type FilmHandler struct {
	service usecase.FilmService
	flash   *utils.FlashStore
	log     *zap.Logger
}

func NewFilmHandler(service usecase.FilmService, flash *utils.FlashStore, log *zap.Logger) *FilmHandler {
	return &FilmHandler{
		service: service,
		flash:   flash,
		log:     log.With(zap.String("handler", "film")),
	}
}

func (h *FilmHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListFilmsRequest{
		Query: query.Get("q"),
		Tags:  query["tags"],
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())

	page, err := h.service.ListFilms(r.Context(), req, userID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	page.CurrentUser = currentUser(r)
	page.Messages = h.flash.Pop(w, r)
	utils.ResponseSuccess(w, "Films", page)
}

// Partial serves just the filtered card grid for in-page search updates.
func (h *FilmHandler) Partial(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListFilmsRequest{
		Query: query.Get("q"),
		Tags:  query["tags"],
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())

	cards, err := h.service.ListFilmCards(r.Context(), req, userID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Films", cards)
}

func (h *FilmHandler) Detail(w http.ResponseWriter, r *http.Request) {
	filmID := chi.URLParam(r, "filmID")
	userID, _ := utils.GetUserIDFromContext(r.Context())

	page, err := h.service.FilmDetail(r.Context(), filmID, userID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	page.CurrentUser = currentUser(r)
	page.Messages = h.flash.Pop(w, r)
	utils.ResponseSuccess(w, "Film detail", page)
}

func (h *FilmHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	filmID := chi.URLParam(r, "filmID")
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req request.SubmitReviewRequest
	if isJSONBody(r) {
		if err := decodeJSON(r, &req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	} else {
		req = request.SubmitReviewRequest{
			Rating:  utils.ParseInt(r.FormValue("rating"), 0),
			Comment: r.FormValue("comment"),
		}
	}

	result, err := h.service.SubmitReview(r.Context(), userID, filmID, &req)
	if err != nil {
		if utils.WantsJSON(r) || isJSONBody(r) {
			handleServiceError(w, h.log, err)
			return
		}
		flashError(w, r, h.flash, h.log, err, "/films/"+filmID)
		return
	}

	if utils.WantsJSON(r) || isJSONBody(r) {
		utils.ResponseSuccess(w, "Review saved", result)
		return
	}

	if result.Updated {
		h.flash.Add(w, r, fmt.Sprintf("Your review of %s has been updated", result.FilmTitle), "success")
	} else {
		h.flash.Add(w, r, fmt.Sprintf("Your review of %s has been saved", result.FilmTitle), "success")
	}
	if result.RemovedFromWatchlist {
		h.flash.Add(w, r, fmt.Sprintf("%s was removed from your watchlist", result.FilmTitle), "info")
	}
	utils.Redirect(w, r, "/films/"+filmID)
}

func (h *FilmHandler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	filmID := chi.URLParam(r, "filmID")
	userID, _ := utils.GetUserIDFromContext(r.Context())

	result, err := h.service.ToggleWatchlist(r.Context(), userID, filmID)
	if err != nil {
		if utils.WantsJSON(r) {
			handleServiceError(w, h.log, err)
			return
		}
		flashError(w, r, h.flash, h.log, err, "/films")
		return
	}

	if utils.WantsJSON(r) {
		utils.ResponseSuccess(w, "Watchlist updated", result)
		return
	}

	if result.Added {
		h.flash.Add(w, r, fmt.Sprintf("%s added to your watchlist", result.FilmTitle), "success")
	} else {
		h.flash.Add(w, r, fmt.Sprintf("%s removed from your watchlist", result.FilmTitle), "info")
	}
	redirectBack(w, r, "/films")
}
