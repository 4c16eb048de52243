package adaptor

import (
	"net/http"

	"cinetheque/internal/dto/request"
	"cinetheque/internal/usecase"
	"cinetheque/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TMDBHandler struct {
	service usecase.TMDBService
	flash   *utils.FlashStore
	log     *zap.Logger
}

func NewTMDBHandler(service usecase.TMDBService, flash *utils.FlashStore, log *zap.Logger) *TMDBHandler {
	return &TMDBHandler{
		service: service,
		flash:   flash,
		log:     log.With(zap.String("handler", "tmdb")),
	}
}

func (h *TMDBHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.TMDBSearchRequest{
		Query: query.Get("q"),
		Page:  utils.ParseInt(query.Get("page"), 1),
	}

	page, err := h.service.Search(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	page.CurrentUser = currentUser(r)
	page.Messages = h.flash.Pop(w, r)
	utils.ResponseSuccess(w, "TMDB search", page)
}

func (h *TMDBHandler) Popular(w http.ResponseWriter, r *http.Request) {
	pageNum := utils.ParseInt(r.URL.Query().Get("page"), 1)

	page, err := h.service.Popular(r.Context(), pageNum)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	page.CurrentUser = currentUser(r)
	page.Messages = h.flash.Pop(w, r)
	utils.ResponseSuccess(w, "Popular movies", page)
}

func (h *TMDBHandler) Import(w http.ResponseWriter, r *http.Request) {
	tmdbID := utils.ParseInt(chi.URLParam(r, "tmdbID"), 0)
	if tmdbID <= 0 {
		utils.ResponseBadRequest(w, "Invalid TMDB ID", nil)
		return
	}

	result, err := h.service.Import(r.Context(), tmdbID)
	if err != nil {
		if utils.WantsJSON(r) {
			handleServiceError(w, h.log, err)
			return
		}
		flashError(w, r, h.flash, h.log, err, "/tmdb/search")
		return
	}

	if utils.WantsJSON(r) {
		if result.AlreadyExists {
			utils.ResponseSuccess(w, result.Message, result)
			return
		}
		utils.ResponseCreated(w, result.Message, result)
		return
	}

	category := "success"
	if result.AlreadyExists {
		category = "info"
	}
	h.flash.Add(w, r, result.Message, category)
	utils.Redirect(w, r, "/films/"+result.LocalID)
}
