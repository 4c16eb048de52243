package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"cinetheque/internal/dto/response"
	"cinetheque/internal/usecase"
	"cinetheque/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Film      *FilmHandler
	Watchlist *WatchlistHandler
	Profile   *ProfileHandler
	TMDB      *TMDBHandler
}

func NewHandler(service *usecase.Service, flash *utils.FlashStore, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, flash, config, log),
		Film:      NewFilmHandler(service.Film, flash, log),
		Watchlist: NewWatchlistHandler(service.Watchlist, flash, log),
		Profile:   NewProfileHandler(service.Profile, service.Watchlist, flash, log),
		TMDB:      NewTMDBHandler(service.TMDB, flash, log),
	}
}

// currentUser builds the header view of the signed-in user from the request
// context, nil for anonymous visitors.
func currentUser(r *http.Request) *response.UserResponse {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return nil
	}
	username, _ := utils.GetUsernameFromContext(r.Context())
	return &response.UserResponse{
		ID:       userID.String(),
		Username: username,
	}
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// redirectBack sends the browser to the page it came from, or to the
// fallback when the referer is missing.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Referer()
	if target == "" {
		target = fallback
	}
	utils.Redirect(w, r, target)
}

// handleServiceError translates service errors into HTTP responses by
// matching their messages.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "validation failed"):
		utils.ResponseBadRequest(w, msg, nil)
	case strings.Contains(msg, "invalid") && strings.Contains(msg, "format"):
		utils.ResponseBadRequest(w, msg, nil)
	case strings.Contains(msg, "not found"):
		utils.ResponseNotFound(w, msg)
	case strings.Contains(msg, "already registered"),
		strings.Contains(msg, "already taken"):
		utils.ResponseBadRequest(w, msg, nil)
	case strings.Contains(msg, "incorrect email or password"):
		utils.ResponseUnauthorized(w, msg)
	case strings.Contains(msg, "TMDB"):
		utils.ResponseJSON(w, http.StatusBadGateway, false, "Movie catalog unavailable", nil, nil)
	default:
		log.Error("Unhandled service error", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// flashError reports a service error to a browser flow: bad input and
// missing records become a flash on the fallback page, everything else is a
// server error response.
func flashError(w http.ResponseWriter, r *http.Request, flash *utils.FlashStore, log *zap.Logger, err error, fallback string) {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "validation failed"),
		strings.Contains(msg, "format"),
		strings.Contains(msg, "not found"),
		strings.Contains(msg, "already registered"),
		strings.Contains(msg, "already taken"),
		strings.Contains(msg, "incorrect email or password"),
		strings.Contains(msg, "TMDB"):
		flash.Add(w, r, msg, "error")
		utils.Redirect(w, r, fallback)
	default:
		log.Error("Unhandled service error", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
