package adaptor

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"cinetheque/internal/dto/request"
	"cinetheque/internal/usecase"
	"cinetheque/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	flash   *utils.FlashStore
	config  *utils.Config
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, flash *utils.FlashStore, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		flash:   flash,
		config:  config,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// RegisterPage serves the registration view context: any pending flash
// messages plus the current user, so a signed-in visitor can be sent on.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Register", map[string]any{
		"current_user": currentUser(r),
		"messages":     h.flash.Pop(w, r),
	})
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Login", map[string]any{
		"current_user": currentUser(r),
		"messages":     h.flash.Pop(w, r),
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if isJSONBody(r) {
		if err := decodeJSON(r, &req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	} else {
		req = request.RegisterRequest{
			Username:        r.FormValue("username"),
			Email:           r.FormValue("email"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		}
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if utils.WantsJSON(r) || isJSONBody(r) {
			handleServiceError(w, h.log, err)
			return
		}
		flashError(w, r, h.flash, h.log, err, "/register")
		return
	}

	if utils.WantsJSON(r) || isJSONBody(r) {
		utils.ResponseCreated(w, "Account created", user)
		return
	}

	h.flash.Add(w, r, "Account created, you can now log in", "success")
	utils.Redirect(w, r, "/login")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if isJSONBody(r) {
		if err := decodeJSON(r, &req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	} else {
		req = request.LoginRequest{
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}
	}

	auth, err := h.service.Login(r.Context(), &req, r.UserAgent(), clientIP(r))
	if err != nil {
		if utils.WantsJSON(r) || isJSONBody(r) {
			handleServiceError(w, h.log, err)
			return
		}
		flashError(w, r, h.flash, h.log, err, "/login")
		return
	}

	h.setSessionCookie(w, auth.Token, auth.ExpiresAt)

	if utils.WantsJSON(r) || isJSONBody(r) {
		utils.ResponseSuccess(w, "Logged in", auth)
		return
	}

	h.flash.Add(w, r, fmt.Sprintf("Welcome back, %s", auth.User.Username), "success")
	utils.Redirect(w, r, "/films")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := utils.GetTokenFromContext(r.Context()); ok {
		if err := h.service.Logout(r.Context(), token); err != nil {
			h.log.Warn("Logout failed", zap.Error(err))
		}
	}

	h.clearSessionCookie(w)

	if utils.WantsJSON(r) {
		utils.ResponseSuccess(w, "Logged out", nil)
		return
	}

	h.flash.Add(w, r, "You have been logged out", "info")
	utils.Redirect(w, r, "/login")
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
