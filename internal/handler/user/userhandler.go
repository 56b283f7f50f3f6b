package userhandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/koyif/invoicedash/internal/authz"
	"github.com/koyif/invoicedash/internal/domain"
	"github.com/koyif/invoicedash/internal/handler/middleware"
	"github.com/koyif/invoicedash/pkg/dto"
	"github.com/koyif/invoicedash/pkg/logger"
)

type UserService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type UserHandler struct {
	srv        UserService
	sessionTTL time.Duration
}

func New(srv UserService, sessionTTL time.Duration) *UserHandler {
	return &UserHandler{
		srv:        srv,
		sessionTTL: sessionTTL,
	}
}

func (uh *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	auth, ok := decodeAuth(w, r)
	if !ok {
		return
	}

	token, err := uh.srv.Register(r.Context(), auth.Email, auth.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}

		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	uh.startSession(w, r, token)
}

func (uh *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	auth, ok := decodeAuth(w, r)
	if !ok {
		return
	}

	token, err := uh.srv.Login(r.Context(), auth.Email, auth.Password)
	if err != nil {
		if errors.Is(err, domain.ErrIncorrectCredentials) {
			http.Error(w, "incorrect email or password", http.StatusUnauthorized)
			return
		}

		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	uh.startSession(w, r, token)
}

func (uh *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, authz.LoginPath, http.StatusSeeOther)
}

func (uh *UserHandler) startSession(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(uh.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Authorization", "Bearer "+token)

	http.Redirect(w, r, authz.DashboardPath, http.StatusSeeOther)
}

func decodeAuth(w http.ResponseWriter, r *http.Request) (dto.Auth, bool) {
	var auth dto.Auth

	if err := json.NewDecoder(r.Body).Decode(&auth); err != nil {
		logger.Log.Warn("error while decoding an auth request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return auth, false
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			logger.Log.Error("error while closing request body", logger.Error(err))
			return
		}
	}(r.Body)

	if err := auth.IsValid(); err != nil {
		logger.Log.Warn("invalid auth fields", logger.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return auth, false
	}

	return auth, true
}
