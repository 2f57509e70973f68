package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ragavan2104/mailblaster/accounts"
	"github.com/ragavan2104/mailblaster/internal"
	"github.com/ragavan2104/mailblaster/middlewares"
)

// AccountService is the part of accounts.Service the auth routes need.
type AccountService interface {
	Register(ctx context.Context, username, password, email string) (accounts.Admin, error)
	Login(ctx context.Context, username, password string) (accounts.LoginResult, error)
	Profile(ctx context.Context, id uuid.UUID) (accounts.Admin, error)
}

// Auth serves registration, login, and the current admin's profile.
type Auth struct {
	svc     AccountService
	protect internal.Middleware
}

// NewAuth creates the auth handler. protect guards /me.
func NewAuth(svc AccountService, protect internal.Middleware) *Auth {
	return &Auth{svc: svc, protect: protect}
}

func (h *Auth) Routes(r internal.Router) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.GET("/me", h.me, h.protect)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func (h *Auth) register(c internal.Context) error {
	var req registerRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	if _, err := h.svc.Register(c.Context(), req.Username, req.Password, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Admin registered successfully"})
}

func (h *Auth) login(c internal.Context) error {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	res, err := h.svc.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   res.Token,
		"user": loginUser{
			ID:       res.Admin.ID,
			Username: res.Admin.Username,
			Email:    res.Admin.Email,
		},
	})
}

func (h *Auth) me(c internal.Context) error {
	claims := middlewares.GetJWTClaims[accounts.Claims](c)
	if claims == nil {
		return internal.ErrUnauthorized(middlewares.MsgTokenRequired)
	}
	id, err := claims.AdminID()
	if err != nil {
		return accounts.ErrAdminNotFound
	}
	admin, err := h.svc.Profile(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}
