package handlers

import (
	"errors"

	"warga-daily/helper"
	"warga-daily/middleware"
	"warga-daily/models"
	"warga-daily/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: &helper.HTTPHelper{}}
}

// authErrorMessage maps auth failures to the fixed Indonesian user-facing
// messages the product ships with.
func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrBadCredentials):
		return "Email atau password salah."
	case errors.Is(err, services.ErrEmailTaken):
		return "Email sudah terdaftar."
	case errors.Is(err, services.ErrWeakPassword):
		return "Password terlalu lemah (min. 6 karakter)."
	}
	return "Terjadi kesalahan. Coba lagi."
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendBadRequest(c, authErrorMessage(err), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Register success", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendUnauthorizedError(c, authErrorMessage(err), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Login success", response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", profile)
}
