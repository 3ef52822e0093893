package handlers

import (
	"net/http"

	"blog-api/config"
	"blog-api/helper"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
	jwt         config.JWTConfig
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper, jwt config.JWTConfig) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h, jwt: jwt}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.AuthRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "User registered successfully", user)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.AuthRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	res, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.setCookie(c, res.Token, int(h.jwt.CookieExpiresIn.Seconds()))
	h.Helper.SendSuccess(c, "Signed in successfully", res)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	h.setCookie(c, "", -1)
	h.Helper.SendSuccess(c, "Signed out successfully", h.Helper.EmptyJsonMap())
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.jwt.CookieName, value, maxAge, "/", "", h.jwt.CookieSecure, true)
}
