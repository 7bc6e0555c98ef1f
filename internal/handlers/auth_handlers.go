package handlers

import (
	"errors"
	"net/http"
	"time"

	"tsehay_admin/internal/middleware"
	"tsehay_admin/internal/models"
	"tsehay_admin/internal/services"
	"tsehay_admin/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LoginResponse is returned to JSON clients after a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type loginPage struct {
	Username string
	Error    string
}

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService   services.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: as, secureCookies: secureCookies}
}

// ShowLogin renders the login page, or skips it for a live session.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if _, err := h.authService.Authenticate(token); err == nil {
			c.Redirect(http.StatusFound, dashboardPath)
			return
		}
	}
	c.HTML(http.StatusOK, "login.tmpl", loginPage{})
}

// LoginUser handles admin login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		utils.LogError(err, "LoginUser: Failed to bind credentials")
		if middleware.WantsJSON(c) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
			return
		}
		c.HTML(http.StatusBadRequest, "login.tmpl", loginPage{Username: creds.Username, Error: "Username and password are required."})
		return
	}

	result, err := h.authService.Login(creds)
	if err != nil {
		utils.LogWarn(err, "LoginUser: Error from authService.Login", map[string]interface{}{"username": creds.Username})
		status, message := http.StatusInternalServerError, "Failed to login."
		code := utils.ErrCodeInternalServerError
		if errors.Is(err, services.ErrInvalidCredentials) {
			status, message, code = http.StatusUnauthorized, "Invalid username or password.", utils.ErrCodeUnauthorized
		}
		if middleware.WantsJSON(c) {
			utils.RespondWithError(c, utils.NewAPIError(status, code, message, err.Error()))
			return
		}
		c.HTML(status, "login.tmpl", loginPage{Username: creds.Username, Error: message})
		return
	}

	maxAge := int(time.Until(result.Session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, result.Token, maxAge, "/", "", h.secureCookies, true)
	utils.LogInfo("Admin logged in", map[string]interface{}{"username": result.Session.Username})

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, LoginResponse{
			Token:     result.Token,
			Username:  result.Session.Username,
			ExpiresAt: result.Session.ExpiresAt,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

// LogoutUser drops the session and its dashboard, then clears the cookie.
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	if session, ok := middleware.CurrentSession(c); ok {
		h.authService.Logout(session.ID)
		utils.LogInfo("Admin logged out", map[string]interface{}{"username": session.Username})
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureCookies, true)

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully."})
		return
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
