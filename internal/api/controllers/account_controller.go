package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"edupath/internal/config"
	"edupath/internal/models/request_models"
	"edupath/internal/services"
	"edupath/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
	cookieName     string
	tokenTTL       time.Duration
	secureCookie   bool
}

func NewAccountController(accountService services.AccountServiceInterface, auth config.AuthConfig, secureCookie bool) *AccountController {
	return &AccountController{
		accountService: accountService,
		cookieName:     auth.CookieName,
		tokenTTL:       auth.TokenTTL,
		secureCookie:   secureCookie,
	}
}

func (a *AccountController) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookieName, token, maxAge, "/", "", a.secureCookie, true)
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Account registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	auth, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	a.setTokenCookie(c, auth.Token, int(a.tokenTTL.Seconds()))
	utils.RespondCreated(c, auth, "Account created successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate a user and return a token, also set as an http-only cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	auth, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	a.setTokenCookie(c, auth.Token, int(a.tokenTTL.Seconds()))
	utils.RespondSuccess(c, auth, "Login successful")
}

func (a *AccountController) Me(c *gin.Context) {
	account, err := a.accountService.Me(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "")
}

func (a *AccountController) UpdateMe(c *gin.Context) {
	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.accountService.UpdateMe(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "Profile updated")
}

// Logout revokes the current token and clears the cookie.
func (a *AccountController) Logout(c *gin.Context) {
	if err := a.accountService.Logout(c.Request.Context(), c.GetString("token_id"), tokenExpiry(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	a.setTokenCookie(c, "", -1)
	utils.RespondSuccess(c, nil, "Logged out")
}
