package handler

import (
	"net/http"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/middleware"
	"github.com/projectblurimedia/Veggie-Tracker/internal/service"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService  service.UserService
	secureCookie bool
}

// NewAuthHandler sets up the login and registration endpoints. secureCookie
// marks the token cookie Secure for cross-origin deployments.
func NewAuthHandler(userService service.UserService, secureCookie bool) *AuthHandler {
	return &AuthHandler{userService: userService, secureCookie: secureCookie}
}

// RegisterRoutes binds the public auth endpoints
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

// RegisterProtectedRoutes binds the auth endpoints that need a token
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", h.GetMe)
}

func (h *AuthHandler) setCookie(c *gin.Context, res *service.AuthResponse) {
	middleware.SetTokenCookie(c, res.Token, time.Until(res.ExpiresAt), h.secureCookie)
}

// Register creates an operator account
// @Summary      Register an operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Account"
// @Success      201      {object}  response.Response{data=service.AuthResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setCookie(c, res)
	c.JSON(http.StatusCreated, response.SuccessWithMessage(http.StatusCreated, "User registered successfully", res))
}

// Login handles POST /auth/login to authenticate and return a JWT token
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response{data=service.AuthResponse}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setCookie(c, res)
	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Login successful", res))
}

// Logout clears the token cookie
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Logged out", nil))
}

// GetMe returns the authenticated operator
// @Summary      Current operator
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), auth.UserID.String())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}
