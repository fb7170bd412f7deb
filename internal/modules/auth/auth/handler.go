package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/core/internal/middleware"
	"github.com/inkwell/core/internal/models"
	jwtpkg "github.com/inkwell/core/internal/pkg/jwt"
	"github.com/inkwell/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/register", h.register)
	a.POST("/login", h.login)
	a.POST("/refresh", h.refresh)
	a.GET("/me", authMW, h.me)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			response.BadRequest(c, "user already exists")
			return
		}
		response.InternalError(c, err)
		return
	}
	accessToken, err := jwtpkg.SignAccess(u.ID, u.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{
		"user":        toUserResponse(u),
		"accessToken": accessToken,
	})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Login(dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			response.BadRequest(c, "invalid credentials")
			return
		}
		response.InternalError(c, err)
		return
	}

	accessToken, err := jwtpkg.SignAccess(u.ID, u.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	refreshToken, err := jwtpkg.SignRefresh(u.ID, u.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"user":         toUserResponse(u),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// refresh verifies the long-lived token and rotates both credentials.
func (h *Handler) refresh(c *gin.Context) {
	var dto RefreshDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	claims, err := jwtpkg.ParseRefresh(dto.RefreshToken)
	if err != nil {
		response.Unauthorized(c)
		return
	}
	accessToken, err := jwtpkg.SignAccess(claims.UserID, claims.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	refreshToken, err := jwtpkg.SignRefresh(claims.UserID, claims.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, gin.H{"user": toUserResponse(u)})
}

func toUserResponse(u *models.UserModel) userResponse {
	return userResponse{
		ID:        u.ID,
		Fullname:  u.Fullname,
		Email:     u.Email,
		CreatedOn: u.CreatedAt,
	}
}
