package category

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/core/internal/middleware"
	"github.com/inkwell/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/categories", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.rename)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	cats, err := h.svc.List(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cats)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Create(middleware.CurrentUserID(c), dto.Name)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) rename(c *gin.Context) {
	var dto UpdateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Rename(middleware.CurrentUserID(c), c.Param("id"), dto.Name)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.mapError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errCategoryNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, errNameReserved), errors.Is(err, errNameTaken):
		response.BadRequest(c, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		response.Conflict(c, "category already exists")
	default:
		response.InternalError(c, err)
	}
}
