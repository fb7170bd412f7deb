package doc

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/core/internal/middleware"
	"github.com/inkwell/core/internal/modules/writer/project"
	"github.com/inkwell/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/docs", authMW)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.GET("/:id/versions", h.listVersions)
	g.POST("/:id/restore", h.restore)

	rg.GET("/projects/:id/docs", authMW, h.listForProject)
}

func (h *Handler) listForProject(c *gin.Context) {
	docs, err := h.svc.List(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, docs)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDocDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	d, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Created(c, d)
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, d)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDocDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	d, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, d)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.mapError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listVersions(c *gin.Context) {
	versions, err := h.svc.ListVersions(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, versions)
}

func (h *Handler) restore(c *gin.Context) {
	var dto RestoreDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	d, err := h.svc.Restore(middleware.CurrentUserID(c), c.Param("id"), dto.VersionID)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, d)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errDocNotFound), errors.Is(err, errVersionNotFound),
		errors.Is(err, project.ErrNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, errParentInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
