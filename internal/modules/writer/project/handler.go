package project

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/core/internal/middleware"
	"github.com/inkwell/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/projects", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)

	g.GET("/:id/bible", h.getBible)
	g.PUT("/:id/bible", h.updateBible)
	g.GET("/:id/memory", h.getMemory)
	g.PUT("/:id/memory", h.updateMemory)
	g.GET("/:id/style", h.getStyle)
	g.PUT("/:id/style", h.updateStyle)

	g.GET("/:id/sources", h.listSources)
	g.POST("/:id/sources", h.createSource)
	g.DELETE("/:id/sources/:sourceId", h.removeSource)
}

func (h *Handler) list(c *gin.Context) {
	projects, err := h.svc.List(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, projects)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.mapError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) getBible(c *gin.Context) {
	b, err := h.svc.GetBible(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) updateBible(c *gin.Context) {
	var dto UpdateBibleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.UpdateBible(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) getMemory(c *gin.Context) {
	m, err := h.svc.GetMemory(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, m)
}

func (h *Handler) updateMemory(c *gin.Context) {
	var dto UpdateMemoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.UpdateMemory(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, m)
}

func (h *Handler) getStyle(c *gin.Context) {
	st, err := h.svc.GetStyle(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, st)
}

func (h *Handler) updateStyle(c *gin.Context) {
	var dto UpdateStyleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	st, err := h.svc.UpdateStyle(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, st)
}

func (h *Handler) listSources(c *gin.Context) {
	sources, err := h.svc.ListSources(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, sources)
}

func (h *Handler) createSource(c *gin.Context) {
	var dto CreateSourceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	src, err := h.svc.CreateSource(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Created(c, src)
}

func (h *Handler) removeSource(c *gin.Context) {
	err := h.svc.DeleteSource(middleware.CurrentUserID(c), c.Param("id"), c.Param("sourceId"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, errSourceNotFound):
		response.NotFoundMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
