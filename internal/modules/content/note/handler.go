package note

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/core/internal/middleware"
	"github.com/inkwell/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/notes", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.PATCH("/:id/pin", h.pin)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	var (
		notes interface{}
		err   error
	)
	if q := c.Query("q"); q != "" {
		notes, err = h.svc.Search(userID, q)
	} else {
		notes, err = h.svc.List(userID)
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, notes)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Created(c, n)
}

func (h *Handler) get(c *gin.Context) {
	n, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, n)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, n)
}

func (h *Handler) pin(c *gin.Context) {
	var dto PinNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.SetPinned(middleware.CurrentUserID(c), c.Param("id"), dto.IsPinned)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, n)
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
	case errors.Is(err, errNoteNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, errCategoryInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
