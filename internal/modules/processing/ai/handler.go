package ai

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/core/internal/middleware"
	"github.com/inkwell/core/internal/modules/writer/project"
	"github.com/inkwell/core/internal/pkg/response"
)

// maxAudioBytes caps transcription uploads.
const maxAudioBytes = 20 << 20

var allowedAudioMIME = map[string]bool{
	"audio/webm":  true,
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/mp4":   true,
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/ogg":   true,
	"audio/x-m4a": true,
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/ai", authMW)
	g.POST("/note_draft", h.noteDraft)
	g.POST("/transcribe_audio", h.transcribeAudio)
	g.POST("/continue_story", h.continueStory)

	w := g.Group("/writer")
	w.POST("/continue", h.writerContinue)
	w.POST("/rewrite", h.rewrite)
	w.POST("/outline", h.outline)
	w.POST("/expand", h.expand)
	w.POST("/consistency", h.consistency)
	w.POST("/style_profile", h.styleProfile)
	w.POST("/ask", h.ask)
}

func (h *Handler) noteDraft(c *gin.Context) {
	var dto NoteDraftDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	draft, err := h.svc.NoteDraft(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, draft)
}

func (h *Handler) transcribeAudio(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		response.BadRequest(c, "audio file is required")
		return
	}
	if file.Size > maxAudioBytes {
		response.BadRequest(c, "audio file exceeds the 20MB limit")
		return
	}
	mimeType := strings.ToLower(strings.TrimSpace(file.Header.Get("Content-Type")))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !allowedAudioMIME[mimeType] {
		response.BadRequest(c, "unsupported audio type")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxAudioBytes))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	transcript, err := h.svc.Transcribe(c.Request.Context(), mimeType, data)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, gin.H{"transcript": transcript})
}

func (h *Handler) continueStory(c *gin.Context) {
	var dto ContinueStoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	text, err := h.svc.ContinueStory(c.Request.Context(), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, gin.H{"content": text})
}

func (h *Handler) writerContinue(c *gin.Context) {
	var dto WriterContinueDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.WriterContinue(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) rewrite(c *gin.Context) {
	var dto RewriteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Rewrite(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) outline(c *gin.Context) {
	var dto OutlineDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Outline(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) expand(c *gin.Context) {
	var dto ExpandDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Expand(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) consistency(c *gin.Context) {
	var dto ConsistencyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Consistency(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) styleProfile(c *gin.Context) {
	var dto StyleProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.StyleProfile(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) ask(c *gin.Context) {
	var dto AskDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Ask(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoAPIKey):
		response.InternalErrorMsg(c, "AI provider key is not configured (NO_GEMINI_KEY)")
	case errors.Is(err, ErrParse):
		response.InternalErrorMsg(c, "AI response could not be parsed (PARSE_ERROR)")
	case errors.Is(err, project.ErrNotFound), errors.Is(err, errDocNotFound):
		response.NotFoundMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
