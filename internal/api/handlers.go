package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"archiveheart/internal/emotion"
	"archiveheart/internal/exporters"
	"archiveheart/internal/parser"
	"archiveheart/internal/session"
	"archiveheart/internal/share"
	"archiveheart/internal/skin"
	"archiveheart/internal/timeline"
)

// TimelineHandler serves the view, stats and ingest endpoints.
type TimelineHandler struct {
	server *Server
}

// NewTimelineHandler creates a TimelineHandler bound to a server.
func NewTimelineHandler(s *Server) *TimelineHandler {
	return &TimelineHandler{server: s}
}

// ViewResponse is everything a timeline page needs to render.
type ViewResponse struct {
	exporters.Document
	Skin     skin.Skin `json:"skin"`
	ShareURL string    `json:"shareUrl,omitempty"`
}

func (h *TimelineHandler) newSession() *session.Session {
	return session.New(session.Options{
		BaseURL:     h.server.opts.BaseURL,
		MaxFileSize: h.server.opts.MaxFileSize,
		DefaultSkin: h.server.opts.DefaultSkin,
		Classifier:  h.server.opts.Classifier,
		Codec:       h.server.codec,
	})
}

// ListSkins returns every registered skin.
func (h *TimelineHandler) ListSkins(c *gin.Context) {
	c.JSON(http.StatusOK, skin.All())
}

// GetSkin resolves a skin id, falling back to the default skin.
func (h *TimelineHandler) GetSkin(c *gin.Context) {
	c.JSON(http.StatusOK, skin.Resolve(c.Param("id")))
}

// View decodes the data parameter and returns the rebuilt timeline.
func (h *TimelineHandler) View(c *gin.Context) {
	sess := h.newSession()
	ds, err := sess.Load(c.Request.URL.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ViewResponse{Document: exporters.BuildDocument(ds), Skin: sess.Skin()})
}

// YearStats returns the statistics of one year of a shared timeline.
func (h *TimelineHandler) YearStats(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return
	}

	sess := h.newSession()
	ds, err := sess.Load(c.Request.URL.String())
	if err != nil {
		respondError(c, err)
		return
	}

	tracks := timeline.FilterByYear(ds.Tracks(), year)
	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"stats":        sess.StatsFor(ds, year),
		"distribution": emotion.Distribution(tracks),
	})
}

// Ingest accepts one or more multipart "file" fields and returns the new
// timeline together with its share link.
func (h *TimelineHandler) Ingest(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, &parser.ParseError{Cause: err})
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	sources := make([]session.Source, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			respondError(c, &parser.ParseError{Cause: err})
			return
		}
		defer f.Close()
		sources = append(sources, session.Source{Name: fh.Filename, Reader: f})
	}

	sess := h.newSession()
	if id := c.PostForm("skin"); id != "" {
		sess.SelectSkin(id)
	}

	ds, err := sess.Ingest(sources...)
	if err != nil {
		respondError(c, err)
		return
	}
	link, err := sess.Share(ds, "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ViewResponse{Document: exporters.BuildDocument(ds), Skin: sess.Skin(), ShareURL: link})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, parser.ErrParse):
		status = http.StatusBadRequest
	case errors.Is(err, share.ErrDecode):
		status = http.StatusBadRequest
	case errors.Is(err, timeline.ErrEmptyDataset):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, share.ErrCompression):
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": session.UserMessage(err), "detail": err.Error()})
}
