package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/revx-official/output/log"

	"archiveheart/internal/emotion"
	"archiveheart/internal/metrics"
	"archiveheart/internal/share"
)

// Options configures the view server.
type Options struct {
	Addr           string
	BaseURL        string
	DefaultSkin    string
	MaxFileSize    int64
	AllowedOrigins []string
	Classifier     *emotion.Classifier
}

// Server is a stateless HTTP front for the pipeline. Each request works on
// its own session; nothing is stored between requests.
type Server struct {
	opts   Options
	codec  *share.Codec
	router *gin.Engine
}

// NewServer wires routes and middleware.
func NewServer(opts Options) *Server {
	if opts.Classifier == nil {
		opts.Classifier = emotion.NewClassifier(nil)
	}

	s := &Server{opts: opts, codec: share.NewCodec()}

	r := gin.New()
	r.Use(gin.Recovery(), requestID())
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length", requestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	h := NewTimelineHandler(s)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/skins", h.ListSkins)
	r.GET("/skins/:id", h.GetSkin)
	r.GET("/view", h.View)
	r.GET("/view/stats/:year", h.YearStats)
	r.POST("/ingest", h.Ingest)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router = r
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	metrics.Register()

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	log.Infof("view server listening on %s", s.opts.Addr)
	return srv.ListenAndServe()
}

const requestIDHeader = "X-Request-ID"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
		log.Tracef("%s %s %d [%s]", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), id)
	}
}
