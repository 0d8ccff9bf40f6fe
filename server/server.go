package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/katalvlaran/antcolony/colony"
	"github.com/katalvlaran/antcolony/driver"
	"github.com/katalvlaran/antcolony/logger"
)

// Server routes HTTP requests to a driver.
type Server struct {
	driver       *driver.Driver
	metrics      http.Handler
	log          *slog.Logger
	toggleRadius float64
	upgrader     websocket.Upgrader
	router       *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics mounts h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithLogger replaces logger.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithToggleRadius sets the click radius used by POST /cities/toggle and
// the toggle_city WebSocket command.
func WithToggleRadius(r float64) Option {
	return func(s *Server) {
		if r >= 0 {
			s.toggleRadius = r
		}
	}
}

// WithCheckOrigin overrides the WebSocket origin check (same-origin by default).
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(s *Server) { s.upgrader.CheckOrigin = fn }
}

// New builds the router for d.
func New(d *driver.Driver, opts ...Option) *Server {
	s := &Server{
		driver:       d,
		log:          logger.Default,
		toggleRadius: 10,
		upgrader:     websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.setupRouter()
	return s
}

// Handler returns the http.Handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "antsim"})
	})
	r.GET("/state", s.getState)
	r.GET("/history", s.getHistory)
	r.GET("/params", s.getParams)
	r.PUT("/params", s.putParams)
	r.GET("/cities", s.getCities)
	r.PUT("/cities", s.putCities)
	r.POST("/cities", s.postCity)
	r.POST("/cities/toggle", s.toggleCity)
	r.DELETE("/cities/:index", s.deleteCity)
	r.POST("/reset", func(c *gin.Context) { s.writeFrame(c, http.StatusOK, s.driver.Reset()) })
	r.POST("/pause", func(c *gin.Context) { s.writeFrame(c, http.StatusOK, s.driver.Pause()) })
	r.POST("/resume", func(c *gin.Context) { s.writeFrame(c, http.StatusOK, s.driver.Resume()) })
	r.POST("/step", s.step)
	r.GET("/ws", s.serveWS)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics))
	}
	return r
}

func (s *Server) getState(c *gin.Context) {
	s.writeFrame(c, http.StatusOK, s.driver.Latest())
}

func (s *Server) getHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"run_id": s.driver.RunID(), "history": newHistoryDTO(s.driver.History())})
}

func (s *Server) getParams(c *gin.Context) {
	c.JSON(http.StatusOK, s.driver.Params())
}

func (s *Server) putParams(c *gin.Context) {
	var p colony.Params
	if err := c.ShouldBindJSON(&p); err != nil {
		s.writeError(c, badBody(err))
		return
	}
	f, err := s.driver.SetParams(p)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeFrame(c, http.StatusOK, f)
}

func (s *Server) getCities(c *gin.Context) {
	c.JSON(http.StatusOK, citiesDTO{Cities: s.driver.Latest().Snapshot.Cities})
}

func (s *Server) putCities(c *gin.Context) {
	var body citiesDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		s.writeError(c, badBody(err))
		return
	}
	f, err := s.driver.SetCities(body.Cities)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeFrame(c, http.StatusOK, f)
}

func (s *Server) postCity(c *gin.Context) {
	x, y, ok := s.bindPoint(c)
	if !ok {
		return
	}
	f, err := s.driver.AddCity(x, y)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeFrame(c, http.StatusCreated, f)
}

func (s *Server) toggleCity(c *gin.Context) {
	x, y, ok := s.bindPoint(c)
	if !ok {
		return
	}
	f, err := s.driver.ToggleCity(x, y, s.toggleRadius)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeFrame(c, http.StatusOK, f)
}

func (s *Server) deleteCity(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.writeError(c, badBody(err))
		return
	}
	f, err := s.driver.RemoveCity(index)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeFrame(c, http.StatusOK, f)
}

func (s *Server) step(c *gin.Context) {
	f, err := s.driver.Step()
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeFrame(c, http.StatusOK, f)
}

func (s *Server) bindPoint(c *gin.Context) (float64, float64, bool) {
	var p cityDTO
	if err := c.ShouldBindJSON(&p); err != nil {
		s.writeError(c, badBody(err))
		return 0, 0, false
	}
	if p.X == nil || p.Y == nil {
		s.writeError(c, badBody(errors.New("x and y are required")))
		return 0, 0, false
	}
	return *p.X, *p.Y, true
}

func (s *Server) writeFrame(c *gin.Context, status int, f driver.Frame) {
	c.JSON(status, newFrameDTO(f))
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, dto := classify(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, dto)
}

// classify maps engine errors onto HTTP statuses. Not enough cities is an
// expected, recoverable state and is kept distinct from failures.
func classify(err error) (int, errorDTO) {
	switch {
	case errors.Is(err, colony.ErrInsufficientCities):
		return http.StatusConflict, errorDTO{Error: err.Error(), Code: "insufficient_cities"}
	case errors.Is(err, colony.ErrInvalidInput):
		return http.StatusBadRequest, errorDTO{Error: err.Error(), Code: "invalid_input"}
	case errors.Is(err, colony.ErrIndexOutOfRange):
		return http.StatusNotFound, errorDTO{Error: err.Error(), Code: "not_found"}
	default:
		return http.StatusInternalServerError, errorDTO{Error: err.Error(), Code: "internal"}
	}
}

func badBody(err error) error {
	return errors.Join(colony.ErrInvalidInput, err)
}
