// Package server exposes the decomposition core over HTTP. It is a thin
// (de)serialization adapter around pca.Decompose and mix.Mix; all audio
// math lives in the core packages.
package server

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-pca/mix"
	"github.com/cwbudde/algo-pca/pca"
	"github.com/cwbudde/algo-pca/session"
	"github.com/cwbudde/algo-pca/wav"
)

const defaultComponents = 3

// Config holds the decomposition parameters applied to every request.
type Config struct {
	WindowSize   int
	HopSize      int
	MaxBodyBytes int64
}

// DefaultConfig returns the standard analysis configuration.
func DefaultConfig() Config {
	return Config{
		WindowSize:   2048,
		HopSize:      512,
		MaxBodyBytes: 100 << 20,
	}
}

// Server wires the session store and decomposition parameters into HTTP
// handlers. Construct it with New and mount Router on a listener.
type Server struct {
	store *session.Store
	log   *zap.Logger
	cfg   Config
}

// New creates a server around an injected session store.
func New(store *session.Store, log *zap.Logger, cfg Config) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	if cfg.WindowSize <= 0 {
		cfg.WindowSize = DefaultConfig().WindowSize
	}

	if cfg.HopSize <= 0 {
		cfg.HopSize = DefaultConfig().HopSize
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}

	return &Server{store: store, log: log, cfg: cfg}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware())
	router.MaxMultipartMemory = s.cfg.MaxBodyBytes

	router.GET("/healthz", s.healthz)
	router.POST("/api/process", s.processAudio)
	router.POST("/api/mix", s.mixAudio)

	return router
}

type processResponse struct {
	SessionID      string    `json:"session_id"`
	NumComponents  int       `json:"num_components"`
	Eigenvalues    []float64 `json:"eigenvalues"`
	VarianceRatios []float64 `json:"variance_ratios"`
	SampleRate     int       `json:"sample_rate"`
	// Components holds one base64-encoded WAV per component.
	Components []string `json:"components"`
}

type mixRequest struct {
	SessionID string    `json:"session_id" binding:"required"`
	Volumes   []float64 `json:"volumes"`
}

type mixResponse struct {
	// Audio is the base64-encoded WAV of the mixed waveform.
	Audio string `json:"audio"`
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) processAudio(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "no audio file provided")
		return
	}

	reader, err := file.Open()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "cannot open uploaded file")
		return
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, s.cfg.MaxBodyBytes))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "cannot read uploaded file")
		return
	}

	numComponents := defaultComponents
	if text := c.PostForm("num_components"); text != "" {
		if v, err := strconv.Atoi(text); err == nil {
			numComponents = v
		}
	}

	samples, sampleRate, err := wav.Decode(data)
	if err != nil {
		s.fail(c, err)
		return
	}

	start := time.Now()

	result, err := pca.Decompose(samples, sampleRate, numComponents, s.cfg.WindowSize, s.cfg.HopSize)
	if err != nil {
		s.fail(c, err)
		return
	}

	encoded := make([]string, len(result.Components))
	for i, component := range result.Components {
		data, err := wav.Encode(component.Waveform, result.SampleRate)
		if err != nil {
			s.fail(c, err)
			return
		}
		encoded[i] = base64.StdEncoding.EncodeToString(data)
	}

	id := s.store.Put(result)

	s.log.Info("decomposition complete",
		zap.String("session_id", id),
		zap.Int("components", len(result.Components)),
		zap.Int("samples", len(samples)),
		zap.Int("sample_rate", sampleRate),
		zap.Duration("elapsed", time.Since(start)),
	)

	c.JSON(http.StatusOK, processResponse{
		SessionID:      id,
		NumComponents:  len(result.Components),
		Eigenvalues:    result.Eigenvalues(),
		VarianceRatios: result.VarianceRatios(),
		SampleRate:     result.SampleRate,
		Components:     encoded,
	})
}

func (s *Server) mixAudio(c *gin.Context) {
	var req mixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.store.Get(req.SessionID)
	if err != nil {
		s.fail(c, err)
		return
	}

	mixed := mix.Mix(result.Waveforms(), req.Volumes)

	data, err := wav.Encode(mixed, result.SampleRate)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.log.Info("mix complete",
		zap.String("session_id", req.SessionID),
		zap.Int("volumes", len(req.Volumes)),
	)

	c.JSON(http.StatusOK, mixResponse{
		Audio: base64.StdEncoding.EncodeToString(data),
	})
}

// fail maps core errors onto HTTP statuses: invalid input and unknown
// sessions are client errors, decode and decomposition failures are server
// errors. The underlying message is always carried in the response body.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pca.ErrInvalidInput), errors.Is(err, wav.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, wav.ErrDecode), errors.Is(err, wav.ErrUnsupported),
		errors.Is(err, pca.ErrDecomposition):
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}

	errorResponse(c, status, err.Error())
}

func errorResponse(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "*")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
