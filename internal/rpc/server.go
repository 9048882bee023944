// Package rpc carries command envelopes between the gateway and the
// backend services with broker-style semantics: one request, one reply
// envelope, business status inside the envelope rather than in the
// transport status.
package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"accounthub/internal/envelope"
	"accounthub/internal/utils"
)

// Message is the wire shape of every command request.
type Message struct {
	Cmd  string          `json:"cmd" binding:"required"`
	Data json.RawMessage `json:"data"`
}

// HandlerFunc handles one command. The request id is minted per
// inbound message and must be echoed in the response meta.
type HandlerFunc func(requestID string, data json.RawMessage) envelope.ServiceResponse

// Server dispatches command messages to registered handlers. Every
// reply is HTTP 200; failures travel inside the ServiceResponse.
type Server struct {
	engine   *gin.Engine
	handlers map[string]HandlerFunc
	factory  *envelope.Factory
	log      *zap.SugaredLogger
}

func NewServer(serviceName string, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		handlers: make(map[string]HandlerFunc),
		factory:  envelope.NewFactory(serviceName),
		log:      log,
	}

	engine.POST("/rpc", s.dispatch)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return s
}

// Handle registers a command handler. Registration happens during
// wiring, before Run.
func (s *Server) Handle(cmd string, fn HandlerFunc) {
	s.handlers[cmd] = fn
}

func (s *Server) dispatch(c *gin.Context) {
	requestID := utils.NewRequestID()

	var msg Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusOK, s.factory.Error(
			"VALIDATION_ERROR", "malformed command message", http.StatusBadRequest, err.Error(), requestID,
		))
		return
	}

	fn, ok := s.handlers[msg.Cmd]
	if !ok {
		s.log.Warnw("unknown command", "cmd", msg.Cmd, "requestId", requestID)
		c.JSON(http.StatusOK, s.factory.Error(
			"UNKNOWN_COMMAND", "unknown command: "+msg.Cmd, http.StatusBadRequest, nil, requestID,
		))
		return
	}

	s.log.Infow("command received", "cmd", msg.Cmd, "requestId", requestID)
	c.JSON(http.StatusOK, fn(requestID, msg.Data))
}

// Engine exposes the underlying router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}
