package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
)

// BodyKey is where the parsed request body is stored on the gin context
const BodyKey = "body"

func respondWithError(c *gin.Context, log zerolog.Logger, statusCode int, err error, message string) {
	log.Warn().Err(err).Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
	c.Abort()
}

// loggingMiddleware logs one line per request in the style of a development
// access log
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

// bodyParserMiddleware decodes JSON and URL-encoded bodies up front so that
// malformed payloads are rejected before any handler runs
func (s *Server) bodyParserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		switch c.ContentType() {
		case binding.MIMEJSON:
			var body any
			if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
				respondWithError(c, s.logger, http.StatusBadRequest, err, "Invalid JSON body")
				return
			}
			c.Set(BodyKey, body)
		case binding.MIMEPOSTForm:
			if err := c.Request.ParseForm(); err != nil {
				respondWithError(c, s.logger, http.StatusBadRequest, err, "Invalid form body")
				return
			}
			c.Set(BodyKey, c.Request.PostForm)
		}

		c.Next()
	}
}
