// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DDiggs91/Jetan/internal/game"
)

// errorKindStatus maps the coordinator's error taxonomy (§7) to HTTP status
// codes, keeping the literals out of the handlers themselves.
var errorKindStatus = map[game.Kind]int{
	game.KindBadAction: http.StatusBadRequest,
	game.KindSeatError: http.StatusForbidden,
	game.KindConflict:  http.StatusConflict,
	game.KindFinished:  http.StatusGone,
	game.KindNotFound:  http.StatusNotFound,
}

// errorMiddleware centralizes *game.Error -> status code mapping, following
// the teacher's single handleIndex/handleFile dispatch style: handlers
// report an error with c.Error and stop, this writes the response.
func errorMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var gerr *game.Error
		if errors.As(err, &gerr) {
			status, ok := errorKindStatus[gerr.Kind]
			if !ok {
				status = http.StatusInternalServerError
			}
			logger.Warnw("request rejected", "kind", gerr.Kind, "message", gerr.Message, "status", status)
			c.JSON(status, errorBody{Error: errorPayload{Kind: string(gerr.Kind), Message: gerr.Message, Hints: gerr.Hints}})
			return
		}

		logger.Errorw("unhandled request error", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody{Error: errorPayload{Kind: "Internal", Message: "internal error"}})
	}
}

// fail reports a *game.Error to gin's error chain and aborts the handler;
// errorMiddleware turns it into the matching JSON response.
func fail(c *gin.Context, err *game.Error) {
	_ = c.Error(err)
	c.Abort()
}

// requestLogger logs each request at Info, mirroring the teacher's terse
// log.Println call sites but as structured fields.
func requestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Infow("request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status())
	}
}
