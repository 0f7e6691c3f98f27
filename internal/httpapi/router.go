// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

package httpapi

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// indexPage lists the API surface, in the teacher's own minimal
// tmpl.Execute(w, r.Host) style rather than a templating framework.
var indexPage = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Jetan</title></head>
<body>
<h1>Jetan</h1>
<p>Server-authoritative Jetan game engine, running on {{.}}.</p>
<ul>
<li>POST /api/v1/games</li>
<li>GET /api/v1/games/{id}</li>
<li>POST /api/v1/games/{id}/join</li>
<li>POST /api/v1/games/{id}/controls</li>
<li>GET /api/v1/games/{id}/legal?row=R&amp;col=C</li>
<li>POST /api/v1/games/{id}/moves</li>
<li>GET /api/v1/games/{id}/diffs?since=V</li>
</ul>
</body>
</html>
`))

// NewRouter builds the complete gin engine: the home page, the
// /api/v1/games surface, and the error-mapping/logging middleware.
func NewRouter(coord Coordinator, logger *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), errorMiddleware(logger))

	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := indexPage.Execute(c.Writer, c.Request.Host); err != nil {
			logger.Warnw("index template execution failed", "error", err)
		}
	})

	h := &handlers{coord: coord}
	games := r.Group("/api/v1/games")
	{
		games.POST("", h.createGame)
		games.GET("/:id", h.getSnapshot)
		games.POST("/:id/join", h.joinGame)
		games.POST("/:id/controls", h.applyControl)
		games.GET("/:id/legal", h.legalDestinations)
		games.POST("/:id/moves", h.applyMove)
		games.GET("/:id/diffs", h.getDiffs)
	}

	return r
}
