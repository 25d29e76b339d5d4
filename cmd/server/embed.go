//go:build embed
// +build embed

package main

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed web/dist
var webDist embed.FS

// setupStaticFiles configures the static file serving with embedded frontend
func setupStaticFiles(router *gin.Engine) {
	log.Println("📦 Using embedded frontend assets")

	distFS, err := fs.Sub(webDist, "web/dist")
	if err != nil {
		log.Fatalf("Failed to get dist subdirectory: %v", err)
	}

	fileServer := http.FileServer(http.FS(distFS))

	router.NoRoute(func(c *gin.Context) {
		urlPath := c.Request.URL.Path

		// API routes are handled elsewhere; anything that falls through here
		// is a miss
		if strings.HasPrefix(urlPath, "/api") {
			c.JSON(404, gin.H{"error": "API endpoint not found"})
			return
		}

		// Unknown paths fall back to index.html for SPA routing
		cleanPath := strings.TrimPrefix(path.Clean(urlPath), "/")
		if cleanPath != "" {
			if _, err := fs.Stat(distFS, cleanPath); err != nil {
				c.Request.URL.Path = "/"
			}
		}

		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}
