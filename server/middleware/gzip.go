package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

var (
	gzipExcludedPaths      = healthPaths
	gzipExcludedExtensions = []string{
		".png", ".gif", ".jpeg", ".jpg", ".webp", ".ico",
		".zip", ".tar", ".gz", ".bz2", ".7z",
		".woff", ".woff2",
	}
)

// Gzip compresses responses for clients that accept gzip. Health endpoints
// and already-compressed assets are left alone.
func Gzip() gin.HandlerFunc {
	return gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths(gzipExcludedPaths),
		gzip.WithExcludedExtensions(gzipExcludedExtensions),
	)
}
