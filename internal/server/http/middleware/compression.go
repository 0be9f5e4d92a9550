package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest caps request bodies at maxBytes and inflates gzip
// encoded ones. The cap applies to the inflated body as well.
func DecompressRequest(maxBytes int64) gin.HandlerFunc {
	limit := func(w http.ResponseWriter, body io.ReadCloser) io.ReadCloser {
		if maxBytes <= 0 {
			return body
		}
		return http.MaxBytesReader(w, body, maxBytes)
	}

	return func(c *gin.Context) {
		c.Request.Body = limit(c.Writer, c.Request.Body)
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		originalBody := c.Request.Body
		reader, err := gzip.NewReader(originalBody)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer originalBody.Close()

		c.Request.Body = limit(c.Writer, io.NopCloser(reader))
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
