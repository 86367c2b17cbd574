package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

type UploadHandler struct {
	uploadService service.UploadService
	maxBytes      int64
}

func NewUploadHandler(uploadService service.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, maxBytes: maxBytes}
}

// Upload returns a handler storing the multipart "file" field under scope.
func (h *UploadHandler) Upload(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.maxBytes > 0 {
			// leave room for the multipart envelope around the file
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			response.BadRequest(c, "missing file")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			response.BadRequest(c, "unreadable file")
			return
		}
		defer file.Close()

		url, err := h.uploadService.UploadImage(
			c.Request.Context(),
			scope,
			fileHeader.Header.Get("Content-Type"),
			fileHeader.Size,
			file,
		)
		if err != nil {
			writeServiceError(c, err, "upload failed")
			return
		}

		response.Created(c, gin.H{"url": url})
	}
}
