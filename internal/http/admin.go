package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nina-movie/internal/service"
	"nina-movie/internal/storage"
)

type publishRequest struct {
	LocalDir string `json:"localDir" binding:"required"`
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"lastModified,omitempty"`
}

func (h *Handler) listMedia(c *gin.Context) {
	objects, err := h.media.Objects(c.Request.Context(), c.Query("movieId"))
	if err != nil {
		h.mediaFailure(c, err)
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) publishMedia(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movieID := c.Param("id")
	location, err := h.media.Publish(c.Request.Context(), movieID, req.LocalDir, func(done, total int64) {
		h.logger.Debugf("publish %s: %d/%d bytes", movieID, done, total)
	})
	if err != nil {
		h.mediaFailure(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"movieId": movieID, "location": location})
}

func (h *Handler) deleteMedia(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	movieID := c.Param("id")
	if err := h.media.Unpublish(ctx, movieID); err != nil {
		h.mediaFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": movieID})
}

func (h *Handler) mediaFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStorageNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("media operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func objectToResponse(obj storage.Object) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
