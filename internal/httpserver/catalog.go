package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"racephoto-marketplace/internal/domain"
	"racephoto-marketplace/internal/repository/catalog"
)

func listEventsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := repo.ListEvents(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if events == nil {
			events = []domain.Event{}
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

func listEventClassesHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		classes, err := repo.ListEventClasses(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		if classes == nil {
			classes = []domain.EventClass{}
		}
		c.JSON(http.StatusOK, gin.H{"classes": classes})
	}
}

func searchPhotosHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter catalog.SearchFilter
		if raw := c.Query("eventId"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid eventId"})
				return
			}
			filter.EventID = id
		}
		filter.StartNo = strings.TrimSpace(c.Query("startNo"))
		filter.Class = strings.TrimSpace(c.Query("class"))

		photos, err := repo.SearchPhotos(c.Request.Context(), filter)
		if err != nil {
			writeError(c, err)
			return
		}
		if photos == nil {
			photos = []domain.Photo{}
		}
		c.JSON(http.StatusOK, gin.H{"photos": photos})
	}
}
