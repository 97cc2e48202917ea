package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/models"
	"inkwell/utils"
)

// ContextViewedPostKey is set by post read handlers to the id of the post
// that was served, marking it for view counting.
const ContextViewedPostKey = "viewed_post_id"

// PostViewRecorder increments the served post's view counter after the
// response is written. Fire-and-forget: failures are logged, never retried,
// and never affect the request outcome.
func PostViewRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodGet {
			return
		}
		if status := c.Writer.Status(); status < 200 || status >= 300 {
			return
		}
		value, ok := c.Get(ContextViewedPostKey)
		if !ok {
			return
		}
		postID, _ := value.(uint)
		if postID == 0 {
			return
		}

		go func(id uint) {
			err := db.Model(&models.Post{}).Where("id = ?", id).
				UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
			if err != nil && utils.Sugar != nil {
				utils.Sugar.Warnf("view count increment failed post=%d err=%v", id, err)
			}
		}(postID)
	}
}
