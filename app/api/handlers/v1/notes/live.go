package notes

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/business/v1/note"
	"github.com/ribgsilva/note-sync/platform/web/handler"
	"github.com/ribgsilva/note-sync/sys"
)

// Live godoc
// @Summary Live note stream
// @Description Streams complete snapshots of the session user's notes as server-sent events
// @Tags Note
// @Produce text/event-stream
// @Success 200
// @Security Bearer
// @Router /v1/notes/live [get]
func Live(ctx *gin.Context) {
	rctx := ctx.Request.Context()

	sess, ok := account.SessionFrom(rctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, handler.Error{Message: "no active session"})
		return
	}

	sub := note.Live(rctx, sess.UserID)
	defer sub.Cancel()

	ctx.Stream(func(w io.Writer) bool {
		snapshot, ok := <-sub.C
		if !ok {
			return false
		}
		ctx.SSEvent("notes", snapshot)
		return true
	})

	if err := sub.Err(); err != nil {
		sys.R.Log.Errorw("live notes", "user", sess.UserID, "ERROR", err)
	}
}
