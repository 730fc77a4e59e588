package notes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/note-sync/business/v1/note"
	"github.com/ribgsilva/note-sync/platform/web/handler"
)

// List godoc
// @Summary List notes
// @Description Lists the session user's notes
// @Tags Note
// @Produce json
// @Success 200 {array} note.Note
// @Security Bearer
// @Router /v1/notes [get]
func List(ctx *gin.Context) handler.Result {
	notes, err := note.List(ctx.Request.Context())
	switch {
	case errors.Is(err, note.ErrUnauthenticated):
		return handler.Result{
			Status: http.StatusUnauthorized,
			Body:   handler.Error{Message: "no active session"},
		}
	case err != nil:
		return handler.Result{
			Status: http.StatusInternalServerError,
			Body:   handler.Error{Message: err.Error()},
		}
	default:
		return handler.Result{
			Status: http.StatusOK,
			Body:   notes,
		}
	}
}
