package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/note-sync/business/v1/note"
	"github.com/ribgsilva/note-sync/platform/web/handler"
)

// Get godoc
// @Summary Find a note
// @Description Find a note using its id
// @Tags Note
// @Produce json
// @Param id path string true "Note id"
// @Success 200 {object} note.Note
// @Failure 404 {object} handler.Error
// @Security Bearer
// @Router /v1/notes/{id} [get]
func Get(ctx *gin.Context) handler.Result {
	get, err := note.Read(ctx.Request.Context(), ctx.Param("id"))

	switch {
	case err != nil:
		return handler.Result{
			Status: http.StatusInternalServerError,
			Body:   handler.Error{Message: err.Error()},
		}
	case get.ID == "":
		return handler.Result{
			Status: http.StatusNotFound,
			Body:   handler.Error{Message: "note not found"},
		}
	default:
		return handler.Result{
			Status: http.StatusOK,
			Body:   get,
		}
	}
}
