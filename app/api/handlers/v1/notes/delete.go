package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/note-sync/business/v1/note"
	"github.com/ribgsilva/note-sync/platform/web/handler"
)

// Delete godoc
// @Summary Delete a note
// @Description Removes the note at id; unknown ids are not an error
// @Tags Note
// @Param id path string true "Note id"
// @Success 204
// @Security Bearer
// @Router /v1/notes/{id} [delete]
func Delete(ctx *gin.Context) handler.Result {
	if err := note.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		return handler.Result{
			Status: http.StatusInternalServerError,
			Body:   handler.Error{Message: err.Error()},
		}
	}
	return handler.Result{Status: http.StatusNoContent}
}
