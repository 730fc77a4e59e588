package notes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/note-sync/business/v1/note"
	"github.com/ribgsilva/note-sync/platform/web/handler"
)

// Title and text fallbacks live here, at the edge: the store itself
// accepts blank fields.
const (
	fallbackTitle = "No Title"
	fallbackText  = "No Description"
)

// Create godoc
// @Summary Create a note
// @Description Creates a note owned by the session user
// @Tags Note
// @Accept json
// @Produce json
// @Param note body note.NewNote true "Note content"
// @Success 201
// @Failure 400 {object} handler.Error
// @Security Bearer
// @Router /v1/notes [post]
func Create(ctx *gin.Context) handler.Result {
	var newN note.NewNote
	if err := ctx.ShouldBindJSON(&newN); err != nil {
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: "invalid request body"},
		}
	}
	if newN.Title == "" && newN.Text == "" {
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: "note is empty"},
		}
	}
	if newN.Title == "" {
		newN.Title = fallbackTitle
	}
	if newN.Text == "" {
		newN.Text = fallbackText
	}

	err := note.Create(ctx.Request.Context(), note.Note{Title: newN.Title, Text: newN.Text})
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
		return handler.Result{Status: http.StatusCreated}
	}
}
