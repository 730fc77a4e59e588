package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/platform/web/handler"
)

// SignOut godoc
// @Summary Sign out
// @Description Clears the device session
// @Tags Auth
// @Success 204
// @Router /v1/auth/signout [post]
func SignOut(_ *gin.Context) handler.Result {
	account.SignOut()
	return handler.Result{Status: http.StatusNoContent}
}
