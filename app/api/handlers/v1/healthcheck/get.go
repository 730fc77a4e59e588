package healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/note-sync/platform/web/handler"
)

type status struct {
	Status string `json:"status"`
}

// Get godoc
// @Summary Healthcheck
// @Description Reports whether the service is up
// @Tags Health
// @Produce json
// @Success 200 {object} status
// @Router /v1/healthcheck [get]
func Get(_ *gin.Context) handler.Result {
	return handler.Result{
		Status: http.StatusOK,
		Body:   status{Status: "up"},
	}
}
