package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/note-sync/app/api/handlers/v1/auth"
	"github.com/ribgsilva/note-sync/app/api/handlers/v1/healthcheck"
	"github.com/ribgsilva/note-sync/app/api/handlers/v1/notes"
	"github.com/ribgsilva/note-sync/app/api/middleware"
	"github.com/ribgsilva/note-sync/platform/web/handler"
)

func MapDefaults(r *gin.Engine) {
	r.GET("/v1/healthcheck", handler.Wrapper(healthcheck.Get))
}

func MapApi(r *gin.Engine) {
	r.POST("/v1/auth/signup", handler.Wrapper(auth.SignUp))
	r.POST("/v1/auth/signin", handler.Wrapper(auth.SignIn))

	sessioned := r.Group("/", middleware.Session())
	sessioned.POST("/v1/auth/signout", handler.Wrapper(auth.SignOut))
	sessioned.GET("/v1/notes", handler.Wrapper(notes.List))
	sessioned.GET("/v1/notes/live", notes.Live)
	sessioned.GET("/v1/notes/:id", handler.Wrapper(notes.Get))
	sessioned.POST("/v1/notes", handler.Wrapper(notes.Create))
	sessioned.PUT("/v1/notes/:id", handler.Wrapper(notes.Update))
	sessioned.DELETE("/v1/notes/:id", handler.Wrapper(notes.Delete))
}
