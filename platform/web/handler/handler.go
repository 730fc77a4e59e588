package handler

import (
	"github.com/gin-gonic/gin"
)

// Result is what a handler produces: a status code plus an optional json body
type Result struct {
	Status int
	Body   any
}

// Error is the json error body returned by the api
type Error struct {
	Message string `json:"message"`
}

// Wrapper adapts a Result-returning handler into a gin handler
func Wrapper(h func(ctx *gin.Context) Result) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		r := h(ctx)
		if r.Body == nil {
			ctx.Status(r.Status)
			return
		}
		ctx.JSON(r.Status, r.Body)
	}
}
