package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/note-sync/app/api/middleware"
	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/platform/web/handler"
	"github.com/ribgsilva/note-sync/sys"
)

// SignUp godoc
// @Summary Register an account
// @Description Creates an account and returns a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body auth.Credentials true "Account credentials"
// @Success 201 {object} auth.Token
// @Failure 400 {object} handler.Error
// @Router /v1/auth/signup [post]
func SignUp(ctx *gin.Context) handler.Result {
	var creds Credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: "invalid request body"},
		}
	}

	sess, err := account.SignUp(ctx.Request.Context(), creds.Email, creds.Password)
	switch {
	case account.IsAuthError(err):
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: account.Message(err)},
		}
	case err != nil:
		sys.R.Log.Errorw("signup", "ERROR", err)
		return handler.Result{
			Status: http.StatusInternalServerError,
			Body:   handler.Error{Message: account.Message(err)},
		}
	}

	token, err := middleware.IssueToken(sess.UserID)
	if err != nil {
		sys.R.Log.Errorw("signup", "ERROR", err)
		return handler.Result{
			Status: http.StatusInternalServerError,
			Body:   handler.Error{Message: account.Message(err)},
		}
	}

	return handler.Result{
		Status: http.StatusCreated,
		Body:   Token{Token: token, UserID: sess.UserID},
	}
}
