package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prodexpert/expertise-api/internal/api/handler/v1/response"
	"github.com/prodexpert/expertise-api/internal/pkg/jwthelper"
)

// CtxKeyUserID is where VerifyJWT stores the authenticated user's ID in
// the gin context.
const CtxKeyUserID = "userID"

var (
	errMissingAuthHeader = errors.New("missing or malformed Authorization header")
	errWrongUserAgent    = errors.New("token was issued for a different client")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingAuthHeader))

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		// A token stolen cross-device carries the wrong User-Agent.
		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized(errWrongUserAgent))

			return
		}

		ctx.Set(CtxKeyUserID, claims.UserID)
		ctx.Next()
	}
}
