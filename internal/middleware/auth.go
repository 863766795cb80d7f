package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskforge/backend/api/transport"
	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/pkg/token"
)

const principalKey = "principal_id"

// JWTAuth guards a route: it rejects requests without a valid bearer token
// before the handler runs, and binds the token's user id as the request
// principal. It performs no persistence.
func JWTAuth(issuer *token.Issuer, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			raw := extractBearer(ctx)
			if raw == "" {
				reject(ctx, "missing bearer token")
				return
			}

			userID, err := issuer.Validate(raw)
			if err != nil {
				logger.Warn("token rejected", zap.Error(err))
				reject(ctx, "invalid or expired token")
				return
			}

			// Bound via user values, not headers, so a client-supplied
			// header can never impersonate a principal.
			ctx.SetUserValue(principalKey, userID)
			next(ctx)
		}
	}
}

// Principal returns the authenticated user id bound by JWTAuth.
func Principal(ctx *fasthttp.RequestCtx) (int64, bool) {
	userID, ok := ctx.UserValue(principalKey).(int64)
	return userID, ok
}

func extractBearer(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

func reject(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewError(string(domain.ErrCodeUnauthorized), message, nil))
	ctx.SetBody(body)
}
