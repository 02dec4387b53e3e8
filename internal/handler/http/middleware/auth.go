package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/paf-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests whose verified token is missing, invalid or
// not an access token. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, jwt.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.HandleError(w, jwt.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
