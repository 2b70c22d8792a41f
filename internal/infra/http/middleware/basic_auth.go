package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/ligue-leads/internal/config"
)

// BasicAuth guards next with the operator credential pair. A configured bcrypt
// hash is checked instead of the plain password.
func BasicAuth(realm string, op config.OperatorConfig) func(http.Handler) http.Handler {
	challenge := fmt.Sprintf(`Basic realm="%s", charset="UTF-8"`, realm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || !validCredentials(op, user, pass) {
				RecordAuthFailure()
				w.Header().Set("WWW-Authenticate", challenge)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "UNAUTHORIZED",
					"message": "Invalid credentials",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func validCredentials(op config.OperatorConfig, user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(op.Username)) == 1

	var passOK bool
	if op.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(pass)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(pass), []byte(op.Password)) == 1
	}

	return userOK && passOK
}
