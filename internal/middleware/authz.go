package middleware

import (
	"net/http"

	"go-cheatsheets-app/internal/session"

	"github.com/casbin/casbin/v2"
)

// Authorizer creates a new middleware for authorization.
// It resolves the requester's role from the session ("admin" for users
// carrying the is_admin flag, "anonymous" otherwise), stores the user
// info in the request context, and enforces the Casbin policy for the
// requested path and method.
func Authorizer(e casbin.IEnforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userInfo := &UserInfo{
				ID:       sm.GetInt64(r.Context(), session.KeyUserID),
				Username: sm.GetString(r.Context(), session.KeyUsername),
				IsAdmin:  sm.GetBool(r.Context(), session.KeyIsAdmin),
			}

			subject := "anonymous"
			if userInfo.IsAdmin {
				subject = "admin"
			}

			// Add user info to the request context for downstream handlers.
			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			// Use Casbin to enforce the policy.
			allowed, err := e.Enforce(subject, r.URL.Path, r.Method)
			if err != nil {
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}

			if !allowed {
				if userInfo.Anonymous() {
					// Not logged in: send them to the login form.
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
