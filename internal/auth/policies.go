package auth

import (
	"fmt"

	"go-cheatsheets-app/internal/logger"

	"github.com/casbin/casbin/v2"
)

// publicPolicies are the routes every role may reach: browsing and
// searching published content, static assets, and the login flow.
var publicPolicies = [][]string{
	{"/", "GET"},
	{"/:slug", "GET"},
	{"/search/*", "GET"},
	{"/static/*", "GET"},
	{"/robots.txt", "GET"},
	{"/sitemap.xml", "GET"},
	{"/login", "GET"},
	{"/login", "POST"},
	{"/logout", "GET"},
}

// SeedDefaultPolicies ensures that the application has a baseline set of
// authorization rules. It checks if each default policy exists before
// adding it, making the operation idempotent and safe to run on every
// application start.
//
// The public routes are granted to both roles explicitly instead of
// through role inheritance: the "/:slug" pattern also matches "/admin",
// so anonymous carries a deny on the admin subtree, and inheriting that
// deny would lock admins out.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	policies := [][]string{}
	for _, p := range publicPolicies {
		policies = append(policies,
			[]string{"anonymous", p[0], p[1], "allow"},
			[]string{"admin", p[0], p[1], "allow"},
		)
	}

	// The deny overrides the "/:slug" allow for anonymous visitors.
	policies = append(policies,
		[]string{"anonymous", "/admin", "GET", "deny"},
		[]string{"anonymous", "/admin/*", "GET", "deny"},
		[]string{"anonymous", "/admin/*", "POST", "deny"},

		[]string{"admin", "/admin", "GET", "allow"},
		[]string{"admin", "/admin/*", "GET", "allow"},
		[]string{"admin", "/admin/*", "POST", "allow"},
	)

	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
