package middleware

import (
	"net/http"
)

// apiCSP forbids everything: responses are JSON and are never rendered as a page.
const apiCSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeaders sets browser hardening headers on every response.
// hsts adds Strict-Transport-Security and should only be on behind https.
func SecurityHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "no-referrer")
			headers.Set("Content-Security-Policy", apiCSP)
			// authenticated responses carry private chat data
			headers.Set("Cache-Control", "no-store")
			if hsts {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
