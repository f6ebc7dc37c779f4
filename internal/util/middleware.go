package util

import (
	"net/http"
	"strings"
)

const gatewayPrefix = "/api/network-planner"

// GatewayApiRewrite removes /api/network-planner from the path
// in case we get the request from gateway
func GatewayApiRewrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, gatewayPrefix) {
			r.URL.Path = strings.TrimPrefix(r.URL.Path, gatewayPrefix)
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
		}

		next.ServeHTTP(w, r)
	})
}
