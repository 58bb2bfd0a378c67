package mw

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/promptdeck/internal/logger"
	"github.com/MrSnakeDoc/promptdeck/internal/utils"
)

func passthrough(next http.Handler) http.Handler { return next }

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": http.StatusText(http.StatusForbidden)})
}

// AllowOnlyCIDRS admits only client IPs inside the allowed IPs/CIDRs.
// An empty list disables the filter.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m, invalid := utils.NewIPMatcher(allowed)
	for _, s := range invalid {
		log.Warn("ignoring invalid allowed CIDR", logger.String("value", s))
	}
	if m.IsEmpty() {
		return passthrough
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Debug("client ip rejected",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EnforceHost admits only requests whose Host matches one of the allowed
// hosts. "*.example.com" matches any subdomain. Ports are ignored.
// An empty list disables the check.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		return passthrough
	}

	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		patterns = append(patterns, strings.ToLower(stripPort(h)))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(stripPort(r.Host))
			for _, pattern := range patterns {
				if matchHost(host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Debug("host rejected", logger.String("host", r.Host))
			forbidden(w)
		})
	}
}

// Admin guards operator endpoints with both the CIDR and the Host checks.
func Admin(cidrs, hosts []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	allowIP := AllowOnlyCIDRS(cidrs, trustProxy, log)
	allowHost := EnforceHost(hosts, log)
	return func(next http.Handler) http.Handler {
		return allowIP(allowHost(next))
	}
}

func matchHost(host, pattern string) bool {
	if host == pattern {
		return true
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return strings.HasSuffix(host, suffix)
	}
	return false
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
