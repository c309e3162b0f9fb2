package console

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/labshare-dev/labshare/internal/metrics"
)

// newProxy forwards /api requests to the backend host unchanged. Browsers holding
// only the session cookie get it promoted to a bearer header.
func newProxy(target *url.URL, log zerolog.Logger) *httputil.ReverseProxy {
	proxy := httputil.NewSingleHostReverseProxy(target)

	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
		if r.Header.Get("Authorization") == "" {
			if cookie, err := r.Cookie(tokenCookie); err == nil && cookie.Value != "" {
				r.Header.Set("Authorization", "Bearer "+cookie.Value)
			}
		}
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		metrics.Get().ProxyErrors.Inc()
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Proxied API call failed")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]any{
			"code": http.StatusBadGateway,
			"msg":  "backend unavailable",
			"data": nil,
		})
	}

	return proxy
}
