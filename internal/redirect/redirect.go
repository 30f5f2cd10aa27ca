package redirect

import (
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Config names the apex domain and the subdomain the storefront lives on.
type Config struct {
	MainDomain string
	Subdomain  string
}

// Handler sends apex and www traffic to the storefront subdomain with a
// permanent redirect, preserving path and query.
type Handler struct {
	cfg    Config
	logger zerolog.Logger
}

// NewHandler creates a new redirect handler.
func NewHandler(cfg Config, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:    cfg,
		logger: logger.With().Str("component", "redirect").Logger(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	host := hostname(r.Host)

	if !strings.EqualFold(host, h.cfg.MainDomain) && !strings.EqualFold(host, "www."+h.cfg.MainDomain) {
		http.NotFound(w, r)
		return
	}

	target := "https://" + h.cfg.Subdomain + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	h.logger.Info().
		Str("host", host).
		Str("target", target).
		Msg("redirecting to storefront subdomain")
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

// hostname strips an optional port from a Host header value.
func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
