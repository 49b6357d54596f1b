package httpserver

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/immofind/ads-service/internal/port/repository"
)

// parseSearchFilter maps the public search query parameters onto a typed
// filter. Numeric parameters that fail to parse are treated as absent, the
// same permissive behavior browsers-built query strings have always had
// against this API; nothing here returns an error.
func parseSearchFilter(q url.Values) repository.SearchFilter {
	return repository.SearchFilter{
		Title:        q.Get("Titre"),
		Location:     q.Get("Location"),
		PropertyType: q.Get("TypeBien"),
		MinPrice:     parseOptionalFloat(q.Get("MinPrix")),
		MaxPrice:     parseOptionalFloat(q.Get("MaxPrix")),
		MinSurface:   parseOptionalFloat(q.Get("MinSurface")),
		MaxSurface:   parseOptionalFloat(q.Get("MaxSurface")),
		Rooms:        parseOptionalInt(q.Get("Pcs")),
	}
}

func parseOptionalFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// parseOffset defaults to 0 on an absent or non-numeric value; there is no
// upper bound, an offset past the corpus just yields an empty page.
func parseOffset(raw string) int64 {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// clientIP prefers the forwarded-for chain's first hop, falling back to the
// connection's remote address. May return "".
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx >= 0 {
			fwd = fwd[:idx]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
