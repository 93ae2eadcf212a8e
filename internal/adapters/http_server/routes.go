package httpserver

import "net/http"

const contentTypeJSON = "application/json"

// Route maps a method and path to a handler and the content type it declares.
type Route struct {
	Method      string
	Pattern     string
	ContentType string
	Handler     http.HandlerFunc
}

func (h *Handlers) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/ws/info/", ContentType: contentTypeJSON, Handler: h.info},
		{Method: http.MethodGet, Pattern: "/ws/data/all", ContentType: contentTypeJSON, Handler: h.dataAll},
		{Method: http.MethodGet, Pattern: "/ws/data/within", ContentType: contentTypeJSON, Handler: h.dataWithin},
		{Method: http.MethodGet, Pattern: "/ws/healthz", ContentType: contentTypeJSON, Handler: h.healthz},
	}
}

func (s *Server) MountHandlers(h *Handlers) {
	for _, rt := range h.Routes() {
		s.mux.Method(rt.Method, rt.Pattern, withContentType(rt.ContentType, rt.Handler))
	}
}

// withContentType sets the declared type up front; handlers may still
// override it (problem responses do).
func withContentType(ct string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", ct)
		next.ServeHTTP(w, r)
	})
}
