package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"airport_lookup/internal/app"
	"airport_lookup/internal/domain"
)

type Handlers struct {
	Q    *app.QueryService
	Info domain.Info
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// airportView is the public shape of an airport; the IATA code stays internal.
type airportView struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func toViews(as []domain.Airport) []airportView {
	out := make([]airportView, len(as))
	for i, a := range as {
		out[i] = airportView{Name: a.Name, Latitude: a.Latitude, Longitude: a.Longitude}
	}
	return out
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

// writeJSON writes v with a weak ETag, answering 304 when the client
// already holds the same representation.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body, err := calcETagAndBody(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal response failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not encode response")
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write response body failed")
	}
}

func (h *Handlers) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Info)
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, "OK")
}

func (h *Handlers) dataAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.Q.All(r.Context())
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", err.Error())
		return
	}
	writeJSON(w, r, toViews(all))
}

func (h *Handlers) dataWithin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	box, err := app.ParseBoundingBox(q.Get("lat1"), q.Get("lon1"), q.Get("lat2"), q.Get("lon2"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeProblem(w, http.StatusBadRequest, "Invalid bounding box", err.Error())
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	res, err := h.Q.Within(r.Context(), box)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", err.Error())
		return
	}
	writeJSON(w, r, toViews(res))
}
