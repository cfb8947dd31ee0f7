package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"book_my_hotel/internal/app"
	"book_my_hotel/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	B *app.BookingService
	U *app.UserService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/hotels", h.searchHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.Get("/hotels/{id}/reviews", h.listReviews)

		r.Post("/bookings/quote", h.quote)
		r.Post("/bookings", h.createBooking)
		r.Get("/bookings", h.listBookings)
		r.Get("/bookings/{id}", h.getBooking)
		r.Patch("/bookings/{id}", h.patchBooking)
		r.Delete("/bookings/{id}", h.deleteBooking)

		r.Get("/users", h.listUsers)
		r.Post("/users", h.createUser)
		r.Get("/users/{id}", h.getUser)
		r.Patch("/users/{id}", h.patchUser)

		r.Get("/stats", h.stats)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrRoomUnavailable):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "request was cancelled before it completed")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable writes v with a weak ETag, answering 304 when the client
// already holds the same representation.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if etag != "" {
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write cacheable body")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

func queryInt64(r *http.Request, key string) (*int64, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errors.New(key + " must be an integer")
	}
	return &n, nil
}

/********** hotels **********/

// searchCriteria reads the json-server style query: location_like,
// rating_gte, price_gte, price_lte and repeated amenities_like.
func searchCriteria(r *http.Request) (domain.SearchCriteria, error) {
	q := r.URL.Query()
	c := domain.SearchCriteria{Location: strings.TrimSpace(q.Get("location_like"))}

	if s := strings.TrimSpace(q.Get("rating_gte")); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || f > domain.MaxRating {
			return c, errors.New("rating_gte must be a number between 0 and 5")
		}
		c.MinRating = &f
	}

	lo, err := queryInt64(r, "price_gte")
	if err != nil {
		return c, err
	}
	hi, err := queryInt64(r, "price_lte")
	if err != nil {
		return c, err
	}
	if lo != nil || hi != nil {
		pr := domain.PriceRange{Min: 0, Max: domain.NoUpperBound}
		if lo != nil {
			pr.Min = *lo
		}
		if hi != nil {
			pr.Max = *hi
		}
		if pr.Min > pr.Max {
			return c, errors.New("price_gte must not exceed price_lte")
		}
		c.Price = &pr
	}

	for _, a := range q["amenities_like"] {
		if a = strings.TrimSpace(a); a != "" {
			c.Amenities = append(c.Amenities, a)
		}
	}
	return c, nil
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	c, err := searchCriteria(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	out, err := h.Q.SearchHotels(r.Context(), c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	hotel, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, hotel)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	limit := domain.DefaultReviewLimit
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > domain.MaxReviewLimit {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	// newest first
	out, err := h.Q.ListReviews(r.Context(), id, domain.PageQuery{Limit: limit})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

/********** bookings **********/

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if status, err := decode(r, &req); err != nil {
		writeProblem(w, status, http.StatusText(status), err.Error())
		return
	}
	in, err := req.toApp()
	if err != nil {
		writeError(w, r, err)
		return
	}
	q, err := h.B.Quote(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if status, err := decode(r, &req); err != nil {
		writeProblem(w, status, http.StatusText(status), err.Error())
		return
	}
	in, err := req.toApp()
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.B.Submit(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/bookings/"+b.ID)
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	var q domain.BookingsQuery
	var err error
	if q.UserID, err = queryInt64(r, "userId"); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	if q.HotelID, err = queryInt64(r, "hotelId"); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	out, err := h.Q.ListBookings(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Q.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) patchBooking(w http.ResponseWriter, r *http.Request) {
	var req patchBookingRequest
	if status, err := decode(r, &req); err != nil {
		writeProblem(w, status, http.StatusText(status), err.Error())
		return
	}
	b, err := h.B.Transition(r.Context(), chi.URLParam(r, "id"), domain.Status(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.B.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/********** users **********/

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	out, err := h.U.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if status, err := decode(r, &req); err != nil {
		writeProblem(w, status, http.StatusText(status), err.Error())
		return
	}
	u, err := h.U.Create(r.Context(), domain.User{Name: req.Name, Email: req.Email, Phone: req.Phone, Preferences: req.Preferences})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/users/"+strconv.FormatInt(u.ID, 10))
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := h.U.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) patchUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req patchUserRequest
	if status, err := decode(r, &req); err != nil {
		writeProblem(w, status, http.StatusText(status), err.Error())
		return
	}
	u, err := h.U.Update(r.Context(), id, req.toDomain())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Q.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
