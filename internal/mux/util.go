package mux

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"japjap-server/pkg/table"
)

const (
	defaultRows = 100
	maxRows     = 100
)

// handlerFunc is an http.HandlerFunc that reports failure by returning an error
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn, errors are written with writeError
func handle(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			writeError(w, err)
		}
	})
}

// statusError is an error with the status code it should be reported as
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string {
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func withStatus(status int, err error) error {
	return &statusError{status: status, err: err}
}

func badRequest(format string, args ...interface{}) error {
	return withStatus(http.StatusBadRequest, fmt.Errorf(format, args...))
}

// writeError maps err onto a response
// sql.ErrNoRows becomes a 404, user errors a 400, anything unknown a 500
func writeError(w http.ResponseWriter, err error) {
	var se *statusError
	var ue table.UserError

	switch {
	case errors.As(err, &se):
		writeJSONError(w, se.status, se.err)
	case errors.Is(err, sql.ErrNoRows):
		writeJSONError(w, http.StatusNotFound, nil)
	case errors.As(err, &ue):
		writeJSONError(w, http.StatusBadRequest, ue)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

type page struct {
	offset int64
	limit  int
}

// parsePage reads the start and rows query parameters
func parsePage(r *http.Request) (page, error) {
	p := page{limit: defaultRows}

	if s := r.FormValue("start"); s != "" {
		offset, err := strconv.ParseInt(s, 10, 64)
		switch {
		case err != nil:
			return page{}, err
		case offset < 0:
			return page{}, errors.New("start cannot be less than zero")
		}

		p.offset = offset
	}

	if s := r.FormValue("rows"); s != "" {
		limit, err := strconv.Atoi(s)
		switch {
		case err != nil:
			return page{}, err
		case limit <= 0:
			return page{}, errors.New("rows must be greater than zero")
		case limit > maxRows:
			return page{}, fmt.Errorf("rows cannot be greater than %d", maxRows)
		}

		p.limit = limit
	}

	return p, nil
}

// remoteAddr is the client's IP without the port
func remoteAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}

// decodeJSON reads a JSON request body into payload
func decodeJSON(r *http.Request, payload interface{}) error {
	switch r.Header.Get("Content-Type") {
	case "application/json", "text/json":
	default:
		return withStatus(http.StatusUnsupportedMediaType, errors.New(http.StatusText(http.StatusUnsupportedMediaType)))
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return withStatus(http.StatusBadRequest, err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not encode response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// writeJSONError writes an error body
// Server errors are logged and only their status text is returned
func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	msg := http.StatusText(statusCode)
	if statusCode >= http.StatusInternalServerError {
		logrus.WithField("statusCode", statusCode).WithError(err).Error("request failed")
	} else if err != nil {
		msg = err.Error()
	}

	writeJSON(w, statusCode, errorResponse{Message: msg, StatusCode: statusCode})
}

func playerFrom(r *http.Request) *table.Player {
	return r.Context().Value(ctxPlayerKey).(*table.Player)
}

func tableFrom(r *http.Request) *table.Table {
	return r.Context().Value(ctxTableKey).(*table.Table)
}
