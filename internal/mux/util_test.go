package mux

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"japjap-server/pkg/table"
)

func Test_remoteAddr(t *testing.T) {
	r := &http.Request{RemoteAddr: "127.0.0.1:5000"}
	assert.Equal(t, "127.0.0.1", remoteAddr(r))

	r.RemoteAddr = "[::1]:5000"
	assert.Equal(t, "::1", remoteAddr(r))

	r.RemoteAddr = "10.0.0.1"
	assert.Equal(t, "10.0.0.1", remoteAddr(r))
}

func Test_parsePage(t *testing.T) {
	parse := func(query string) (page, error) {
		return parsePage(httptest.NewRequest(http.MethodGet, "/"+query, nil))
	}

	pg, err := parse("")
	assert.NoError(t, err)
	assert.Equal(t, page{offset: 0, limit: defaultRows}, pg)

	pg, err = parse("?start=10&rows=25")
	assert.NoError(t, err)
	assert.Equal(t, page{offset: 10, limit: 25}, pg)

	for query, msg := range map[string]string{
		"?start=-1&rows=25": "start cannot be less than zero",
		"?start=0&rows=0":   "rows must be greater than zero",
		fmt.Sprintf("?rows=%d", maxRows+1): fmt.Sprintf("rows cannot be greater than %d", maxRows),
	} {
		pg, err = parse(query)
		assert.EqualError(t, err, msg, query)
		assert.Equal(t, page{}, pg)
	}

	_, err = parse("?start=abc")
	assert.Error(t, err)
}

func Test_writeError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{badRequest("bad %s", "input"), http.StatusBadRequest, `{"message":"bad input","statusCode":400}`},
		{fmt.Errorf("lookup: %w", sql.ErrNoRows), http.StatusNotFound, `{"message":"Not Found","statusCode":404}`},
		{table.ErrTableCoolDown, http.StatusBadRequest, `{"message":"you must wait before you create another table","statusCode":400}`},
		{errors.New("connection refused"), http.StatusInternalServerError, `{"message":"Internal Server Error","statusCode":500}`},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		writeError(w, tt.err)
		assert.Equal(t, tt.status, w.Code)
		assert.JSONEq(t, tt.body, w.Body.String())
	}
}

func Test_decodeJSON(t *testing.T) {
	var payload postTablePayload
	post := func(body, contentType string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/table", strings.NewReader(body))
		if contentType != "" {
			r.Header.Set("Content-Type", contentType)
		}
		return r
	}

	var se *statusError
	err := decodeJSON(post(`{"name":"Test"}`, ""), &payload)
	if assert.ErrorAs(t, err, &se) {
		assert.Equal(t, http.StatusUnsupportedMediaType, se.status)
	}

	err = decodeJSON(post(`{"name":`, "application/json"), &payload)
	if assert.ErrorAs(t, err, &se) {
		assert.Equal(t, http.StatusBadRequest, se.status)
	}

	assert.NoError(t, decodeJSON(post(`{"name":"Test"}`, "text/json"), &payload))
	assert.Equal(t, "Test", payload.Name)
}

func Test_bearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?access_token=abc", nil)
	token, ok := bearerToken(r)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "BEARER xyz")
	token, ok = bearerToken(r)
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)

	r.Header.Set("Authorization", "Basic xyz")
	_, ok = bearerToken(r)
	assert.False(t, ok)
}
