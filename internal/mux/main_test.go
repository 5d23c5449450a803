package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"japjap-server/internal/config"
	"japjap-server/internal/jwt"
	"japjap-server/internal/util"
	"japjap-server/pkg/db"
	"japjap-server/pkg/table"
)

var bg = context.Background()

// dbErr is set when Postgres cannot be reached
var dbErr error

func TestMain(m *testing.M) {
	_ = os.Setenv("JAPJAP_JWT_PUBLIC_KEY", filepath.Join("..", "jwt", "testdata", "public.pem"))
	_ = os.Setenv("JAPJAP_JWT_PRIVATE_KEY", filepath.Join("..", "jwt", "testdata", "private.key"))
	if os.Getenv("JAPJAP_MIGRATIONS_PATH") == "" {
		_ = os.Setenv("JAPJAP_MIGRATIONS_PATH", filepath.Join("..", "..", "sql"))
	}

	if err := setup(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func setup() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	if err := jwt.LoadKeys(); err != nil {
		return fmt.Errorf("could not load keys: %w", err)
	}

	if dbErr = db.Available(); dbErr != nil {
		return nil
	}

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("could not migrate: %w", err)
	}

	return nil
}

func requireDB(t *testing.T) {
	t.Helper()

	if dbErr != nil {
		t.Skipf("database is unavailable: %v", dbErr)
	}
}

// signUp creates a player and a token for it
func signUp(t *testing.T, siteAdmin bool) (*table.Player, string) {
	t.Helper()

	p, err := table.CreatePlayer(bg, util.RandomEmail(), "Player", "password", "")
	require.NoError(t, err)

	if siteAdmin {
		require.NoError(t, p.SetIsSiteAdmin(bg, true))
	}

	token, err := jwt.Sign(p.ID)
	require.NoError(t, err)
	return p, token
}

// testServer serves a Mux over HTTP for the duration of a test
type testServer struct {
	*httptest.Server
	t *testing.T
	m *Mux
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	m := NewMux("v1.2.3", nil)
	s := &testServer{Server: httptest.NewServer(m), t: t, m: m}
	t.Cleanup(s.Close)
	return s
}

// request is a single call against the test server
// A string body is sent as is, anything else is encoded as JSON
type request struct {
	method string
	path   string
	token  string
	body   interface{}
}

// do sends the request, asserts the status and decodes the body into out
func (s *testServer) do(req request, status int, out interface{}) *http.Response {
	s.t.Helper()

	var body io.Reader
	switch v := req.body.(type) {
	case nil:
	case string:
		body = strings.NewReader(v)
	default:
		b, err := json.Marshal(v)
		require.NoError(s.t, err)
		body = bytes.NewReader(b)
	}

	method := req.method
	if method == "" {
		method = http.MethodGet
	}

	r, err := http.NewRequest(method, s.URL+req.path, body)
	require.NoError(s.t, err)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		r.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := s.Client().Do(r)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	if assert.Equal(s.t, status, resp.StatusCode, string(raw)) && out != nil {
		assert.NoError(s.t, json.Unmarshal(raw, out))
	}

	return resp
}

func (s *testServer) get(path, token string, status int, out interface{}) *http.Response {
	s.t.Helper()
	return s.do(request{path: path, token: token}, status, out)
}

func (s *testServer) post(path, token string, body interface{}, status int, out interface{}) *http.Response {
	s.t.Helper()
	return s.do(request{method: http.MethodPost, path: path, token: token, body: body}, status, out)
}

// failure sends a request that must fail and returns the error message
func (s *testServer) failure(req request, status int) string {
	s.t.Helper()

	var e errorResponse
	s.do(req, status, &e)
	if status < http.StatusInternalServerError {
		assert.Equal(s.t, status, e.StatusCode)
	}

	return e.Message
}
