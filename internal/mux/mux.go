package mux

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"
	"japjap-server/internal/config"
	"japjap-server/internal/events"
	"japjap-server/internal/jwt"
	"japjap-server/pkg/room"
	"japjap-server/pkg/table"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxTableKey
)

// uuidPattern matches a table UUID in a route
const uuidPattern = `{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}`

// userIDHeader echoes the authenticated player's ID
const userIDHeader = "JapJap-UserID"

var (
	errUnauthorized = withStatus(http.StatusUnauthorized, errors.New(http.StatusText(http.StatusUnauthorized)))
	errForbidden    = withStatus(http.StatusForbidden, errors.New(http.StatusText(http.StatusForbidden)))
)

// Mux routes the HTTP API and the table websockets
type Mux struct {
	*gmux.Router
	config    muxConfig
	version   string
	recaptcha recaptcha
	pitBoss   *room.PitBoss

	// exposed to tests
	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

type muxConfig struct {
	// playerCreateDelay is the minimum time between two signups from one remote address
	playerCreateDelay time.Duration

	// host is the public URL used to build links to a table
	host string
}

type route struct {
	method  string
	path    string
	handler handlerFunc
}

// NewMux returns the router and starts the pit boss
// A nil publisher drops game events
func NewMux(version string, publisher events.Publisher) *Mux {
	cfg := config.Instance()

	m := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: room.NewPitBoss(room.DBStore{}, publisher),
		config: muxConfig{
			playerCreateDelay: time.Duration(cfg.PlayerCreateDelay) * time.Second,
			host:              strings.TrimRight(cfg.Host, "/"),
		},
		recaptcha: newRecaptcha(cfg.RecaptchaSecret),
	}
	m.pitBoss.StartShift()

	m.authRouter = m.Router.NewRoute().Subrouter()
	m.authRouter.Use(m.authMiddleware)

	// adminRouter inherits authMiddleware
	m.adminRouter = m.authRouter.NewRoute().Subrouter()
	m.adminRouter.Use(m.adminMiddleware)

	m.mount(m.Router, []route{
		{http.MethodGet, "/health", m.getHealth},
		{http.MethodGet, "/game/japjap", m.getGameJapJap},
		{http.MethodPost, "/player", m.postPlayer},
		{http.MethodPost, "/player/auth", m.postPlayerAuth},
		{http.MethodGet, "/player/auth/{jwt:.*}", m.getPlayerAuthJWT},
	})

	m.mount(m.authRouter, []route{
		{http.MethodPost, "/player/{id:[0-9]+}", m.postPlayerID},
		{http.MethodGet, "/table", m.getTable},
		{http.MethodPost, "/table", m.postTable},
	})

	tr := m.authRouter.PathPrefix("/table/" + uuidPattern).Subrouter()
	tr.Use(m.tableMiddleware)
	tr.Methods(http.MethodGet).Path("/ws").Handler(m.getTableUUIDWS())
	m.mount(tr, []route{
		{http.MethodGet, "", m.getTableUUID},
		{http.MethodGet, "/qr.png", m.getTableUUIDQR},
		{http.MethodPost, "/seat", m.postTableUUIDSeat},
	})

	m.mount(m.adminRouter, []route{
		{http.MethodGet, "/player", m.getPlayer},
		{http.MethodGet, "/player/{id:[0-9]+}/table", m.getPlayerIDTable},
		{http.MethodPost, "/admin/player/{id:[0-9]+}", m.postAdminPlayerID},
	})

	return m
}

func (m *Mux) mount(r *gmux.Router, routes []route) {
	for _, rt := range routes {
		r.Methods(rt.method).Path(rt.path).Handler(handle(rt.handler))
	}
}

// bearerToken reads the access_token parameter, falling back to the Authorization header
func bearerToken(r *http.Request) (string, bool) {
	if token := r.FormValue("access_token"); token != "" {
		return token, true
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", false
	}

	return token, true
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		token, ok := bearerToken(r)
		if !ok {
			return errUnauthorized
		}

		id, err := jwt.ValidUserID(token)
		if err != nil {
			return errUnauthorized
		}

		player, err := table.GetPlayerByID(r.Context(), id)
		if err != nil {
			return errUnauthorized
		}

		w.Header().Set(userIDHeader, strconv.FormatInt(player.ID, 10))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxPlayerKey, player)))
		return nil
	})
}

// adminMiddleware only lets site admins through, it runs after authMiddleware
func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		if !playerFrom(r).IsSiteAdmin {
			return errForbidden
		}

		next.ServeHTTP(w, r)
		return nil
	})
}
