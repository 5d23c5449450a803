package mux

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/badoux/checkmail"
	"github.com/gorilla/mux"
	"japjap-server/internal/jwt"
	"japjap-server/internal/util"
	"japjap-server/pkg/table"
)

// minPasswordLength applies to signups and password changes
const minPasswordLength = 6

var displayNameRx = regexp.MustCompile(`^[\p{L}\p{N} ]{0,40}\z`)

var (
	errDisplayName   = errors.New("display name must only contain letters, numbers, and spaces, and be 40 characters or less")
	errShortPassword = fmt.Errorf("password must be %d or more characters", minPasswordLength)
	errEmailTaken    = errors.New("email address is already taken")
)

var statusOK = map[string]string{"status": "OK"}

type playerPayload struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Token       string `json:"token"`
}

// playerWithEmail exposes the email address
// Only return it to the player themself or to a site admin
type playerWithEmail struct {
	*table.Player
	Email string `json:"email"`
}

func newPlayerWithEmail(p *table.Player) *playerWithEmail {
	return &playerWithEmail{Player: p, Email: p.Email}
}

func withEmails(players []*table.Player) []*playerWithEmail {
	out := make([]*playerWithEmail, len(players))
	for i, p := range players {
		out[i] = newPlayerWithEmail(p)
	}

	return out
}

// validate checks a signup
func (pp playerPayload) validate() error {
	if !displayNameRx.MatchString(pp.DisplayName) {
		return withStatus(http.StatusBadRequest, errDisplayName)
	}

	if checkmail.ValidateFormat(pp.Email) != nil {
		return badRequest("missing or invalid email address")
	}

	if len(pp.Password) < minPasswordLength {
		return withStatus(http.StatusBadRequest, errShortPassword)
	}

	return nil
}

// emailTaken turns a duplicate key into a user facing error
func emailTaken(err error) error {
	if errors.Is(err, table.ErrDuplicateKey) {
		return withStatus(http.StatusBadRequest, errEmailTaken)
	}

	return err
}

// pathID is the {id} route variable, the route pattern guarantees digits
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, withStatus(http.StatusBadRequest, err)
	}

	return id, nil
}

func (m *Mux) postPlayer(w http.ResponseWriter, r *http.Request) error {
	var pp playerPayload
	if err := decodeJSON(r, &pp); err != nil {
		return err
	}

	if err := m.recaptcha.Verify(pp.Token); err != nil {
		return withStatus(http.StatusBadRequest, err)
	}

	if err := pp.validate(); err != nil {
		return err
	}

	addr := remoteAddr(r)
	last, err := table.LastPlayerCreatedAt(r.Context(), addr)
	if err != nil {
		return err
	}

	if time.Since(last) < m.config.playerCreateDelay {
		return badRequest("please wait before creating another player")
	}

	if pp.DisplayName == "" {
		pp.DisplayName = util.GetRandomName()
	}

	player, err := table.CreatePlayer(r.Context(), pp.Email, pp.DisplayName, pp.Password, addr)
	if err != nil {
		return emailTaken(err)
	}

	writeJSON(w, http.StatusCreated, newPlayerWithEmail(player))
	return nil
}

type postPlayerIDPayload struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// postPlayerID lets a player change their own display name or email
func (m *Mux) postPlayerID(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	player := playerFrom(r)
	if player.ID != id {
		return errForbidden
	}

	var pp postPlayerIDPayload
	if err := decodeJSON(r, &pp); err != nil {
		return err
	}

	if pp.DisplayName == "" && pp.Email == "" {
		writeJSON(w, http.StatusOK, statusOK)
		return nil
	}

	if pp.DisplayName != "" {
		if !displayNameRx.MatchString(pp.DisplayName) {
			return withStatus(http.StatusBadRequest, errDisplayName)
		}

		player.DisplayName = pp.DisplayName
	}

	if pp.Email != "" {
		if checkmail.ValidateFormat(pp.Email) != nil {
			return badRequest("invalid email address")
		}

		player.Email = pp.Email
	}

	if err := player.Save(r.Context()); err != nil {
		return emailTaken(err)
	}

	writeJSON(w, http.StatusOK, statusOK)
	return nil
}

type postPlayerAuthResponse struct {
	JWT    string           `json:"jwt"`
	Player *playerWithEmail `json:"player"`
}

func (m *Mux) postPlayerAuth(w http.ResponseWriter, r *http.Request) error {
	var pp playerPayload
	if err := decodeJSON(r, &pp); err != nil {
		return err
	}

	player, err := table.GetPlayerByEmailAndPassword(r.Context(), pp.Email, pp.Password)
	if errors.Is(err, table.ErrInvalidEmailOrPassword) {
		return withStatus(http.StatusUnauthorized, err)
	} else if err != nil {
		return err
	}

	signed, err := jwt.Sign(player.ID)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, postPlayerAuthResponse{JWT: signed, Player: newPlayerWithEmail(player)})
	return nil
}

// getPlayerAuthJWT returns the player a token belongs to
func (m *Mux) getPlayerAuthJWT(w http.ResponseWriter, r *http.Request) error {
	id, err := jwt.ValidUserID(mux.Vars(r)["jwt"])
	if err != nil {
		return withStatus(http.StatusUnauthorized, err)
	}

	player, err := table.GetPlayerByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return withStatus(http.StatusNotFound, errors.New("player does not exist"))
	} else if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, newPlayerWithEmail(player))
	return nil
}

// getPlayer searches players, site admins only
func (m *Mux) getPlayer(w http.ResponseWriter, r *http.Request) error {
	pg, err := parsePage(r)
	if err != nil {
		return withStatus(http.StatusBadRequest, err)
	}

	players, err := table.GetPlayersWithSearch(r.Context(), r.FormValue("search"), pg.offset, pg.limit)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, withEmails(players))
	return nil
}

// getPlayerIDTable lists another player's tables, site admins only
func (m *Mux) getPlayerIDTable(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	player, err := table.GetPlayerByID(r.Context(), id)
	if err != nil {
		return err
	}

	pg, err := parsePage(r)
	if err != nil {
		return withStatus(http.StatusBadRequest, err)
	}

	tables, err := player.GetTables(r.Context(), pg.offset, pg.limit)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, tables)
	return nil
}
