package mux

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"
	"japjap-server/pkg/table"
)

// qrCodeSize is the width and height of a table's QR code in pixels
const qrCodeSize = 256

var (
	errTableName = errors.New("name must be 3-40 characters")
	tableNameRx  = regexp.MustCompile(`\w`)
)

type postTablePayload struct {
	Name string `json:"name"`
}

type getTableUUIDResponse struct {
	*table.Table
	Players []*table.PlayerTable `json:"players"`
	JoinURL string               `json:"joinUrl"`
}

// getTable lists the requesting player's tables
func (m *Mux) getTable(w http.ResponseWriter, r *http.Request) error {
	pg, err := parsePage(r)
	if err != nil {
		return withStatus(http.StatusBadRequest, err)
	}

	tables, err := playerFrom(r).GetTables(r.Context(), pg.offset, pg.limit)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, tables)
	return nil
}

func (m *Mux) postTable(w http.ResponseWriter, r *http.Request) error {
	var pp postTablePayload
	if err := decodeJSON(r, &pp); err != nil {
		return err
	}

	if n := len(pp.Name); n < 3 || n > 40 || !tableNameRx.MatchString(pp.Name) {
		return withStatus(http.StatusBadRequest, errTableName)
	}

	tbl, err := playerFrom(r).CreateTable(r.Context(), pp.Name)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, tbl)
	return nil
}

func (m *Mux) getTableUUID(w http.ResponseWriter, r *http.Request) error {
	tbl := tableFrom(r)
	seats, err := tbl.GetPlayers(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, getTableUUIDResponse{Table: tbl, Players: seats, JoinURL: m.joinURL(tbl)})
	return nil
}

// joinURL is the link players follow to take a seat
func (m *Mux) joinURL(tbl *table.Table) string {
	return fmt.Sprintf("%s/table/%s", m.config.host, tbl.UUID)
}

// getTableUUIDQR renders the join URL as a PNG QR code
func (m *Mux) getTableUUIDQR(w http.ResponseWriter, r *http.Request) error {
	png, err := qrcode.Encode(m.joinURL(tableFrom(r)), qrcode.Medium, qrCodeSize)
	if err != nil {
		return err
	}

	h := w.Header()
	h.Set("Content-Type", "image/png")
	h.Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(png); err != nil {
		logrus.WithError(err).Warn("could not write QR code")
	}

	return nil
}

// postTableUUIDSeat seats the requesting player
func (m *Mux) postTableUUIDSeat(w http.ResponseWriter, r *http.Request) error {
	seat, err := playerFrom(r).Join(r.Context(), tableFrom(r))
	if errors.Is(err, table.ErrDuplicateKey) {
		return badRequest("player is already at the table")
	} else if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, seat)
	return nil
}

// tableMiddleware loads the {uuid} table into the request context
func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		tbl, err := table.GetTableByUUID(r.Context(), mux.Vars(r)["uuid"])
		if err != nil {
			return err
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxTableKey, tbl)))
		return nil
	})
}
