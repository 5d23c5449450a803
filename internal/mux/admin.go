package mux

import (
	"context"
	"net/http"

	"japjap-server/pkg/table"
)

type adminPostPlayerIDRequest struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// adminSetter applies one admin change to a player
type adminSetter func(ctx context.Context, p *table.Player, value interface{}) error

var adminSetters = map[string]adminSetter{
	"password": func(ctx context.Context, p *table.Player, value interface{}) error {
		password, ok := value.(string)
		if !ok {
			return badRequest("password must be a string")
		}

		if len(password) < minPasswordLength {
			return withStatus(http.StatusBadRequest, errShortPassword)
		}

		return p.SetPassword(ctx, password)
	},
	"isSiteAdmin": func(ctx context.Context, p *table.Player, value interface{}) error {
		isSiteAdmin, ok := value.(bool)
		if !ok {
			return badRequest("isSiteAdmin must be a boolean")
		}

		return p.SetIsSiteAdmin(ctx, isSiteAdmin)
	},
}

// postAdminPlayerID lets a site admin reset a password or change the admin flag
func (m *Mux) postAdminPlayerID(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	player, err := table.GetPlayerByID(r.Context(), id)
	if err != nil {
		return err
	}

	var req adminPostPlayerIDRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	set, ok := adminSetters[req.Key]
	if !ok {
		return badRequest("bad payload")
	}

	if err := set(r.Context(), player, req.Value); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, statusOK)
	return nil
}
