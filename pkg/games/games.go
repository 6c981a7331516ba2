// Package games is the catalog of applications whose inventories can be
// traded, keyed by application id.
package games

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotSupported indicates an application is not in the catalog.
var ErrNotSupported = errors.New("games: not supported")

// Option identifies the inventory context of an application.
type Option struct {
	Name      string
	AppID     string
	ContextID string
}

// Catalog entries. Several options may share an AppID with different contexts.
var (
	Dota2   = Option{Name: "DOTA2", AppID: "570", ContextID: "2"}
	CS      = Option{Name: "CS", AppID: "730", ContextID: "2"}
	TF2     = Option{Name: "TF2", AppID: "440", ContextID: "2"}
	Gifts   = Option{Name: "GIFTS", AppID: "753", ContextID: "1"}
	Cards   = Option{Name: "CARDS", AppID: "753", ContextID: "6"}
	Payday2 = Option{Name: "PAYDAY2", AppID: "218620", ContextID: "2"}
	H1Z1    = Option{Name: "H1Z1", AppID: "433850", ContextID: "1"}
	PUBG    = Option{Name: "PUBG", AppID: "578080", ContextID: "2"}
)

var catalog = []Option{Dota2, CS, TF2, Gifts, Cards, Payday2, H1Z1, PUBG}

// All returns a copy of the catalog in declaration order.
func All() []Option {
	out := make([]Option, len(catalog))
	copy(out, catalog)
	return out
}

// ByAppID returns the first option registered for appID.
func ByAppID(appID string) (Option, error) {
	for _, o := range catalog {
		if o.AppID == appID {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("%w: app id %q", ErrNotSupported, appID)
}

// ByName returns the option with the given name, ignoring case.
func ByName(name string) (Option, error) {
	for _, o := range catalog {
		if strings.EqualFold(o.Name, name) {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("%w: %q", ErrNotSupported, name)
}
