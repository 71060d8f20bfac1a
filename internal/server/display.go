package server

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/playperu/stationhunt/internal/hunt"
)

// teamDisplay renders a team id for people: "team7" becomes "Team 7".
func teamDisplay(t hunt.Team) string {
	id := string(t)
	name := strings.TrimRight(id, "0123456789")
	title := cases.Title(language.Und)
	if name == "" || name == id {
		return title.String(id)
	}
	return title.String(name) + " " + id[len(name):]
}
