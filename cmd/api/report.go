package main

import (
	"StatKeeperApi/internal/report"
	"StatKeeperApi/internal/stats"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GameReport serves the current box score as a CSV download. The report can
// be pulled at any point during the game, not just at the end.
func (app *application) GameReport(w http.ResponseWriter, r *http.Request) {
	hub, ok := app.gameFromRequest(w, r)
	if !ok {
		return
	}

	csv := report.CSV(hub.Statline.Roster(stats.SideHome),
		hub.Statline.Roster(stats.SideAway))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.csv"`, hub.Pin))
	w.WriteHeader(http.StatusOK)

	_, err := w.Write([]byte(csv))
	if err != nil {
		app.logError(r, err)
	}
}

// ArchivedReport serves the stored CSV of a finished game. Finished games
// only exist in the archive, so this 404s whenever archiving is disabled.
func (app *application) ArchivedReport(w http.ResponseWriter, r *http.Request) {
	if app.archive == nil {
		app.notFoundResponse(w, r)
		return
	}

	pin := strings.ToLower(chi.URLParam(r, "pin"))
	box, err := app.archive.GetBoxScore(pin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			app.notFoundResponse(w, r)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.csv"`, box.Pin))
	w.WriteHeader(http.StatusOK)

	_, err = w.Write([]byte(box.CSV))
	if err != nil {
		app.logError(r, err)
	}
}
