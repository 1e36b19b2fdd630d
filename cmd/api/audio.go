package main

import (
	"StatKeeperApi/internal/oracle"
	"StatKeeperApi/internal/stats"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// StatFromAudio sends a recorded clip to the classification oracle and, when
// it comes back with a usable event, applies it to the game exactly as if a
// keeper had entered it by hand. An unclear clip applies nothing and returns
// a null event.
func (app *application) StatFromAudio(w http.ResponseWriter, r *http.Request) {
	hub, ok := app.gameFromRequest(w, r)
	if !ok {
		return
	}

	var input struct {
		Audio string `json:"audio"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	audio, err := base64.StdEncoding.DecodeString(input.Audio)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"audio": "must be valid base64"})
		return
	}
	if len(audio) == 0 {
		app.failedValidationResponse(w, r, map[string]string{"audio": "must be provided"})
		return
	}

	if !hub.BeginClassification() {
		app.classificationBusyResponse(w, r)
		return
	}
	defer hub.EndClassification()

	requestID := uuid.NewString()
	app.logger.PrintInfo("classifying audio", map[string]string{
		"pin":        hub.Pin,
		"request_id": requestID,
		"bytes":      strconv.Itoa(len(audio)),
	})

	event, err := app.oracle.Classify(r.Context(), audio,
		teamDataFromRoster(hub.Statline.Roster(stats.SideHome)),
		teamDataFromRoster(hub.Statline.Roster(stats.SideAway)))
	if err != nil {
		app.oracleUnavailableResponse(w, r, fmt.Errorf("request %s: %w", requestID, err))
		return
	}

	if event == nil {
		app.logger.PrintInfo("audio unclear", map[string]string{
			"pin":        hub.Pin,
			"request_id": requestID,
		})
		err = app.writeJSON(w, http.StatusOK, envelope{"event": nil}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	player, applyErr := app.applyOracleEvent(hub, event)
	if applyErr != nil {
		app.statErrorResponse(w, r, applyErr)
		return
	}

	app.logger.PrintInfo("audio event applied", map[string]string{
		"pin":        hub.Pin,
		"request_id": requestID,
		"category":   event.Category,
	})

	err = app.writeJSON(w, http.StatusOK, envelope{
		"event":  eventDto(event),
		"player": player,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func eventDto(event *oracle.Event) envelope {
	dto := envelope{
		"category":     event.Category,
		"side":         event.Side.String(),
		"player_index": event.PlayerIndex,
	}
	switch event.Category {
	case oracle.CategoryShot:
		dto["shot_type"] = event.Shot.String()
		dto["made"] = event.Made
	case oracle.CategoryNonShot:
		dto["stat"] = event.Stat.String()
		dto["delta"] = event.Delta
	}
	return dto
}

func (app *application) applyOracleEvent(hub hubApplier, event *oracle.Event) (stats.Player,
	error) {
	switch event.Category {
	case oracle.CategoryShot:
		return hub.ApplyShot(event.Side, event.PlayerIndex, event.Shot, event.Made)
	case oracle.CategoryNonShot:
		return hub.ApplyStat(event.Side, event.PlayerIndex, event.Stat, event.Delta)
	default:
		return stats.Player{}, errors.New("unknown oracle event category")
	}
}

// hubApplier is the slice of the hub the oracle path needs.
type hubApplier interface {
	ApplyShot(side stats.GameSide, index int, shot stats.ShotType, made bool) (stats.Player,
		error)
	ApplyStat(side stats.GameSide, index int, stat stats.PlayerStat, delta int) (stats.Player,
		error)
}

func teamDataFromRoster(r stats.Roster) oracle.TeamData {
	data := oracle.TeamData{
		TeamName: r.TeamName,
		Players:  make([]oracle.PlayerEntry, 0, len(r.Players)),
	}
	for _, p := range r.Players {
		data.Players = append(data.Players, oracle.PlayerEntry{Name: p.Name, Number: p.Number})
	}
	return data
}
