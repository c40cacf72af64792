package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/courtside/badminton-scoring/models"
	"github.com/courtside/badminton-scoring/services"
)

// ScoreHandler exposes one endpoint per umpire action. Every action answers
// with the full updated match document, the same shape scoreboard clients
// receive over WebSocket.
type ScoreHandler struct {
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

func (h *ScoreHandler) respond(w http.ResponseWriter, r *http.Request, match *models.Match, err error) {
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// act runs a match operation resolved from the URL.
func (h *ScoreHandler) act(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, matchID int) (*models.Match, error)) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := op(r.Context(), id)
	h.respond(w, r, match, err)
}

func (h *ScoreHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.scoreService.Start)
}

func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Player string `json:"player"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Player == "" {
		badRequestResponse(w, r, errors.New("player is required"))
		return
	}
	match, err := h.scoreService.Score(r.Context(), id, input.Player)
	h.respond(w, r, match, err)
}

func (h *ScoreHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.scoreService.Undo)
}

func (h *ScoreHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.scoreService.Reset)
}

func (h *ScoreHandler) SwitchSide(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.scoreService.SwitchSide)
}

func (h *ScoreHandler) ChangeSet(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Set int `json:"set"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.scoreService.ChangeSet(r.Context(), id, input.Set)
	h.respond(w, r, match, err)
}

func (h *ScoreHandler) SelectInitialServer(w http.ResponseWriter, r *http.Request) {
	h.playerAction(w, r, h.scoreService.SelectInitialServer)
}

func (h *ScoreHandler) SelectInitialReceiver(w http.ResponseWriter, r *http.Request) {
	h.playerAction(w, r, h.scoreService.SelectInitialReceiver)
}

func (h *ScoreHandler) playerAction(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, matchID int, player string) (*models.Match, error)) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Player string `json:"player"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Player == "" {
		badRequestResponse(w, r, errors.New("player is required"))
		return
	}
	match, err := op(r.Context(), id, input.Player)
	h.respond(w, r, match, err)
}

func (h *ScoreHandler) ForceWin(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Team string `json:"team"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.scoreService.ForceWin(r.Context(), id, input.Team)
	h.respond(w, r, match, err)
}

func (h *ScoreHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.scoreService.Finish)
}

func (h *ScoreHandler) ToggleScoreboard(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.scoreService.ToggleScoreboard)
}

func (h *ScoreHandler) Focus(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.scoreService.Focus)
}

func (h *ScoreHandler) AdjustShuttles(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Delta int `json:"delta"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.scoreService.AdjustShuttles(r.Context(), id, input.Delta)
	h.respond(w, r, match, err)
}
