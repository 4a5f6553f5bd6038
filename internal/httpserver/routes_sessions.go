// internal/httpserver/routes_sessions.go
//
// Session routes:
//   - POST   /sessions               → create an idle session, returns id + token
//   - GET    /sessions/{id}          → current snapshot
//   - POST   /sessions/{id}/start    → begin (or restart after game over)
//   - POST   /sessions/{id}/answer   → quiz games: submit a value
//   - POST   /sessions/{id}/flip     → memory games: flip a card
//   - POST   /sessions/{id}/redeal   → memory games: fresh deck, same level
//   - POST   /sessions/{id}/reset    → back to idle
//   - DELETE /sessions/{id}          → close and forget
//   - GET    /sessions/{id}/events   → websocket stream of session events
//
// Everything under /sessions/{id} needs the token from POST /sessions.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kidgames/internal/game"
)

func (s *Server) mountSessions() {
	s.r.Post("/sessions", s.handleCreate)
	s.r.Route("/sessions/{id}", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleState)
		r.Delete("/", s.handleDelete)
		r.Post("/start", s.handleStart)
		r.Post("/answer", s.handleAnswer)
		r.Post("/flip", s.handleFlip)
		r.Post("/redeal", s.handleRedeal)
		r.Post("/reset", s.handleReset)
		r.Get("/events", s.handleEvents)
	})
}

type createReq struct {
	Game game.Kind `json:"game"`
}

type createRes struct {
	ID        string        `json:"id"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	State     game.Snapshot `json:"state"`
}

// actionRes is returned by every game input. Accepted is false when the
// input arrived too late or was otherwise ignored.
type actionRes struct {
	Accepted   bool             `json:"accepted"`
	Evaluation *game.Evaluation `json:"evaluation,omitempty"`
	State      game.Snapshot    `json:"state"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	id := uuid.NewString()
	sess, err := game.New(id, req.Game, s.catalog.Assets(), s.source(), s.sched, s.hub)
	if errors.Is(err, game.ErrUnknownKind) {
		writeError(w, http.StatusBadRequest, "unknown_game")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("game", string(req.Game)).Msg("build session")
		writeError(w, http.StatusInternalServerError, "bad_game_config")
		return
	}

	tok, exp, err := s.tokens.sign(id, time.Now())
	if err != nil {
		sess.Close()
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "token_failed")
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		sess.Close()
		log.Error().Err(err).Str("session", id).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	log.Info().Str("session", id).Str("game", string(req.Game)).Msg("session created")
	writeJSON(w, http.StatusCreated, createRes{ID: id, Token: tok, ExpiresAt: exp, State: sess.Snapshot()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentSession(r).Snapshot())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := currentSession(r).ID()
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "session_not_found")
		return
	}
	s.hub.Drop(id)
	log.Info().Str("session", id).Msg("session closed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	ok := sess.Start()
	if ok {
		log.Debug().Str("session", sess.ID()).Msg("session started")
	}
	writeJSON(w, http.StatusOK, actionRes{Accepted: ok, State: sess.Snapshot()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	sess.Reset()
	writeJSON(w, http.StatusOK, actionRes{Accepted: true, State: sess.Snapshot()})
}

type answerReq struct {
	Value *int `json:"value"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	q, ok := currentSession(r).(*game.Quiz)
	if !ok {
		writeError(w, http.StatusConflict, "not_a_quiz")
		return
	}
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	res := actionRes{}
	if ev, accepted := q.Submit(*req.Value); accepted {
		res.Accepted, res.Evaluation = true, &ev
	}
	res.State = q.Snapshot()
	writeJSON(w, http.StatusOK, res)
}

type flipReq struct {
	Index *int `json:"index"`
}

func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	m, ok := currentSession(r).(*game.Memory)
	if !ok {
		writeError(w, http.StatusConflict, "not_a_memory_game")
		return
	}
	var req flipReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	accepted := m.Flip(*req.Index)
	writeJSON(w, http.StatusOK, actionRes{Accepted: accepted, State: m.Snapshot()})
}

func (s *Server) handleRedeal(w http.ResponseWriter, r *http.Request) {
	m, ok := currentSession(r).(*game.Memory)
	if !ok {
		writeError(w, http.StatusConflict, "not_a_memory_game")
		return
	}
	accepted := m.Redeal()
	writeJSON(w, http.StatusOK, actionRes{Accepted: accepted, State: m.Snapshot()})
}

// handleEvents upgrades to a websocket. The first message is a
// round_changed event carrying the current state so late subscribers can
// render immediately.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	hello, err := json.Marshal(game.Event{Type: game.EventRoundChanged, Session: sess.ID(), State: sess.Snapshot()})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode_failed")
		return
	}
	s.hub.Serve(w, r, sess.ID(), hello)
}
