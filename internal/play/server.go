package play

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"example.com/mastermind/internal/game"
	"example.com/mastermind/internal/httpapi"
)

type Server struct {
	tables *TableService
	auth   httpapi.TokenVerifier
	log    *slog.Logger
}

func NewServer(tables *TableService, auth httpapi.TokenVerifier, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{tables: tables, auth: auth, log: log}
}

// RegisterRoutes mounts the REST game routes and the WebSocket endpoint.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/games", func(r chi.Router) {
		r.Use(httpapi.AuthMiddleware(s.auth))
		r.Post("/", s.handleCreate)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Post("/start", s.handleStart)
			r.Post("/guesses", s.handleGuess)
			r.Post("/hint", s.handleHint)
		})
	})
	r.Get("/ws/{gameID}", s.handleWS)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpapi.UserIDFromContext(r.Context())

	var req CreateGamePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}
	d := s.tables.DefaultDifficulty()
	if strings.TrimSpace(req.Difficulty) != "" {
		var err error
		if d, err = game.ParseDifficulty(req.Difficulty); err != nil {
			httpapi.WriteError(w, http.StatusBadRequest, "bad_difficulty", err.Error())
			return
		}
	}

	t, err := s.tables.Create(r.Context(), userID, httpapi.UserNameFromContext(r.Context()), d)
	if err != nil {
		s.log.Error("create table", "user_id", userID, "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to create game")
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, t.State())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	t, ok := s.ownedTable(w, r)
	if !ok {
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, t.State())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	t, ok := s.ownedTable(w, r)
	if !ok {
		return
	}
	if err := t.Start(); err != nil {
		httpapi.WriteGameError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, t.State())
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	t, ok := s.ownedTable(w, r)
	if !ok {
		return
	}
	var req SubmitGuessPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}
	score, err := t.SubmitGuess(req.Guess)
	if err != nil {
		httpapi.WriteGameError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, GuessResponse{Score: score, State: t.State()})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	t, ok := s.ownedTable(w, r)
	if !ok {
		return
	}
	h, err := t.Hint()
	if err != nil {
		httpapi.WriteGameError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, h)
}

// ownedTable resolves {gameID} for the authenticated player. Tables owned
// by someone else look the same as missing ones.
func (s *Server) ownedTable(w http.ResponseWriter, r *http.Request) (*Table, bool) {
	userID, _ := httpapi.UserIDFromContext(r.Context())
	t, status, code := s.lookup(r, chi.URLParam(r, "gameID"), userID)
	if t == nil {
		httpapi.WriteError(w, status, code, http.StatusText(status))
		return nil, false
	}
	return t, true
}

func (s *Server) lookup(r *http.Request, gameID, userID string) (*Table, int, string) {
	if !validGameID(gameID) {
		return nil, http.StatusBadRequest, "bad_game_id"
	}
	t, ok, err := s.tables.GetOrLoad(r.Context(), gameID)
	if err != nil {
		s.log.Error("load table", "game_id", gameID, "err", err)
		return nil, http.StatusInternalServerError, "internal"
	}
	if !ok || t.Owner() != userID {
		return nil, http.StatusNotFound, "not_found"
	}
	return t, 0, ""
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randID(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return string(b)
}

// validGameID accepts 1-64 characters of [a-z0-9].
func validGameID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
