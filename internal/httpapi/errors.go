package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"example.com/mastermind/internal/game"
	"example.com/mastermind/internal/input"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, code int, errCode, msg string) {
	WriteJSON(w, code, ErrorResponse{Code: errCode, Message: msg})
}

// ErrorCode maps a game or input error to its wire code and HTTP status.
// ok is false for errors that are not caller mistakes.
func ErrorCode(err error) (status int, code string, ok bool) {
	var pe *input.ParseError
	switch {
	case errors.As(err, &pe):
		return http.StatusBadRequest, "bad_input", true
	case errors.Is(err, game.ErrValidation):
		reason, _ := game.ReasonOf(err)
		return http.StatusBadRequest, string(reason), true
	case errors.Is(err, game.ErrInvalidState):
		return http.StatusConflict, "invalid_state", true
	}
	return http.StatusInternalServerError, "internal", false
}

// WriteGameError writes err as a client error when it is one, and as an
// opaque internal error otherwise.
func WriteGameError(w http.ResponseWriter, err error) {
	status, code, ok := ErrorCode(err)
	if !ok {
		WriteError(w, status, code, "internal error")
		return
	}
	WriteError(w, status, code, err.Error())
}
