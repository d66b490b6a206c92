package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/macleann/favameal/pkg/auth"
	"github.com/macleann/favameal/pkg/model"
	"github.com/macleann/favameal/pkg/repository"
	"github.com/macleann/favameal/pkg/view"
)

type messageBody struct {
	Message string `json:"message"`
}

type reasonBody struct {
	Reason string `json:"reason"`
}

func (s *Server) writeJSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		s.logger.Error("error encoding response", zap.Error(err))
	}
}

func (s *Server) writeMessage(writer http.ResponseWriter, status int, message string) {
	s.writeJSON(writer, status, messageBody{Message: message})
}

func (s *Server) writeReason(writer http.ResponseWriter, status int, reason string) {
	s.writeJSON(writer, status, reasonBody{Reason: reason})
}

// writeError maps store and annotation errors onto the response status.
// Unrecognized errors surface as 500 without being swallowed or rewrapped.
func (s *Server) writeError(writer http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrRestaurantNotFound),
		errors.Is(err, repository.ErrMealNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		s.writeReason(writer, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrMissingRating):
		s.writeReason(writer, http.StatusBadRequest, err.Error())
	case errors.Is(err, view.ErrReferentialIntegrity):
		s.logger.Error("referential integrity violation", zap.Error(err))
		s.writeReason(writer, http.StatusInternalServerError, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.writeReason(writer, http.StatusInternalServerError, err.Error())
	}
}

// idParam parses the {id} route parameter. The ok result is false when the
// parameter is not a positive integer, which callers treat as not-found.
func idParam(request *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(request, "id"), 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(id), true
}

func (s *Server) viewer(writer http.ResponseWriter, request *http.Request) (*model.User, bool) {
	user, ok := auth.ViewerFromContext(request.Context())
	if !ok {
		s.writeReason(writer, http.StatusUnauthorized, "no authenticated user")

		return nil, false
	}

	return user, true
}
