package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/macleann/favameal/pkg/integrations"
	"github.com/macleann/favameal/pkg/model"
)

type restaurantPayload struct {
	Name    string `json:"name"    validate:"required,max=55"`
	Address string `json:"address" validate:"required,max=255"`
}

type restaurantCandidate struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (s *Server) createRestaurant(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	var payload restaurantPayload
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		s.writeReason(writer, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := s.validate.Struct(payload); err != nil {
		s.writeReason(writer, http.StatusBadRequest, err.Error())

		return
	}

	restaurant, err := s.restaurants.AddRestaurant(request.Context(), payload.Name, payload.Address)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	annotated, err := s.annotator.Restaurant(request.Context(), *restaurant, user.ID)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	s.writeJSON(writer, http.StatusCreated, annotated)
}

func (s *Server) getRestaurant(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	restaurantID, ok := idParam(request)
	if !ok {
		s.writeReason(writer, http.StatusNotFound, "restaurant not found")

		return
	}

	restaurant, err := s.restaurants.GetRestaurantByID(request.Context(), restaurantID)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	annotated, err := s.annotator.Restaurant(request.Context(), *restaurant, user.ID)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	s.writeJSON(writer, http.StatusOK, annotated)
}

func (s *Server) listRestaurants(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	restaurants, err := s.restaurants.GetRestaurants(request.Context())
	if err != nil {
		s.writeError(writer, err)

		return
	}

	annotated, err := s.annotator.Restaurants(request.Context(), restaurants, user.ID)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	s.writeJSON(writer, http.StatusOK, annotated)
}

func (s *Server) deleteRestaurant(writer http.ResponseWriter, request *http.Request) {
	if _, ok := s.viewer(writer, request); !ok {
		return
	}

	restaurantID, ok := idParam(request)
	if !ok {
		s.writeReason(writer, http.StatusNotFound, "restaurant not found")

		return
	}

	if err := s.restaurants.DeleteRestaurant(request.Context(), restaurantID); err != nil {
		s.writeError(writer, err)

		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

func (s *Server) favoriteRestaurant(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	restaurantID, ok := idParam(request)
	if !ok {
		s.writeReason(writer, http.StatusNotFound, "restaurant not found")

		return
	}

	if _, err := s.restaurants.GetRestaurantByID(request.Context(), restaurantID); err != nil {
		s.writeError(writer, err)

		return
	}

	if err := s.favorites.AddFavorite(request.Context(), model.FavoriteKindRestaurant, restaurantID, user.ID); err != nil {
		s.writeError(writer, err)

		return
	}

	s.writeMessage(writer, http.StatusCreated, "user added")
}

func (s *Server) unfavoriteRestaurant(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	restaurantID, ok := idParam(request)
	if !ok {
		s.writeReason(writer, http.StatusNotFound, "restaurant not found")

		return
	}

	if _, err := s.restaurants.GetRestaurantByID(request.Context(), restaurantID); err != nil {
		s.writeError(writer, err)

		return
	}

	if err := s.favorites.RemoveFavorite(request.Context(), model.FavoriteKindRestaurant, restaurantID, user.ID); err != nil {
		s.writeError(writer, err)

		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

func (s *Server) searchRestaurants(writer http.ResponseWriter, request *http.Request) {
	if _, ok := s.viewer(writer, request); !ok {
		return
	}

	query := request.URL.Query().Get("name")

	var candidates []restaurantCandidate

	for _, integration := range s.config.Integrations.Restaurant {
		source := integrations.GetIntegration(integration, s.logger)
		if source == nil {
			continue
		}

		found, err := source.FindRestaurant(query)
		if err != nil {
			s.logger.Error("failed restaurant search", zap.String("integration", integration), zap.Error(err))

			continue
		}

		for _, restaurant := range found {
			candidates = append(candidates, restaurantCandidate{Name: restaurant.Name, Address: restaurant.Address})
		}
	}

	s.writeJSON(writer, http.StatusOK, candidates)
}
