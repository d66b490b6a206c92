package server

import (
	"encoding/json"
	"net/http"

	"github.com/macleann/favameal/pkg/model"
)

type mealPayload struct {
	Name         string `json:"name"          validate:"required,max=55"`
	RestaurantID uint   `json:"restaurant_id" validate:"required"`
}

type ratingPayload struct {
	Rating *int `json:"rating"`
}

func (s *Server) createMeal(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	var payload mealPayload
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		s.writeReason(writer, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := s.validate.Struct(payload); err != nil {
		s.writeReason(writer, http.StatusBadRequest, err.Error())

		return
	}

	meal, err := s.meals.AddMeal(request.Context(), payload.Name, payload.RestaurantID)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	annotated, err := s.annotator.Meal(request.Context(), *meal, user.ID)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	s.writeJSON(writer, http.StatusCreated, annotated)
}

func (s *Server) getMeal(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	mealID, ok := idParam(request)
	if !ok {
		s.writeReason(writer, http.StatusNotFound, "meal not found")

		return
	}

	meal, err := s.meals.GetMealByID(request.Context(), mealID)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	annotated, err := s.annotator.Meal(request.Context(), *meal, user.ID)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	s.writeJSON(writer, http.StatusOK, annotated)
}

func (s *Server) listMeals(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	meals, err := s.meals.GetMeals(request.Context())
	if err != nil {
		s.writeError(writer, err)

		return
	}

	annotated, err := s.annotator.Meals(request.Context(), meals, user.ID)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	s.writeJSON(writer, http.StatusOK, annotated)
}

func (s *Server) deleteMeal(writer http.ResponseWriter, request *http.Request) {
	if _, ok := s.viewer(writer, request); !ok {
		return
	}

	mealID, ok := idParam(request)
	if !ok {
		s.writeReason(writer, http.StatusNotFound, "meal not found")

		return
	}

	if err := s.meals.DeleteMeal(request.Context(), mealID); err != nil {
		s.writeError(writer, err)

		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

// rateMeal serves both POST and PUT. The upsert decides the response: 201
// when the viewer's first rating was created, 200 when an existing one was
// updated.
func (s *Server) rateMeal(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	mealID, ok := idParam(request)
	if !ok {
		s.writeReason(writer, http.StatusNotFound, "meal not found")

		return
	}

	var payload ratingPayload
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		s.writeReason(writer, http.StatusBadRequest, "invalid request body")

		return
	}

	if payload.Rating == nil {
		s.writeError(writer, ErrMissingRating)

		return
	}

	if _, err := s.meals.GetMealByID(request.Context(), mealID); err != nil {
		s.writeError(writer, err)

		return
	}

	_, created, err := s.ratings.UpsertRating(request.Context(), user.ID, mealID, *payload.Rating)
	if err != nil {
		s.writeError(writer, err)

		return
	}

	if created {
		s.writeMessage(writer, http.StatusCreated, "rating created")

		return
	}

	s.writeMessage(writer, http.StatusOK, "rating updated")
}

func (s *Server) favoriteMeal(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	mealID, ok := idParam(request)
	if !ok {
		s.writeReason(writer, http.StatusNotFound, "meal not found")

		return
	}

	if _, err := s.meals.GetMealByID(request.Context(), mealID); err != nil {
		s.writeError(writer, err)

		return
	}

	if err := s.favorites.AddFavorite(request.Context(), model.FavoriteKindMeal, mealID, user.ID); err != nil {
		s.writeError(writer, err)

		return
	}

	s.writeMessage(writer, http.StatusCreated, "user added")
}

func (s *Server) unfavoriteMeal(writer http.ResponseWriter, request *http.Request) {
	user, ok := s.viewer(writer, request)
	if !ok {
		return
	}

	mealID, ok := idParam(request)
	if !ok {
		s.writeReason(writer, http.StatusNotFound, "meal not found")

		return
	}

	if _, err := s.meals.GetMealByID(request.Context(), mealID); err != nil {
		s.writeError(writer, err)

		return
	}

	if err := s.favorites.RemoveFavorite(request.Context(), model.FavoriteKindMeal, mealID, user.ID); err != nil {
		s.writeError(writer, err)

		return
	}

	writer.WriteHeader(http.StatusNoContent)
}
