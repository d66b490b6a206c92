// Package view produces viewer-scoped read models for restaurants and meals.
// Derived fields (is_favorite, user_rating, avg_rating) are computed per
// request and never written back to the stored entities.
package view

import "github.com/macleann/favameal/pkg/model"

// Restaurant is the JSON shape of a restaurant as seen by one viewer.
// IsFavorite is always serialized, including when false.
type Restaurant struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	IsFavorite bool   `json:"is_favorite"`
}

// Meal is the JSON shape of a meal as seen by one viewer. UserRating and
// AvgRating default to 0 when the viewer or the crowd never rated the meal.
type Meal struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Restaurant Restaurant `json:"restaurant"`
	IsFavorite bool       `json:"is_favorite"`
	UserRating int        `json:"user_rating"`
	AvgRating  float64    `json:"avg_rating"`
}

func restaurantView(restaurant model.Restaurant, isFavorite bool) Restaurant {
	return Restaurant{
		ID:         restaurant.ID,
		Name:       restaurant.Name,
		Address:    restaurant.Address,
		IsFavorite: isFavorite,
	}
}
