package view

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/macleann/favameal/pkg/model"
)

// ErrReferentialIntegrity is returned when a meal's restaurant cannot be
// resolved at annotation time. Cascade deletes should make this impossible.
var ErrReferentialIntegrity = errors.New("referential integrity violation")

type favoriteStore interface {
	IsFavorite(ctx context.Context, kind model.FavoriteKind, itemID uint, userID uint) (bool, error)
	FavoritedItemIDs(ctx context.Context, kind model.FavoriteKind, userID uint, itemIDs []uint) (map[uint]bool, error)
}

type ratingStore interface {
	GetUserRating(ctx context.Context, userID uint, mealID uint) (*int, error)
	GetAverageRating(ctx context.Context, mealID uint) (*float64, error)
	GetUserRatings(ctx context.Context, userID uint, mealIDs []uint) (map[uint]int, error)
	GetAverageRatings(ctx context.Context, mealIDs []uint) (map[uint]float64, error)
}

type Annotator struct {
	favorites favoriteStore
	ratings   ratingStore
	logger    *zap.Logger
}

func NewAnnotator(favorites favoriteStore, ratings ratingStore, logger *zap.Logger) *Annotator {
	return &Annotator{favorites: favorites, ratings: ratings, logger: logger}
}

func (a *Annotator) Restaurant(ctx context.Context, restaurant model.Restaurant, viewerID uint) (*Restaurant, error) {
	isFavorite, err := a.favorites.IsFavorite(ctx, model.FavoriteKindRestaurant, restaurant.ID, viewerID)
	if err != nil {
		return nil, err
	}

	annotated := restaurantView(restaurant, isFavorite)

	return &annotated, nil
}

// Restaurants annotates a list with a single favorites query instead of one
// per restaurant.
func (a *Annotator) Restaurants(ctx context.Context, restaurants []*model.Restaurant, viewerID uint) ([]*Restaurant, error) {
	ids := make([]uint, 0, len(restaurants))
	for _, restaurant := range restaurants {
		ids = append(ids, restaurant.ID)
	}

	favorited, err := a.favorites.FavoritedItemIDs(ctx, model.FavoriteKindRestaurant, viewerID, ids)
	if err != nil {
		return nil, err
	}

	annotated := make([]*Restaurant, 0, len(restaurants))

	for _, restaurant := range restaurants {
		restaurantView := restaurantView(*restaurant, favorited[restaurant.ID])
		annotated = append(annotated, &restaurantView)
	}

	return annotated, nil
}

func (a *Annotator) Meal(ctx context.Context, meal model.Meal, viewerID uint) (*Meal, error) {
	if meal.Restaurant.ID == 0 {
		return nil, fmt.Errorf("%w: meal %d references restaurant %d", ErrReferentialIntegrity, meal.ID, meal.RestaurantID)
	}

	isFavorite, err := a.favorites.IsFavorite(ctx, model.FavoriteKindMeal, meal.ID, viewerID)
	if err != nil {
		return nil, err
	}

	restaurantFavorite, err := a.favorites.IsFavorite(ctx, model.FavoriteKindRestaurant, meal.Restaurant.ID, viewerID)
	if err != nil {
		return nil, err
	}

	userRating, err := a.ratings.GetUserRating(ctx, viewerID, meal.ID)
	if err != nil {
		return nil, err
	}

	avgRating, err := a.ratings.GetAverageRating(ctx, meal.ID)
	if err != nil {
		return nil, err
	}

	annotated := Meal{
		ID:         meal.ID,
		Name:       meal.Name,
		Restaurant: restaurantView(meal.Restaurant, restaurantFavorite),
		IsFavorite: isFavorite,
	}

	if userRating != nil {
		annotated.UserRating = *userRating
	}

	if avgRating != nil {
		annotated.AvgRating = *avgRating
	}

	return &annotated, nil
}

// Meals annotates a list from four batch queries (meal favorites, restaurant
// favorites, the viewer's ratings, rating averages) instead of four queries
// per meal.
func (a *Annotator) Meals(ctx context.Context, meals []*model.Meal, viewerID uint) ([]*Meal, error) {
	mealIDs := make([]uint, 0, len(meals))
	restaurantIDs := make([]uint, 0, len(meals))

	for _, meal := range meals {
		if meal.Restaurant.ID == 0 {
			return nil, fmt.Errorf("%w: meal %d references restaurant %d", ErrReferentialIntegrity, meal.ID, meal.RestaurantID)
		}

		mealIDs = append(mealIDs, meal.ID)
		restaurantIDs = append(restaurantIDs, meal.Restaurant.ID)
	}

	favorited, err := a.favorites.FavoritedItemIDs(ctx, model.FavoriteKindMeal, viewerID, mealIDs)
	if err != nil {
		return nil, err
	}

	restaurantsFavorited, err := a.favorites.FavoritedItemIDs(ctx, model.FavoriteKindRestaurant, viewerID, restaurantIDs)
	if err != nil {
		return nil, err
	}

	userRatings, err := a.ratings.GetUserRatings(ctx, viewerID, mealIDs)
	if err != nil {
		return nil, err
	}

	avgRatings, err := a.ratings.GetAverageRatings(ctx, mealIDs)
	if err != nil {
		return nil, err
	}

	annotated := make([]*Meal, 0, len(meals))

	for _, meal := range meals {
		mealView := Meal{
			ID:         meal.ID,
			Name:       meal.Name,
			Restaurant: restaurantView(meal.Restaurant, restaurantsFavorited[meal.Restaurant.ID]),
			IsFavorite: favorited[meal.ID],
			UserRating: userRatings[meal.ID],
			AvgRating:  avgRatings[meal.ID],
		}
		annotated = append(annotated, &mealView)
	}

	return annotated, nil
}
