package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/macleann/favameal/pkg/model"
)

var ErrUnknownFavoriteKind = errors.New("unknown favorite kind")

// AddFavorite inserts the join record if absent. A second call for the same
// pair hits the unique pair index and is a no-op.
func (r *Repository) AddFavorite(ctx context.Context, kind model.FavoriteKind, itemID uint, userID uint) error {
	db := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true})

	switch kind {
	case model.FavoriteKindRestaurant:
		favorite := model.FavoriteRestaurant{UserID: userID, RestaurantID: itemID}

		return db.Create(&favorite).Error
	case model.FavoriteKindMeal:
		favorite := model.FavoriteMeal{UserID: userID, MealID: itemID}

		return db.Create(&favorite).Error
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFavoriteKind, kind)
	}
}

// RemoveFavorite deletes the join record if present. Removing an absent
// favorite is a no-op.
func (r *Repository) RemoveFavorite(ctx context.Context, kind model.FavoriteKind, itemID uint, userID uint) error {
	db := r.DB.WithContext(ctx)

	switch kind {
	case model.FavoriteKindRestaurant:
		return db.Where("user_id = ? AND restaurant_id = ?", userID, itemID).Delete(&model.FavoriteRestaurant{}).Error
	case model.FavoriteKindMeal:
		return db.Where("user_id = ? AND meal_id = ?", userID, itemID).Delete(&model.FavoriteMeal{}).Error
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFavoriteKind, kind)
	}
}

func (r *Repository) IsFavorite(ctx context.Context, kind model.FavoriteKind, itemID uint, userID uint) (bool, error) {
	var count int64

	db := r.DB.WithContext(ctx)

	switch kind {
	case model.FavoriteKindRestaurant:
		db = db.Model(&model.FavoriteRestaurant{}).Where("user_id = ? AND restaurant_id = ?", userID, itemID)
	case model.FavoriteKindMeal:
		db = db.Model(&model.FavoriteMeal{}).Where("user_id = ? AND meal_id = ?", userID, itemID)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownFavoriteKind, kind)
	}

	if result := db.Count(&count); result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *Repository) ListFavoriters(ctx context.Context, kind model.FavoriteKind, itemID uint) ([]uint, error) {
	var userIDs []uint

	db := r.DB.WithContext(ctx)

	switch kind {
	case model.FavoriteKindRestaurant:
		db = db.Model(&model.FavoriteRestaurant{}).Where("restaurant_id = ?", itemID)
	case model.FavoriteKindMeal:
		db = db.Model(&model.FavoriteMeal{}).Where("meal_id = ?", itemID)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFavoriteKind, kind)
	}

	if result := db.Pluck("user_id", &userIDs); result.Error != nil {
		return nil, result.Error
	}

	return userIDs, nil
}

// FavoritedItemIDs returns which of the given items the user has favorited,
// in a single query. List annotation builds on this instead of asking per item.
func (r *Repository) FavoritedItemIDs(ctx context.Context, kind model.FavoriteKind, userID uint, itemIDs []uint) (map[uint]bool, error) {
	favorited := make(map[uint]bool, len(itemIDs))

	if len(itemIDs) == 0 {
		return favorited, nil
	}

	var ids []uint

	db := r.DB.WithContext(ctx)

	switch kind {
	case model.FavoriteKindRestaurant:
		db = db.Model(&model.FavoriteRestaurant{}).Where("user_id = ? AND restaurant_id IN ?", userID, itemIDs)

		if result := db.Pluck("restaurant_id", &ids); result.Error != nil {
			return nil, result.Error
		}
	case model.FavoriteKindMeal:
		db = db.Model(&model.FavoriteMeal{}).Where("user_id = ? AND meal_id IN ?", userID, itemIDs)

		if result := db.Pluck("meal_id", &ids); result.Error != nil {
			return nil, result.Error
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFavoriteKind, kind)
	}

	for _, id := range ids {
		favorited[id] = true
	}

	return favorited, nil
}
