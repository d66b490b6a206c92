package repository

import (
	"context"
	"database/sql"
	"errors"

	"go.openly.dev/pointy"
	"gorm.io/gorm"

	"github.com/macleann/favameal/pkg/model"
)

// UpsertRating creates the user's rating for a meal, or updates it if one
// already exists. The insert and the conflict handling are a single statement
// against the unique (user_id, meal_id) index, so two concurrent calls for
// the same pair cannot both insert. The returned bool reports whether a new
// record was created.
func (r *Repository) UpsertRating(ctx context.Context, userID uint, mealID uint, rating int) (*model.MealRating, bool, error) {
	var row struct {
		ID       uint
		Inserted bool
	}

	result := r.DB.WithContext(ctx).Raw(
		"INSERT INTO meal_ratings (created_at, updated_at, user_id, meal_id, rating)"+
			" VALUES (CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, ?, ?, ?)"+
			" ON CONFLICT (user_id, meal_id)"+
			" DO UPDATE SET rating = excluded.rating, updated_at = CURRENT_TIMESTAMP"+
			" RETURNING id, (xmax = 0) AS inserted", userID, mealID, rating).
		Scan(&row)
	if result.Error != nil {
		return nil, false, result.Error
	}

	mealRating := model.MealRating{ID: row.ID, UserID: userID, MealID: mealID, Rating: rating}

	return &mealRating, row.Inserted, nil
}

// GetUserRating returns the user's own rating for a meal, or nil if they
// never rated it.
func (r *Repository) GetUserRating(ctx context.Context, userID uint, mealID uint) (*int, error) {
	var mealRating model.MealRating

	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND meal_id = ?", userID, mealID).
		First(&mealRating)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return pointy.Int(mealRating.Rating), nil
}

// GetAverageRating returns the mean of all ratings for a meal, or nil if the
// meal has no ratings.
func (r *Repository) GetAverageRating(ctx context.Context, mealID uint) (*float64, error) {
	var average sql.NullFloat64

	result := r.DB.WithContext(ctx).Model(&model.MealRating{}).
		Select("avg(rating)").
		Where("meal_id = ?", mealID).
		Scan(&average)
	if result.Error != nil {
		return nil, result.Error
	}

	if !average.Valid {
		return nil, nil
	}

	return pointy.Float64(average.Float64), nil
}

// GetUserRatings fetches the user's ratings for all given meals in one query,
// keyed by meal id. Meals the user never rated are absent from the map.
func (r *Repository) GetUserRatings(ctx context.Context, userID uint, mealIDs []uint) (map[uint]int, error) {
	ratings := make(map[uint]int, len(mealIDs))

	if len(mealIDs) == 0 {
		return ratings, nil
	}

	var mealRatings []*model.MealRating

	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND meal_id IN ?", userID, mealIDs).
		Find(&mealRatings)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, mealRating := range mealRatings {
		ratings[mealRating.MealID] = mealRating.Rating
	}

	return ratings, nil
}

// GetAverageRatings fetches rating means for all given meals in one grouped
// query, keyed by meal id. Meals with no ratings are absent from the map.
func (r *Repository) GetAverageRatings(ctx context.Context, mealIDs []uint) (map[uint]float64, error) {
	averages := make(map[uint]float64, len(mealIDs))

	if len(mealIDs) == 0 {
		return averages, nil
	}

	var rows []struct {
		MealID  uint
		Average float64
	}

	result := r.DB.WithContext(ctx).Model(&model.MealRating{}).
		Select("meal_id, avg(rating) as average").
		Where("meal_id IN ?", mealIDs).
		Group("meal_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, row := range rows {
		averages[row.MealID] = row.Average
	}

	return averages, nil
}
