package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/macleann/favameal/pkg/model"
)

var ErrMealNotFound = errors.New("meal not found")

func (r *Repository) AddMeal(ctx context.Context, name string, restaurantID uint) (*model.Meal, error) {
	restaurant, err := r.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	meal := model.Meal{Name: name, RestaurantID: restaurant.ID}

	if result := r.DB.WithContext(ctx).Create(&meal); result.Error != nil {
		return nil, result.Error
	}

	meal.Restaurant = *restaurant

	return &meal, nil
}

func (r *Repository) GetMealByID(ctx context.Context, mealID uint) (*model.Meal, error) {
	var meal model.Meal

	result := r.DB.WithContext(ctx).
		Joins("Restaurant").
		First(&meal, mealID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}

		return nil, result.Error
	}

	return &meal, nil
}

func (r *Repository) GetMeals(ctx context.Context) ([]*model.Meal, error) {
	var meals []*model.Meal

	result := r.DB.WithContext(ctx).
		Joins("Restaurant").
		Order("meals.name asc").
		Find(&meals)
	if result.Error != nil {
		return nil, result.Error
	}

	return meals, nil
}

func (r *Repository) DeleteMeal(ctx context.Context, mealID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.Meal{}, mealID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrMealNotFound
	}

	return nil
}
