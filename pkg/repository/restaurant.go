package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/macleann/favameal/pkg/model"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

func (r *Repository) AddRestaurant(ctx context.Context, name string, address string) (*model.Restaurant, error) {
	restaurant := model.Restaurant{Name: name, Address: address}

	if result := r.DB.WithContext(ctx).Create(&restaurant); result.Error != nil {
		return nil, result.Error
	}

	return &restaurant, nil
}

func (r *Repository) GetRestaurantByID(ctx context.Context, restaurantID uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant

	result := r.DB.WithContext(ctx).First(&restaurant, restaurantID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}

		return nil, result.Error
	}

	return &restaurant, nil
}

func (r *Repository) GetRestaurants(ctx context.Context) ([]*model.Restaurant, error) {
	var restaurants []*model.Restaurant

	if result := r.DB.WithContext(ctx).Order("name asc").Find(&restaurants); result.Error != nil {
		return nil, result.Error
	}

	return restaurants, nil
}

func (r *Repository) DeleteRestaurant(ctx context.Context, restaurantID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.Restaurant{}, restaurantID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRestaurantNotFound
	}

	return nil
}
