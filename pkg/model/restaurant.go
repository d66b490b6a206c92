package model

import "time"

// Restaurant rows are hard-deleted; favorites referencing them go with
// the ON DELETE CASCADE constraints on the join tables.
type Restaurant struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"size:55;uniqueIndex"`
	Address   string `gorm:"size:255"`
}

// FavoriteRestaurant joins a user to a restaurant they favorited. At most
// one row per (user, restaurant) pair.
type FavoriteRestaurant struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UserID       uint `gorm:"not null;uniqueIndex:idx_favorite_restaurant_pair"`
	RestaurantID uint `gorm:"not null;uniqueIndex:idx_favorite_restaurant_pair"`

	User       User       `gorm:"constraint:OnDelete:CASCADE;"`
	Restaurant Restaurant `gorm:"constraint:OnDelete:CASCADE;"`
}
