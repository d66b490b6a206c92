package model

import "time"

type Meal struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string `gorm:"size:55"`
	RestaurantID uint   `gorm:"not null"`

	Restaurant Restaurant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// FavoriteMeal joins a user to a meal they marked as a frequent pick.
// At most one row per (user, meal) pair.
type FavoriteMeal struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    uint `gorm:"not null;uniqueIndex:idx_favorite_meal_pair"`
	MealID    uint `gorm:"not null;uniqueIndex:idx_favorite_meal_pair"`

	User User `gorm:"constraint:OnDelete:CASCADE;"`
	Meal Meal `gorm:"constraint:OnDelete:CASCADE;"`
}

// MealRating holds a single user's rating of a meal. The unique pair index
// backs the atomic upsert in the repository.
type MealRating struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint `gorm:"not null;uniqueIndex:idx_meal_rating_pair"`
	MealID    uint `gorm:"not null;uniqueIndex:idx_meal_rating_pair"`
	Rating    int  `gorm:"not null"`

	User User `gorm:"constraint:OnDelete:CASCADE;"`
	Meal Meal `gorm:"constraint:OnDelete:CASCADE;"`
}
