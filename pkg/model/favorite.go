package model

// FavoriteKind selects which join relation a favorites operation targets.
type FavoriteKind string

const (
	FavoriteKindRestaurant FavoriteKind = "restaurant"
	FavoriteKindMeal       FavoriteKind = "meal"
)
