// Package server exposes the REST surface: restaurant and meal CRUD,
// favorite/unfavorite mutations, and meal rating.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/macleann/favameal/configs"
	"github.com/macleann/favameal/pkg/model"
	"github.com/macleann/favameal/pkg/view"
)

var ErrMissingRating = errors.New("rating must be provided")

type restaurantStore interface {
	AddRestaurant(ctx context.Context, name string, address string) (*model.Restaurant, error)
	GetRestaurantByID(ctx context.Context, restaurantID uint) (*model.Restaurant, error)
	GetRestaurants(ctx context.Context) ([]*model.Restaurant, error)
	DeleteRestaurant(ctx context.Context, restaurantID uint) error
}

type mealStore interface {
	AddMeal(ctx context.Context, name string, restaurantID uint) (*model.Meal, error)
	GetMealByID(ctx context.Context, mealID uint) (*model.Meal, error)
	GetMeals(ctx context.Context) ([]*model.Meal, error)
	DeleteMeal(ctx context.Context, mealID uint) error
}

type favoriteStore interface {
	AddFavorite(ctx context.Context, kind model.FavoriteKind, itemID uint, userID uint) error
	RemoveFavorite(ctx context.Context, kind model.FavoriteKind, itemID uint, userID uint) error
}

type ratingStore interface {
	UpsertRating(ctx context.Context, userID uint, mealID uint, rating int) (*model.MealRating, bool, error)
}

type annotator interface {
	Restaurant(ctx context.Context, restaurant model.Restaurant, viewerID uint) (*view.Restaurant, error)
	Restaurants(ctx context.Context, restaurants []*model.Restaurant, viewerID uint) ([]*view.Restaurant, error)
	Meal(ctx context.Context, meal model.Meal, viewerID uint) (*view.Meal, error)
	Meals(ctx context.Context, meals []*model.Meal, viewerID uint) ([]*view.Meal, error)
}

type Server struct {
	router      *chi.Mux
	restaurants restaurantStore
	meals       mealStore
	favorites   favoriteStore
	ratings     ratingStore
	annotator   annotator
	validate    *validator.Validate
	logger      *zap.Logger
	config      *configs.Config
}

func New(restaurants restaurantStore, meals mealStore, favorites favoriteStore, ratings ratingStore, annotator annotator, logger *zap.Logger, config *configs.Config) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		restaurants: restaurants,
		meals:       meals,
		favorites:   favorites,
		ratings:     ratings,
		annotator:   annotator,
		validate:    validator.New(),
		logger:      logger,
		config:      config,
	}

	s.routes()

	return s
}

func (s *Server) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	s.router.ServeHTTP(writer, request)
}

func (s *Server) routes() {
	s.router.Route("/restaurants", func(router chi.Router) {
		router.Post("/", s.createRestaurant)
		router.Get("/", s.listRestaurants)
		router.Get("/search", s.searchRestaurants)
		router.Get("/{id}", s.getRestaurant)
		router.Delete("/{id}", s.deleteRestaurant)
		router.Post("/{id}/favorite", s.favoriteRestaurant)
		router.Delete("/{id}/unfavorite", s.unfavoriteRestaurant)
	})

	s.router.Route("/meals", func(router chi.Router) {
		router.Post("/", s.createMeal)
		router.Get("/", s.listMeals)
		router.Get("/{id}", s.getMeal)
		router.Delete("/{id}", s.deleteMeal)
		router.Post("/{id}/rate", s.rateMeal)
		router.Put("/{id}/rate", s.rateMeal)
		router.Post("/{id}/favorite", s.favoriteMeal)
		router.Delete("/{id}/unfavorite", s.unfavoriteMeal)
	})
}
