package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/macleann/favameal/configs"
	"github.com/macleann/favameal/pkg/auth"
	"github.com/macleann/favameal/pkg/model"
	"github.com/macleann/favameal/pkg/repository"
	"github.com/macleann/favameal/pkg/server"
	"github.com/macleann/favameal/pkg/view"
)

type favKey struct {
	kind   model.FavoriteKind
	itemID uint
	userID uint
}

type ratingKey struct {
	userID uint
	mealID uint
}

// fakeStore is an in-memory stand-in for the repository, honoring the same
// idempotency, upsert, and cascade semantics.
type fakeStore struct {
	restaurants map[uint]model.Restaurant
	meals       map[uint]model.Meal
	favorites   map[favKey]bool
	ratings     map[ratingKey]int
	nextID      uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		restaurants: make(map[uint]model.Restaurant),
		meals:       make(map[uint]model.Meal),
		favorites:   make(map[favKey]bool),
		ratings:     make(map[ratingKey]int),
	}
}

func (f *fakeStore) id() uint {
	f.nextID++

	return f.nextID
}

func (f *fakeStore) AddRestaurant(_ context.Context, name string, address string) (*model.Restaurant, error) {
	restaurant := model.Restaurant{ID: f.id(), Name: name, Address: address}
	f.restaurants[restaurant.ID] = restaurant

	return &restaurant, nil
}

func (f *fakeStore) GetRestaurantByID(_ context.Context, restaurantID uint) (*model.Restaurant, error) {
	restaurant, ok := f.restaurants[restaurantID]
	if !ok {
		return nil, repository.ErrRestaurantNotFound
	}

	return &restaurant, nil
}

func (f *fakeStore) GetRestaurants(_ context.Context) ([]*model.Restaurant, error) {
	restaurants := make([]*model.Restaurant, 0, len(f.restaurants))
	for id := range f.restaurants {
		restaurant := f.restaurants[id]
		restaurants = append(restaurants, &restaurant)
	}

	sort.Slice(restaurants, func(i, j int) bool { return restaurants[i].Name < restaurants[j].Name })

	return restaurants, nil
}

func (f *fakeStore) DeleteRestaurant(_ context.Context, restaurantID uint) error {
	if _, ok := f.restaurants[restaurantID]; !ok {
		return repository.ErrRestaurantNotFound
	}

	delete(f.restaurants, restaurantID)

	for key := range f.favorites {
		if key.kind == model.FavoriteKindRestaurant && key.itemID == restaurantID {
			delete(f.favorites, key)
		}
	}

	for mealID, meal := range f.meals {
		if meal.RestaurantID == restaurantID {
			f.deleteMealRecords(mealID)
		}
	}

	return nil
}

func (f *fakeStore) AddMeal(_ context.Context, name string, restaurantID uint) (*model.Meal, error) {
	restaurant, ok := f.restaurants[restaurantID]
	if !ok {
		return nil, repository.ErrRestaurantNotFound
	}

	meal := model.Meal{ID: f.id(), Name: name, RestaurantID: restaurantID, Restaurant: restaurant}
	f.meals[meal.ID] = meal

	return &meal, nil
}

func (f *fakeStore) GetMealByID(_ context.Context, mealID uint) (*model.Meal, error) {
	meal, ok := f.meals[mealID]
	if !ok {
		return nil, repository.ErrMealNotFound
	}

	meal.Restaurant = f.restaurants[meal.RestaurantID]

	return &meal, nil
}

func (f *fakeStore) GetMeals(_ context.Context) ([]*model.Meal, error) {
	meals := make([]*model.Meal, 0, len(f.meals))

	for id := range f.meals {
		meal := f.meals[id]
		meal.Restaurant = f.restaurants[meal.RestaurantID]
		meals = append(meals, &meal)
	}

	sort.Slice(meals, func(i, j int) bool { return meals[i].Name < meals[j].Name })

	return meals, nil
}

func (f *fakeStore) DeleteMeal(_ context.Context, mealID uint) error {
	if _, ok := f.meals[mealID]; !ok {
		return repository.ErrMealNotFound
	}

	f.deleteMealRecords(mealID)

	return nil
}

func (f *fakeStore) deleteMealRecords(mealID uint) {
	delete(f.meals, mealID)

	for key := range f.favorites {
		if key.kind == model.FavoriteKindMeal && key.itemID == mealID {
			delete(f.favorites, key)
		}
	}

	for key := range f.ratings {
		if key.mealID == mealID {
			delete(f.ratings, key)
		}
	}
}

func (f *fakeStore) AddFavorite(_ context.Context, kind model.FavoriteKind, itemID uint, userID uint) error {
	f.favorites[favKey{kind, itemID, userID}] = true

	return nil
}

func (f *fakeStore) RemoveFavorite(_ context.Context, kind model.FavoriteKind, itemID uint, userID uint) error {
	delete(f.favorites, favKey{kind, itemID, userID})

	return nil
}

func (f *fakeStore) IsFavorite(_ context.Context, kind model.FavoriteKind, itemID uint, userID uint) (bool, error) {
	return f.favorites[favKey{kind, itemID, userID}], nil
}

func (f *fakeStore) FavoritedItemIDs(_ context.Context, kind model.FavoriteKind, userID uint, itemIDs []uint) (map[uint]bool, error) {
	favorited := make(map[uint]bool, len(itemIDs))

	for _, itemID := range itemIDs {
		if f.favorites[favKey{kind, itemID, userID}] {
			favorited[itemID] = true
		}
	}

	return favorited, nil
}

func (f *fakeStore) UpsertRating(_ context.Context, userID uint, mealID uint, rating int) (*model.MealRating, bool, error) {
	key := ratingKey{userID, mealID}
	_, exists := f.ratings[key]
	f.ratings[key] = rating

	return &model.MealRating{UserID: userID, MealID: mealID, Rating: rating}, !exists, nil
}

func (f *fakeStore) GetUserRating(_ context.Context, userID uint, mealID uint) (*int, error) {
	if rating, ok := f.ratings[ratingKey{userID, mealID}]; ok {
		return &rating, nil
	}

	return nil, nil
}

func (f *fakeStore) GetAverageRating(_ context.Context, mealID uint) (*float64, error) {
	var (
		sum   int
		count int
	)

	for key, rating := range f.ratings {
		if key.mealID == mealID {
			sum += rating
			count++
		}
	}

	if count == 0 {
		return nil, nil
	}

	average := float64(sum) / float64(count)

	return &average, nil
}

func (f *fakeStore) GetUserRatings(ctx context.Context, userID uint, mealIDs []uint) (map[uint]int, error) {
	ratings := make(map[uint]int, len(mealIDs))

	for _, mealID := range mealIDs {
		if rating, err := f.GetUserRating(ctx, userID, mealID); err == nil && rating != nil {
			ratings[mealID] = *rating
		}
	}

	return ratings, nil
}

func (f *fakeStore) GetAverageRatings(ctx context.Context, mealIDs []uint) (map[uint]float64, error) {
	averages := make(map[uint]float64, len(mealIDs))

	for _, mealID := range mealIDs {
		if average, err := f.GetAverageRating(ctx, mealID); err == nil && average != nil {
			averages[mealID] = *average
		}
	}

	return averages, nil
}

type ServerTestSuite struct {
	suite.Suite
	store  *fakeStore
	server *server.Server
	userA  *model.User
	userB  *model.User
}

func (suite *ServerTestSuite) SetupTest() {
	suite.store = newFakeStore()

	observedZapCore, _ := observer.New(zap.InfoLevel)
	logger := zap.New(observedZapCore)

	annotator := view.NewAnnotator(suite.store, suite.store, logger)
	suite.server = server.New(suite.store, suite.store, suite.store, suite.store, annotator, logger, &configs.Config{})

	suite.userA = &model.User{ID: 7, Username: "alice"}
	suite.userB = &model.User{ID: 8, Username: "bob"}
}

func (suite *ServerTestSuite) request(method string, target string, body any, viewer *model.User) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, reader)

	if viewer != nil {
		request = request.WithContext(context.WithValue(request.Context(), auth.UserKey{}, viewer))
	}

	recorder := httptest.NewRecorder()
	suite.server.ServeHTTP(recorder, request)

	return recorder
}

func (suite *ServerTestSuite) decode(recorder *httptest.ResponseRecorder, target any) {
	suite.Require().NoError(json.NewDecoder(recorder.Body).Decode(target))
}

func (suite *ServerTestSuite) createRestaurant(name string, address string) uint {
	recorder := suite.request(http.MethodPost, "/restaurants", map[string]any{"name": name, "address": address}, suite.userA)
	suite.Require().Equal(http.StatusCreated, recorder.Code)

	var created view.Restaurant
	suite.decode(recorder, &created)

	return created.ID
}

func (suite *ServerTestSuite) createMeal(name string, restaurantID uint) uint {
	recorder := suite.request(http.MethodPost, "/meals", map[string]any{"name": name, "restaurant_id": restaurantID}, suite.userA)
	suite.Require().Equal(http.StatusCreated, recorder.Code)

	var created view.Meal
	suite.decode(recorder, &created)

	return created.ID
}
