package cmd

import (
	"go.uber.org/zap"

	"github.com/macleann/favameal/configs"
	"github.com/macleann/favameal/pkg/model"
	"github.com/macleann/favameal/pkg/repository"
)

type MigrateCmd struct {
	ConfigFile string `default:".FavaMeal.toml" help:"Path to config file" short:"c"`
}

func (m *MigrateCmd) Run(_ *Context) error {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(m.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Fatal("error connecting to database")
	}
	defer repo.Close()

	err = repo.DB.AutoMigrate(
		&model.User{},
		&model.Restaurant{}, &model.Meal{},
		&model.FavoriteRestaurant{}, &model.FavoriteMeal{},
		&model.MealRating{})
	if err != nil {
		return err
	}

	return nil
}
