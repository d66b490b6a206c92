package integrations

import (
	"go.uber.org/zap"

	dineoutweb "github.com/macleann/favameal/pkg/integrations/dineout-web"
	"github.com/macleann/favameal/pkg/model"
)

type Integration interface {
	FindRestaurant(name string) ([]model.Restaurant, error)
}

func GetIntegration(name string, logger *zap.Logger) Integration {
	if name == dineoutweb.IntegrationName {
		return dineoutweb.NewDineOutWebIntegration(logger)
	}

	return nil
}
