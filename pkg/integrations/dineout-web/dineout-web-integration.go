package dineoutweb

import "go.uber.org/zap"

const IntegrationName = "dineout_web"

const defaultBaseURL = "https://www.dineoutguide.com"

type DineOutWebIntegration struct {
	logger *zap.Logger

	// BaseURL is overridable so tests can point the scraper at a fixture
	// server.
	BaseURL string
}

func NewDineOutWebIntegration(logger *zap.Logger) *DineOutWebIntegration {
	return &DineOutWebIntegration{logger: logger, BaseURL: defaultBaseURL}
}
