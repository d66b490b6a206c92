package dineoutweb

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/macleann/favameal/pkg/model"
)

type restaurantJSON struct {
	Name    string `json:"name"`
	Address struct {
		StreetAddress   string `json:"streetAddress"`
		AddressLocality string `json:"addressLocality"`
		AddressRegion   string `json:"addressRegion"`
	} `json:"address"`
}

// FindRestaurant scrapes the directory's search results for LocalBusiness
// metadata and returns name/address candidates.
func (d *DineOutWebIntegration) FindRestaurant(name string) ([]model.Restaurant, error) {
	collector := colly.NewCollector()

	var (
		errs    error
		results []model.Restaurant
	)

	collector.OnHTML("script[type='application/ld+json']", func(element *colly.HTMLElement) {
		var candidate restaurantJSON
		if err := json.Unmarshal([]byte(element.Text), &candidate); multierr.AppendInto(&errs, err) {
			return
		}

		if candidate.Name == "" {
			return
		}

		d.logger.Debug("found restaurant candidate", zap.String("name", candidate.Name))

		results = append(results, model.Restaurant{
			Name:    candidate.Name,
			Address: formatAddress(candidate),
		})
	})

	multierr.AppendInto(&errs, collector.Visit(d.BaseURL+"/search?q="+url.QueryEscape(name)))

	return results, errs
}

func formatAddress(candidate restaurantJSON) string {
	parts := make([]string, 0, 3)

	for _, part := range []string{candidate.Address.StreetAddress, candidate.Address.AddressLocality, candidate.Address.AddressRegion} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}
