package nordvpn

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/yllada/nordvpn-indicator/common"
)

// ListCountries returns the countries supported by the CLI, enriched with the
// API's id and ISO code. The CLI and the API are queried concurrently; if
// either fails the result is empty.
func (c *Client) ListCountries(ctx context.Context) []CountryRecord {
	var (
		names     []string
		countries []apiCountry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, _, err := c.runner.Run(gctx, common.QueryTimeout, Binary, "countries")
		if err != nil {
			return err
		}
		names = parseCLICountries(out)
		return nil
	})
	g.Go(func() error {
		var err error
		countries, err = c.api.Countries(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		common.LogWarn("Could not list countries: %v", err)
		return []CountryRecord{}
	}

	records := matchCountries(names, countries)
	if records == nil {
		records = []CountryRecord{}
	}
	return records
}

// CountryID returns the API id of the named country, or -1.
func CountryID(countries []CountryRecord, name string) int {
	for _, c := range countries {
		if c.Name == name {
			return c.ID
		}
	}
	return -1
}
