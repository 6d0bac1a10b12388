package nordvpn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yllada/nordvpn-indicator/common"
)

const technologyWireguard = "wireguard_udp"

// API is a read-only client for the public NordVPN server metadata API.
type API struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

type apiCountry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type apiServer struct {
	Hostname     string `json:"hostname"`
	Load         int    `json:"load"`
	Technologies []struct {
		Identifier string `json:"identifier"`
	} `json:"technologies"`
	Locations []struct {
		Country struct {
			Name string `json:"name"`
		} `json:"country"`
	} `json:"locations"`
}

func (s apiServer) supports(technology string) bool {
	for _, t := range s.Technologies {
		if t.Identifier == technology {
			return true
		}
	}
	return false
}

// HTTPError represents a non-200 answer from the API.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s for %s", e.StatusCode, e.Status, e.URL)
}

// NewAPI creates an API client. An empty baseURL selects the public endpoint.
func NewAPI(baseURL string) *API {
	if baseURL == "" {
		baseURL = common.APIBaseURL
	}
	return &API{
		client: &http.Client{
			Timeout: common.APITimeout,
			Transport: &http.Transport{
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: common.AppID,
	}
}

// Countries returns every country known to the API.
func (a *API) Countries(ctx context.Context) ([]apiCountry, error) {
	var countries []apiCountry
	if err := a.get(ctx, "/v1/servers/countries", nil, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// Recommendations returns servers in the API's order of preference.
// A negative countryID disables the country filter.
func (a *API) Recommendations(ctx context.Context, countryID int) ([]apiServer, error) {
	var query url.Values
	if countryID > -1 {
		query = url.Values{"filters[country_id]": {strconv.Itoa(countryID)}}
	}
	var servers []apiServer
	if err := a.get(ctx, "/v1/servers/recommendations", query, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

func (a *API) get(ctx context.Context, path string, query url.Values, v any) error {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "application/json")

	common.LogDebug("GET %s", u)
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %w", common.ErrRemoteUnavailable, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        u,
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrParse, err)
	}
	return nil
}
