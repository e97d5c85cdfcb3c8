package amadeus

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"flight-meetup-service/internal/ports"

	"golang.org/x/time/rate"
)

// Provider implements ports.FlightProvider against the Amadeus self-service
// REST API.
//
// It coordinates:
//   - OAuth2 client-credentials token acquisition and refresh
//   - Rate limiting sized to the provider's permitted request rate
//   - External API calls with retry/backoff
//   - Parse-and-validate mapping of loosely-typed responses into strict
//     domain values
//
// The provider is safe for concurrent use.
type Provider struct {
	session *http.Client
	baseURL string
	apiKey  string
	secret  string
	limiter *rate.Limiter
	locator ports.AirportLocator

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewProvider selects the API host by environment ("test" or "production";
// "live" is an alias for production) and configures the request limiter
// from the permitted requests-per-second.
func NewProvider(
	apiKey, apiSecret, environment string,
	requestsPerSecond float64,
	locator ports.AirportLocator,
) (*Provider, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, errors.New("amadeus api key and secret must be provided")
	}

	baseURL := "https://test.api.amadeus.com"
	if environment == "production" || environment == "live" {
		baseURL = "https://api.amadeus.com"
	}

	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	return &Provider{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		secret:  apiSecret,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		locator: locator,
	}, nil
}
