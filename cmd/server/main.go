package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"flight-meetup-service/internal/adapters/airportdata"
	"flight-meetup-service/internal/adapters/amadeus"
	"flight-meetup-service/internal/adapters/cachestore"
	"flight-meetup-service/internal/api"
	"flight-meetup-service/internal/config"
	"flight-meetup-service/internal/platform/db"
	"flight-meetup-service/internal/ports"
	"flight-meetup-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// main is the application composition root. It wires concrete adapters
// (Amadeus, the selected cache backend) behind ports and starts the HTTP
// server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	apiKey := os.Getenv("AMADEUS_API_KEY")
	apiSecret := os.Getenv("AMADEUS_API_SECRET")
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(apiSecret) == "" {
		log.Fatal("AMADEUS_API_KEY and AMADEUS_API_SECRET are required")
	}

	locator := airportdata.NewStaticLocator()
	provider, err := amadeus.NewProvider(
		apiKey,
		apiSecret,
		config.Get("AMADEUS_ENV", "test"),
		config.GetFloat("AMADEUS_RATE_LIMIT", 5),
		locator,
	)
	if err != nil {
		log.Fatal(err)
	}

	store, err := openCache()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	discoverer := &services.Discoverer{
		Provider: provider,
		Cache:    store,
		TTL:      config.GetDuration("DISCOVERY_TTL", 72*time.Hour),
		Fallback: services.DefaultFallbackDestinations,
	}
	validator := &services.RouteValidator{
		Provider: provider,
		Cache:    store,
		TTL:      config.GetDuration("ROUTES_TTL", 72*time.Hour),
		Enabled:  true,
	}
	retriever := &services.OfferRetriever{
		Provider:   provider,
		Cache:      store,
		TTL:        config.GetDuration("OFFERS_TTL", 12*time.Hour),
		Adults:     1,
		MaxResults: config.GetInt("MAX_OFFERS_PER_QUERY", 30),
	}
	search := &services.MeetupSearch{
		Discoverer:  discoverer,
		Validator:   validator,
		Retriever:   retriever,
		CallTimeout: config.GetDuration("SEARCH_CALL_TIMEOUT", 45*time.Second),
	}

	defaults := services.SearchRequest{
		Tolerance:              config.GetDuration("DEFAULT_TOLERANCE", 6*time.Hour),
		NearbyRadiusKM:         config.GetInt("NEARBY_RADIUS_KM", 0),
		ReturnRadiusKM:         config.GetInt("RETURN_RADIUS_KM", 0),
		UseDynamicDestinations: config.GetBool("USE_DYNAMIC_DESTINATIONS", true),
		MaxDestinations:        config.GetInt("MAX_DESTINATIONS", 25),
		PreValidate:            config.GetBool("PRE_VALIDATE_ROUTES", false),
		EarlyExit:              config.GetBool("EARLY_EXIT", true),
		Adults:                 1,
		MaxOffersPerQuery:      retriever.MaxResults,
		Concurrency:            config.GetInt("SEARCH_CONCURRENCY", 4),
		TopN:                   config.GetInt("TOP_RESULTS", 10),
	}

	router := api.NewRouter(search, defaults)

	// Write timeout covers a full cold-cache search fan-out.
	port := config.Get("PORT", "8080")
	log.Printf("Server listening addr=:%s cache=%s", port, config.Get("CACHE_BACKEND", "memory"))
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openCache selects the cache backend from CACHE_BACKEND: "memory"
// (default), "redis", or "postgres".
func openCache() (ports.CacheStore, error) {
	switch backend := config.Get("CACHE_BACKEND", "memory"); backend {
	case "redis":
		return cachestore.NewRedisStore(
			config.Get("REDIS_ADDR", "localhost:6379"),
			os.Getenv("REDIS_PASSWORD"),
			config.GetInt("REDIS_DB", 0),
		), nil
	case "postgres":
		conn, err := db.Open(os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, err
		}
		if err := cachestore.InitSchema(conn); err != nil {
			conn.Close()
			return nil, err
		}
		return cachestore.NewSQLStore(conn), nil
	case "memory":
		return cachestore.NewMemoryStore(), nil
	default:
		log.Printf("Unknown CACHE_BACKEND %q, using memory", backend)
		return cachestore.NewMemoryStore(), nil
	}
}
