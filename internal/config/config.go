// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers defaults, an optional YAML file and BOOST_ env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

// Store backends accepted by the "store" key.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Query modes accepted by the "query_mode" key.
const (
	QueryModePipeline = "pipeline"
	QueryModeSplit    = "split"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the backend holding win and claim records.
	Store string `koanf:"store"`

	// MongoURI is the connection string used when Store is "mongo".
	MongoURI string `koanf:"mongo_uri"`

	// Database names the MongoDB database holding both collections.
	Database string `koanf:"database"`

	// WinsCollection and ClaimsCollection name the two record sets.
	WinsCollection   string `koanf:"wins_collection"`
	ClaimsCollection string `koanf:"claims_collection"`

	// QueryMode picks a single $lookup pipeline or two finds plus an in-process anti-join.
	QueryMode string `koanf:"query_mode"`

	// ConnectTimeoutMS bounds the initial connection to the store.
	ConnectTimeoutMS int `koanf:"connect_timeout_ms"`

	// SeedFile optionally preloads the memory store from an extended JSON document.
	SeedFile string `koanf:"seed_file"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":8080",
		Store:            StoreMongo,
		MongoURI:         "mongodb://localhost:27017",
		Database:         "starknet_quest",
		WinsCollection:   "boosts",
		ClaimsCollection: "boost_claims",
		QueryMode:        QueryModePipeline,
		ConnectTimeoutMS: 10_000,
	}
}
