package configs

// HTTP defines configuration for the HTTP server serving the ads API and
// the metrics endpoint.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on.
	Port uint16 `env:"PORT" envDefault:"8080"`
}
