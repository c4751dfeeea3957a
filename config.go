package loqui

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups all tunables. Values are taken from environment variables
// with the prefix "LOQUI_". Example: LOQUI_CACHE_TTL=10s LOQUI_IDENTITY_BATCH_SIZE=16 .
type Config struct {
	// HTTPTimeout bounds one whole HTTP exchange, connection included.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// CacheTTL is how long parsed list responses stay in the response
	// cache. Zero disables response caching entirely.
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"30s"`

	// IdentityBatchSize caps how many ids or names one batched identity
	// lookup carries.
	IdentityBatchSize int `envconfig:"IDENTITY_BATCH_SIZE" default:"48"`
}

// LoadConfig populates Config from environment variables (prefix LOQUI_).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("LOQUI", &c)
}
