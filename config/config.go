package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the server reads from the environment.
// godotenv loads .env in main before this is populated.
type Config struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	MongoURI      string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB       string        `envconfig:"MONGO_DB" default:"courtside"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	UploadDir     string        `envconfig:"UPLOAD_DIR" default:"static/userpic"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
