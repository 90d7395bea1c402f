package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr     string
	DBDSN        string
	RedisAddr    string
	KafkaBrokers string
	OrderTopic   string
	JWTSecret    string
}

// Load reads configuration from the environment, picking up a local .env
// file when one exists.
func Load() *Config {
	_ = godotenv.Load(".env", "../.env")

	return &Config{
		HTTPAddr:     getEnv("APP_ADDR", ":8080"),
		DBDSN:        getEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/swapnest?parseTime=true"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
		OrderTopic:   getEnv("KAFKA_ORDER_TOPIC", "order-topic"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
