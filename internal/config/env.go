package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort      string
	MongoURL      string
	MongoDBName   string
	PsqlURL       string
	RedisURL      string
	RedisPassword string
	RedisDB       int

	EventConfigPath string
	EventPassword   string
	JWTSecret       string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file loaded, falling back to environment:", err)
	}
	config := Config{
		HTTPPort:        getEnv("HTTPPORT", "3666"),
		MongoURL:        getEnv("MONGOURL", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGODBNAME", "squidevent"),
		PsqlURL:         getEnv("PSQLURL", "host=localhost port=5432 user=admin password=password dbname=squidevent sslmode=disable"),
		RedisURL:        getEnv("REDISURL", "localhost:6379"),
		RedisPassword:   getEnv("REDISPASSWORD", ""),
		RedisDB:         getEnvInt("REDISDB", 0),
		EventConfigPath: getEnv("EVENTCONFIGPATH", "eventConfig.json"),
		EventPassword:   getEnv("EVENTPASSWORD", ""),
		JWTSecret:       getEnv("JWTSECRET", "secrettt"),
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
