package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	RedisURL   string

	UpsAPIBaseURL   string
	UpsAPIKey       string
	FedexAPIBaseURL string
	FedexAPIKey     string
}
