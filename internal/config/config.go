package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	Timezone string `mapstructure:"timezone"`
}

// SupabaseConfig holds the identity provider settings. JWTSecret is optional:
// when set, access tokens are verified locally instead of via the remote
// user endpoint.
type SupabaseConfig struct {
	URL       string `mapstructure:"url"`
	AnonKey   string `mapstructure:"anonKey"`
	JWTSecret string `mapstructure:"jwtSecret"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"db"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
}

// Load reads configuration from a .env file (if present) and the
// environment, with sensible defaults for local development.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("db.host", "DB_HOST")
	viper.BindEnv("db.port", "DB_PORT")
	viper.BindEnv("db.user", "DB_USER")
	viper.BindEnv("db.password", "DB_PASSWORD")
	viper.BindEnv("db.name", "DB_NAME")
	viper.BindEnv("db.sslmode", "DB_SSLMODE")
	viper.BindEnv("db.timezone", "DB_TIMEZONE")
	viper.BindEnv("supabase.url", "SUPABASE_URL")
	viper.BindEnv("supabase.anonKey", "SUPABASE_ANON_KEY")
	viper.BindEnv("supabase.jwtSecret", "SUPABASE_JWT_SECRET")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.password", "password")
	viper.SetDefault("db.name", "cort_fleet")
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("db.timezone", "UTC")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
