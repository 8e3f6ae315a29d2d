package config

import "github.com/spf13/viper"

// Config - структура для хранения конфигураций приложения.
// Флаги Has* описывают необязательные части схемы конкретной инсталляции
// и вычисляются один раз при деплое: движок не проверяет живую схему.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	PostgresConn  string `mapstructure:"POSTGRES_CONN"`
	PostgresUser  string `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass  string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost  string `mapstructure:"POSTGRES_HOST"`
	PostgresPort  string `mapstructure:"POSTGRES_PORT"`
	PostgresDB    string `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL  string `mapstructure:"MIGRATION_URL"`

	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisDB      int    `mapstructure:"REDIS_DB"`
	ViewCacheTTL int    `mapstructure:"VIEW_CACHE_TTL_SEC"`

	SLAWindowHours float64 `mapstructure:"SLA_WINDOW_HOURS"`

	HasProviderAwardFields bool `mapstructure:"CAP_PROVIDER_AWARD_FIELDS"`
	HasTimelineEvents      bool `mapstructure:"CAP_TIMELINE_EVENTS"`
	HasQuoteMessages       bool `mapstructure:"CAP_QUOTE_MESSAGES"`
}

// LoadConfig загружает конфигурацию из файла
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SLA_WINDOW_HOURS", 24)
	viper.SetDefault("VIEW_CACHE_TTL_SEC", 300)
	viper.SetDefault("CAP_PROVIDER_AWARD_FIELDS", true)
	viper.SetDefault("CAP_TIMELINE_EVENTS", true)
	viper.SetDefault("CAP_QUOTE_MESSAGES", true)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}
	err = viper.Unmarshal(&cfg)
	return
}
