package utils

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Fees     FeeConfig
	Storage  StorageConfig
	OCR      OCRConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type FeeConfig struct {
	GSTRate         decimal.Decimal
	PlatformFeeRate decimal.Decimal
}

type StorageConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type OCRConfig struct {
	APIKey string
	Model  string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("GST_RATE", "0.10")
	viper.SetDefault("PLATFORM_FEE_RATE", "0.15")
	viper.SetDefault("OCR_MODEL", "gemini-1.5-flash")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	gstRate, err := decimal.NewFromString(viper.GetString("GST_RATE"))
	if err != nil {
		return nil, err
	}
	feeRate, err := decimal.NewFromString(viper.GetString("PLATFORM_FEE_RATE"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Fees: FeeConfig{
			GSTRate:         gstRate,
			PlatformFeeRate: feeRate,
		},
		Storage: StorageConfig{
			CloudName: viper.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:    viper.GetString("CLOUDINARY_API_KEY"),
			APISecret: viper.GetString("CLOUDINARY_API_SECRET"),
		},
		OCR: OCRConfig{
			APIKey: viper.GetString("GEMINI_API_KEY"),
			Model:  viper.GetString("OCR_MODEL"),
		},
	}

	return config, nil
}
