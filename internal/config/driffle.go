package config

import "time"

type Driffle struct {
	BaseURL string `env:"DRIFFLE_BASE_URL" envDefault:"https://api.driffle.com" validate:"url"`
	AuthURL string `env:"DRIFFLE_AUTH_URL" envDefault:"https://api.driffle.com/auth/token" validate:"url"`
	APIKey  string `env:"DRIFFLE_API_KEY,required" json:"-"`

	RequestTimeout time.Duration `env:"DRIFFLE_REQUEST_TIMEOUT" envDefault:"30s"`
	TokenTTL       time.Duration `env:"DRIFFLE_TOKEN_TTL" envDefault:"10m"`

	// CommissionRPS caps calls to the commission endpoint while resolving
	// competitor base prices.
	CommissionRPS   float64       `env:"DRIFFLE_COMMISSION_RPS" envDefault:"3.3"`
	CommissionCache time.Duration `env:"DRIFFLE_COMMISSION_CACHE" envDefault:"5m"`
}
