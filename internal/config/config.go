package config

import "time"

type Config struct {
	Telegram      Telegram
	ExpiryWindow  time.Duration `env:"EXPIRY_WINDOW" envDefault:"168h"` // records older than this stop showing up
	BillLookahead time.Duration `env:"BILL_LOOKAHEAD" envDefault:"168h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1h"`
	CitiesFile    string        `env:"CITIES_FILE" envDefault:"purchasingpower.json"`
}

type Telegram struct {
	Timeout int `env:"TIMEOUT" envDefault:"60"`
}
