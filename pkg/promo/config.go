package promo

import "time"

type Config struct {
	ModalWindow  time.Duration `env:"PROMO_MODAL_WINDOW" envDefault:"24h"`
	SpinValidity time.Duration `env:"PROMO_SPIN_VALIDITY" envDefault:"168h"`
	// Discount percentages on the wheel. Zero is a losing slot.
	SpinPrizes []int `env:"PROMO_SPIN_PRIZES" envDefault:"0,5,10,15" envSeparator:","`
}

func DefaultConfig() Config {
	return Config{
		ModalWindow:  24 * time.Hour,
		SpinValidity: 7 * 24 * time.Hour,
		SpinPrizes:   []int{0, 5, 10, 15},
	}
}
