package types

import (
	"math"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Bar is one OHLCV sample. Bars are input only and never mutated.
type Bar struct {
	Symbol string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Time   time.Time `yaml:"time" json:"time" csv:"time" validate:"required"`
	Open   float64   `yaml:"open" json:"open" csv:"open" validate:"gt=0"`
	High   float64   `yaml:"high" json:"high" csv:"high" validate:"gt=0,gtefield=Low"`
	Low    float64   `yaml:"low" json:"low" csv:"low" validate:"gt=0"`
	Close  float64   `yaml:"close" json:"close" csv:"close" validate:"gt=0"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume" validate:"gte=0"`
}

// Validate rejects malformed bars: non-finite or non-positive prices,
// negative volume, high below low, or open/close outside the high-low range.
func (b Bar) Validate() error {
	for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Newf(errors.ErrCodeInvalidBar, "non-finite value in bar for %s at %s", b.Symbol, b.Time.Format(time.RFC3339))
		}
	}

	if err := validate.Struct(b); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidBar, err, "invalid bar for %s at %s", b.Symbol, b.Time.Format(time.RFC3339))
	}

	if b.Open > b.High || b.Open < b.Low || b.Close > b.High || b.Close < b.Low {
		return errors.Newf(errors.ErrCodeInvalidBar,
			"open %.8f or close %.8f outside range [%.8f, %.8f] for %s at %s",
			b.Open, b.Close, b.Low, b.High, b.Symbol, b.Time.Format(time.RFC3339))
	}

	return nil
}

// TypicalPrice is (high + low + close) / 3.
func (b Bar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}
