package types

import (
	"math"
	"testing"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BarTestSuite struct {
	suite.Suite
}

func TestBarSuite(t *testing.T) {
	suite.Run(t, new(BarTestSuite))
}

func validBar() Bar {
	return Bar{
		Symbol: "BTC",
		Time:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Open:   100,
		High:   105,
		Low:    98,
		Close:  103,
		Volume: 1200,
	}
}

func (suite *BarTestSuite) TestValidate() {
	tests := []struct {
		name    string
		mutate  func(b *Bar)
		wantErr bool
	}{
		{name: "valid bar", mutate: func(_ *Bar) {}},
		{name: "zero volume is allowed", mutate: func(b *Bar) { b.Volume = 0 }},
		{name: "missing time", mutate: func(b *Bar) { b.Time = time.Time{} }, wantErr: true},
		{name: "zero close", mutate: func(b *Bar) { b.Close = 0 }, wantErr: true},
		{name: "negative volume", mutate: func(b *Bar) { b.Volume = -1 }, wantErr: true},
		{name: "high below low", mutate: func(b *Bar) { b.High = 97 }, wantErr: true},
		{name: "close above high", mutate: func(b *Bar) { b.Close = 106 }, wantErr: true},
		{name: "open below low", mutate: func(b *Bar) { b.Open = 97.5 }, wantErr: true},
		{name: "infinite high and close", mutate: func(b *Bar) { b.High, b.Close = math.Inf(1), math.Inf(1) }, wantErr: true},
		{name: "nan open", mutate: func(b *Bar) { b.Open = math.NaN() }, wantErr: true},
		{name: "infinite volume", mutate: func(b *Bar) { b.Volume = math.Inf(1) }, wantErr: true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			bar := validBar()
			tc.mutate(&bar)

			err := bar.Validate()
			if tc.wantErr {
				suite.Error(err)
				suite.True(errors.HasCode(err, errors.ErrCodeInvalidBar))
				suite.True(errors.IsDataError(err))
			} else {
				suite.NoError(err)
			}
		})
	}
}

func (suite *BarTestSuite) TestTypicalPrice() {
	bar := validBar()
	suite.InDelta((105.0+98.0+103.0)/3, bar.TypicalPrice(), 1e-9)
}
