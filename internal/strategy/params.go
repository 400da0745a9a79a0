package strategy

import (
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// decodeParams overlays raw config params onto target, which already holds
// the defaults, then validates the result.
func decodeParams(name string, params map[string]any, target any) error {
	if len(params) > 0 {
		data, err := yaml.Marshal(params)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "failed to encode %s params", name)
		}

		if err := yaml.Unmarshal(data, target); err != nil {
			return errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "failed to decode %s params", name)
		}
	}

	if err := validate.Struct(target); err != nil {
		return errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "invalid %s params", name)
	}

	return nil
}

// window returns history[index-lookback : index+1].
func window(history []types.Bar, index, lookback int) ([]types.Bar, error) {
	if index < 0 || index >= len(history) {
		return nil, errors.Newf(errors.ErrCodeInsufficientData, "index %d out of range for %d bars", index, len(history))
	}

	if index < lookback {
		return nil, errors.NewInsufficientDataErrorf(lookback+1, index+1, history[index].Symbol,
			"need %d bars, have %d", lookback+1, index+1)
	}

	return history[index-lookback : index+1], nil
}

// warmingUp reports whether err only means there is not enough history yet.
func warmingUp(err error) bool {
	return errors.IsInsufficientDataError(err)
}
