package version

import (
	"fmt"
	"strings"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/Masterminds/semver/v3"
)

// CheckCompatibility reports whether a config written for configVersion can
// run on libraryVersion. Major and minor must match; patch may differ.
// Either side being "main" skips the check.
func CheckCompatibility(libraryVersion, configVersion string) error {
	libraryVersion = strings.TrimPrefix(libraryVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if libraryVersion == "main" || configVersion == "main" {
		return nil
	}

	library, err := semver.NewVersion(libraryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid library version '%s'", libraryVersion)
	}

	// ~1.2.0 accepts any 1.2.x
	constraint, err := semver.NewConstraint(fmt.Sprintf("~%d.%d.0", library.Major(), library.Minor()))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidVersion, "failed to build version constraint", err)
	}

	requested, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if !constraint.Check(requested) {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"config version %s is not compatible with library %d.%d.x",
			requested.String(), library.Major(), library.Minor())
	}

	return nil
}
