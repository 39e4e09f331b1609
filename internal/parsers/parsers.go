// Package parsers imports all report parser packages to trigger their
// init() registration. Import this package for side effects only.
package parsers

import (
	// Registration order is the auto-detection order.
	_ "noakweather/internal/parsers/metar"
	_ "noakweather/internal/parsers/taf"
)
