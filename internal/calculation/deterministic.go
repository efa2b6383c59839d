package calculation

import "time"

// nowFunc stamps TaxResult.CalculatedAt (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }
