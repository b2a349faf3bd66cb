// Package guard flips the application into test mode when imported from a
// test binary, so nothing in the process tries to touch live infrastructure.
package guard

import (
	"os"
	"sync"

	"github.com/profitpulse/profitpulse/internal/app"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("PROFITPULSE_TEST_MODE") == "" {
			_ = os.Setenv("PROFITPULSE_TEST_MODE", "1")
		}
		app.RefreshTestMode()
	})
}
