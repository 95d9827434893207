// Package testing flips the process into test mode. Import it for side effects from
// tests that build the full application.
package testing

import (
	"os"
	"sync"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("CLIENTES_TEST_MODE", "1")
		if os.Getenv("REDIS_ADDR") != "" {
			_ = os.Unsetenv("REDIS_ADDR")
		}
	})
}

func init() {
	ensureTestMode()
}
