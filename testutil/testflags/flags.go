package testflags

import (
	"os"
	"testing"
)

func IntegrationTest(t *testing.T) {
	_, ok := os.LookupEnv("TENSORD_ENABLE_INTEGRATION_TESTS")
	if !ok {
		t.SkipNow()
	}
	t.Parallel()
}
