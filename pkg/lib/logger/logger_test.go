package logger_test

import (
	"testing"

	"storefront/pkg/config"
	"storefront/pkg/lib/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	for _, env := range []string{config.EnvLocal, config.EnvDev, config.EnvProd} {
		t.Run(env, func(t *testing.T) {
			log, err := logger.SetupLogger(env)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}

	t.Run("unknown env", func(t *testing.T) {
		log, err := logger.SetupLogger("staging")
		assert.Error(t, err)
		assert.Nil(t, log)
	})
}
