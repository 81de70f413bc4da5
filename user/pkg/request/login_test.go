package request

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordIsMasked(t *testing.T) {
	login := Login{Email: "jane@example.com", Password: "hunter22"}
	register := Register{Email: "jane@example.com", Password: "hunter22", DisplayName: "Jane"}

	for name, value := range map[string]interface{}{"login": login, "register": register} {
		t.Run(name, func(t *testing.T) {
			encoded, err := json.Marshal(value)
			require.NoError(t, err)
			assert.NotContains(t, string(encoded), "hunter22")
			assert.Contains(t, string(encoded), "jane@example.com")

			var buffer bytes.Buffer
			logger := zerolog.New(&buffer)
			logger.Info().Interface("request", value).Msg("")
			assert.NotContains(t, buffer.String(), "hunter22")
		})
	}

	assert.Equal(t, "hunter22", login.Password)
}
