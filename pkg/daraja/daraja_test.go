package daraja_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/captainblair/vertex/pkg/daraja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp(t *testing.T) {
	at := time.Date(2024, time.January, 31, 15, 30, 45, 0, time.Local)
	assert.Equal(t, "20240131153045", daraja.Timestamp(at))

	single := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.Local)
	assert.Equal(t, "20240305070809", daraja.Timestamp(single), "components must be zero padded")
}

func TestPassword(t *testing.T) {
	password := daraja.Password("174379", "passkey", "20240131153045")

	decoded, err := base64.StdEncoding.DecodeString(password)
	require.NoError(t, err)
	assert.Equal(t, "174379passkey20240131153045", string(decoded))
}

func TestStkCallback_ReceiptNumber(t *testing.T) {
	t.Run("receipt present", func(t *testing.T) {
		cb := daraja.StkCallback{
			CallbackMetadata: &daraja.CallbackMetadata{
				Item: []daraja.MetadataItem{
					{Name: "Amount", Value: float64(500)},
					{Name: "MpesaReceiptNumber", Value: "QAR7X8Y9Z0"},
					{Name: "PhoneNumber", Value: float64(254712345678)},
				},
			},
		}

		assert.Equal(t, "QAR7X8Y9Z0", cb.ReceiptNumber())
	})

	t.Run("no metadata", func(t *testing.T) {
		cb := daraja.StkCallback{}
		assert.Equal(t, "", cb.ReceiptNumber())
	})

	t.Run("no receipt item", func(t *testing.T) {
		cb := daraja.StkCallback{
			CallbackMetadata: &daraja.CallbackMetadata{
				Item: []daraja.MetadataItem{{Name: "Amount", Value: float64(1)}},
			},
		}
		assert.Equal(t, "", cb.ReceiptNumber())
	})
}
