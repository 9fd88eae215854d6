package daraja_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/captainblair/vertex/pkg/daraja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var correlationIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

func TestSimulator_STKPush(t *testing.T) {
	sim := daraja.NewSimulator(0, zap.NewNop())

	first, err := sim.STKPush(context.Background(), daraja.PushRequest{PhoneNumber: "254712345678", Amount: 500})
	require.NoError(t, err)

	assert.Equal(t, daraja.ResponseCodeSuccess, first.ResponseCode)
	assert.Regexp(t, correlationIDPattern, first.CheckoutRequestID)
	assert.Regexp(t, correlationIDPattern, first.MerchantRequestID)
	assert.NotEmpty(t, first.CustomerMessage)

	second, err := sim.STKPush(context.Background(), daraja.PushRequest{PhoneNumber: "254712345678", Amount: 500})
	require.NoError(t, err)
	assert.NotEqual(t, first.CheckoutRequestID, second.CheckoutRequestID, "each push gets a unique correlation id")
}
