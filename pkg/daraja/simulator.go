package daraja

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// simulator fakes the processor for sandbox runs and tests: every push is
// accepted with fabricated correlation ids after a small artificial latency.
type simulator struct {
	latency time.Duration
	logger  *zap.Logger
}

func NewSimulator(latency time.Duration, logger *zap.Logger) Client {
	return &simulator{latency: latency, logger: logger}
}

func (s *simulator) STKPush(ctx context.Context, request PushRequest) (PushResponse, error) {
	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return PushResponse{}, ctx.Err()
		case <-time.After(s.latency):
		}
	}

	response := PushResponse{
		MerchantRequestID:   "MRID-" + uuid.NewString(),
		CheckoutRequestID:   "CRID-" + uuid.NewString(),
		ResponseCode:        ResponseCodeSuccess,
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     "Success. Request accepted for processing",
	}

	s.logger.Info("Simulated STK push accepted",
		zap.String("phoneNumber", request.PhoneNumber),
		zap.Int64("amount", request.Amount),
		zap.String("checkoutRequestID", response.CheckoutRequestID))

	return response, nil
}
