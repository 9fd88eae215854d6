package mocks

import (
	"context"

	"github.com/captainblair/vertex/pkg/daraja"
	"github.com/stretchr/testify/mock"
)

type DarajaClient struct {
	mock.Mock
}

func (d *DarajaClient) STKPush(ctx context.Context, request daraja.PushRequest) (daraja.PushResponse, error) {
	args := d.Called(ctx, request)
	return args.Get(0).(daraja.PushResponse), args.Error(1)
}
