package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, queue string, body []byte) error {
	args := m.Called(ctx, queue, body)
	return args.Error(0)
}
