package labevents

import (
	"context"
	"errors"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/exceptions"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, msg)
	return args.Error(0)
}

func TestLabEventPublisher_Publish(t *testing.T) {
	event := &models.LabEvent{
		EventID:    "evt-1",
		EventType:  "lab_test.completed",
		LabTestID:  "65a1f0c2e4b0a1b2c3d4e5f6",
		Status:     "Completed",
		OccurredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	t.Run("Publishes Persistent JSON", func(t *testing.T) {
		channel := new(mockChannel)
		channel.On("PublishWithContext", "", "lab_events", mock.MatchedBy(func(msg amqp.Publishing) bool {
			var decoded models.LabEvent
			if err := json.Unmarshal(msg.Body, &decoded); err != nil {
				return false
			}
			return msg.DeliveryMode == amqp.Persistent &&
				msg.MessageId == "evt-1" &&
				decoded.EventType == "lab_test.completed"
		})).Return(nil)

		publisher := newLabEventPublisher(channel, "lab_events", zap.NewNop())
		require.NoError(t, publisher.Publish(context.Background(), event))
		channel.AssertExpectations(t)
	})

	t.Run("Wraps Broker Error", func(t *testing.T) {
		channel := new(mockChannel)
		channel.On("PublishWithContext", "", "lab_events", mock.Anything).Return(errors.New("channel closed"))

		publisher := newLabEventPublisher(channel, "lab_events", zap.NewNop())
		err := publisher.Publish(context.Background(), event)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, exceptions.StatusCodeOf(err))
	})
}
