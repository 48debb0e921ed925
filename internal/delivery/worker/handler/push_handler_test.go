package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"agriconnect/config"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/mocks"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPushHandler(insightUC *mocks.InsightUsecase) *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config:    &config.Config{PubSub: &config.PubSubConfig{Provider: "local"}},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		InsightUC: insightUC,
	})
}

func pushBody(t *testing.T, data string) []byte {
	t.Helper()

	var msg PubSubMessage
	msg.Message.Data = data
	msg.Message.MessageID = "1"
	msg.Message.Attributes = map[string]string{"request_id": "req-1"}
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func encodedEvent(t *testing.T, event service.OrderEvent) string {
	t.Helper()

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(raw)
}

func push(t *testing.T, h *PushHandler, body []byte) int {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push/order-events", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandlePush(e.NewContext(req, rec)))

	return rec.Code
}

func TestPushHandler_DeliveredOrderRefreshesRecommendations(t *testing.T) {
	customerID := uuid.New()
	insightUC := new(mocks.InsightUsecase)
	insightUC.On("RefreshRecommendations", mock.Anything, customerID).
		Return([]*entity.Recommendation{{ID: uuid.New()}}, nil).Once()

	code := push(t, newTestPushHandler(insightUC), pushBody(t, encodedEvent(t, service.OrderEvent{
		Type:           service.OrderEventStatusChanged,
		OrderID:        uuid.NewString(),
		CustomerID:     customerID.String(),
		Status:         entity.OrderStatusDelivered.String(),
		PreviousStatus: entity.OrderStatusConfirmed.String(),
	})))

	assert.Equal(t, http.StatusOK, code)
	insightUC.AssertExpectations(t)
}

func TestPushHandler_IgnoredEvents(t *testing.T) {
	tests := []struct {
		name  string
		event service.OrderEvent
	}{
		{"created", service.OrderEvent{Type: service.OrderEventCreated, CustomerID: uuid.NewString(), Status: "pending"}},
		{"confirmed", service.OrderEvent{Type: service.OrderEventStatusChanged, CustomerID: uuid.NewString(), Status: "confirmed"}},
		{"cancelled", service.OrderEvent{Type: service.OrderEventStatusChanged, CustomerID: uuid.NewString(), Status: "cancelled"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insightUC := new(mocks.InsightUsecase)

			code := push(t, newTestPushHandler(insightUC), pushBody(t, encodedEvent(t, tt.event)))

			assert.Equal(t, http.StatusOK, code)
			insightUC.AssertNotCalled(t, "RefreshRecommendations", mock.Anything, mock.Anything)
		})
	}
}

func TestPushHandler_Failures(t *testing.T) {
	delivered := func(customerID string) service.OrderEvent {
		return service.OrderEvent{Type: service.OrderEventStatusChanged, CustomerID: customerID, Status: "delivered"}
	}

	t.Run("refresh failure asks for redelivery", func(t *testing.T) {
		insightUC := new(mocks.InsightUsecase)
		insightUC.On("RefreshRecommendations", mock.Anything, mock.Anything).Return(nil, errors.New("store down"))

		code := push(t, newTestPushHandler(insightUC), pushBody(t, encodedEvent(t, delivered(uuid.NewString()))))

		assert.Equal(t, http.StatusServiceUnavailable, code)
	})

	t.Run("malformed customer id is acknowledged", func(t *testing.T) {
		insightUC := new(mocks.InsightUsecase)

		code := push(t, newTestPushHandler(insightUC), pushBody(t, encodedEvent(t, delivered("nope"))))

		assert.Equal(t, http.StatusOK, code)
		insightUC.AssertNotCalled(t, "RefreshRecommendations", mock.Anything, mock.Anything)
	})

	t.Run("data is not base64", func(t *testing.T) {
		code := push(t, newTestPushHandler(new(mocks.InsightUsecase)), pushBody(t, "%%%"))

		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("data is not an order event", func(t *testing.T) {
		data := base64.StdEncoding.EncodeToString([]byte("not json"))

		code := push(t, newTestPushHandler(new(mocks.InsightUsecase)), pushBody(t, data))

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestNewPushHandler_VerifiesGooglePushOutsideLocal(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: "google"}}
	cfg.Env.Env = "production"
	h := NewPushHandler(PushHandlerParams{Config: cfg, Logger: slog.Default()})
	assert.True(t, h.verifyPushAuth)

	cfg.Env.Env = "local"
	h = NewPushHandler(PushHandlerParams{Config: cfg, Logger: slog.Default()})
	assert.False(t, h.verifyPushAuth)
}
