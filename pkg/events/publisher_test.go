package events

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/ledgerhouse/member-ledger/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakeGateway records posts and fails configured connection ids.
type fakeGateway struct {
	posted []string
	gone   map[string]bool
}

func (f *fakeGateway) PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error) {
	if f.gone[*params.ConnectionId] {
		return nil, &apigwtypes.GoneException{}
	}
	f.posted = append(f.posted, *params.ConnectionId)
	return &apigatewaymanagementapi.PostToConnectionOutput{}, nil
}

func TestPublish(t *testing.T) {
	msg := Message{
		Type: MessageTypeBalanceUpdate,
		Payload: BalanceUpdatePayload{
			AccountID:     "acct-1",
			TransactionID: "tx-1",
			Status:        "approved",
			NewBalance:    6000,
		},
	}

	t.Run("Fans Out To All Connections", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetAllConnections", mock.Anything).Return([]string{"conn-1", "conn-2"}, nil)

		gw := &fakeGateway{}
		p := &DefaultPublisher{Connections: mockStore, Client: gw}

		err := p.Publish(context.Background(), msg)

		assert.NoError(t, err)
		assert.Equal(t, []string{"conn-1", "conn-2"}, gw.posted)
	})

	t.Run("Prunes Stale Connections", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetAllConnections", mock.Anything).Return([]string{"conn-1", "conn-stale"}, nil)
		mockStore.On("RemoveConnection", mock.Anything, "conn-stale").Return(nil)

		gw := &fakeGateway{gone: map[string]bool{"conn-stale": true}}
		p := &DefaultPublisher{Connections: mockStore, Client: gw}

		err := p.Publish(context.Background(), msg)

		assert.NoError(t, err)
		assert.Equal(t, []string{"conn-1"}, gw.posted)
		mockStore.AssertExpectations(t)
	})

	t.Run("Connection Listing Fails", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetAllConnections", mock.Anything).Return(nil, errors.New("scan failed"))

		p := &DefaultPublisher{Connections: mockStore, Client: &fakeGateway{}}

		err := p.Publish(context.Background(), msg)

		assert.Error(t, err)
	})
}

func TestNoOpPublisher(t *testing.T) {
	p := &NoOpPublisher{}

	assert.NoError(t, p.Publish(context.Background(), Message{Type: MessageTypePendingReminder}))
}
