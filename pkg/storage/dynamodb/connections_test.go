package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ledgerhouse/member-ledger/pkg/storage"
	"github.com/ledgerhouse/member-ledger/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestConnections(t *testing.T) {
	t.Run("Add Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ConnectionsTableName: "connections"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

		err := store.AddConnection(context.Background(), "conn-1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Remove Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ConnectionsTableName: "connections"}

		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(&dynamodb.DeleteItemOutput{}, nil)

		err := store.RemoveConnection(context.Background(), "conn-1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Get All Returns Ids", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ConnectionsTableName: "connections"}

		items := []map[string]types.AttributeValue{
			{"connection_id": &types.AttributeValueMemberS{Value: "conn-1"}},
			{"connection_id": &types.AttributeValueMemberS{Value: "conn-2"}},
		}
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(&dynamodb.ScanOutput{Items: items}, nil)

		ids, err := store.GetAllConnections(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []string{"conn-1", "conn-2"}, ids)
	})

	t.Run("Scan Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ConnectionsTableName: "connections"}

		mockClient.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("scan failed"))

		_, err := store.GetAllConnections(context.Background())

		assert.ErrorIs(t, err, storage.ErrStoreUnavailable)
	})
}
