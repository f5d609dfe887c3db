package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/models"
	"github.com/ledgerhouse/member-ledger/pkg/queue"
	qmocks "github.com/ledgerhouse/member-ledger/pkg/queue/mocks"
	"github.com/ledgerhouse/member-ledger/pkg/storage"
	"github.com/ledgerhouse/member-ledger/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	member = identity.Identity{AccountId: "acct-1", Role: models.RoleMember}
	admin  = identity.Identity{AccountId: "admin-1", Role: models.RoleAdmin}

	activeAccount   = &models.Account{AccountId: "acct-1", OwnerName: "J Smith", Role: models.RoleMember, Active: true}
	inactiveAccount = &models.Account{AccountId: "acct-1", OwnerName: "J Smith", Role: models.RoleMember, Active: false}

	dest = models.Destination{SortCode: "12-34-56", AccountNumber: "87654321", AccountHolderName: "J Smith"}
)

func TestSubmitWithdrawal(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockNotifier := new(qmocks.Notifier)
		svc := NewService(mockStore, mockNotifier, nil, Policy{})

		created := &models.Transaction{Id: "tx-1", AccountId: "acct-1", Type: models.DEBIT, Amount: 2500, Status: models.PENDING}
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(activeAccount, nil)
		mockStore.On("AppendTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.DEBIT && tx.Amount == 2500 && tx.Description == "Withdrawal" && tx.Destination != nil
		})).Return(created, nil)
		mockNotifier.On("Enqueue", mock.Anything, mock.MatchedBy(func(n queue.Notification) bool {
			return n.Kind == queue.KindReview && n.Transaction.Id == "tx-1"
		})).Return(nil)

		result, err := svc.SubmitWithdrawal(context.Background(), member, "acct-1", 2500, dest, "")

		assert.NoError(t, err)
		assert.Equal(t, models.PENDING, result.Status)
		mockStore.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Forbidden For Someone Else's Account", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{})

		_, err := svc.SubmitWithdrawal(context.Background(), member, "acct-2", 2500, dest, "")

		assert.ErrorIs(t, err, identity.ErrForbidden)
		mockStore.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything)
	})

	t.Run("Admin May Submit For Any Account", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{})

		created := &models.Transaction{Id: "tx-1", AccountId: "acct-1", Status: models.PENDING}
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(activeAccount, nil)
		mockStore.On("AppendTransaction", mock.Anything, mock.Anything).Return(created, nil)

		_, err := svc.SubmitWithdrawal(context.Background(), admin, "acct-1", 2500, dest, "")

		assert.NoError(t, err)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{})

		for _, amount := range []int64{0, -100} {
			_, err := svc.SubmitWithdrawal(context.Background(), member, "acct-1", amount, dest, "")
			assert.ErrorIs(t, err, ErrInvalidAmount)
		}
		mockStore.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Destination", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{})

		_, err := svc.SubmitWithdrawal(context.Background(), member, "acct-1", 2500, models.Destination{SortCode: "12-34-56"}, "")

		assert.ErrorIs(t, err, ErrInvalidDestination)
		mockStore.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
	})

	t.Run("Inactive Account", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{})

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(inactiveAccount, nil)

		_, err := svc.SubmitWithdrawal(context.Background(), member, "acct-1", 2500, dest, "")

		assert.ErrorIs(t, err, ErrAccountInactive)
		mockStore.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything)
	})

	t.Run("Overdraft Allowed By Default", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{})

		created := &models.Transaction{Id: "tx-1", AccountId: "acct-1", Status: models.PENDING}
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(activeAccount, nil)
		mockStore.On("AppendTransaction", mock.Anything, mock.Anything).Return(created, nil)

		// No balance lookup happens when the policy is off.
		_, err := svc.SubmitWithdrawal(context.Background(), member, "acct-1", 1_000_000, dest, "")

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "ListTransactionsByAccount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Overdraft Rejected When Policy Enabled", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{RejectOverdraft: true})

		approved := []models.Transaction{
			{Id: "tx-c", AccountId: "acct-1", Type: models.CREDIT, Amount: 10000, Status: models.APPROVED},
		}
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(activeAccount, nil)
		mockStore.On("ListTransactionsByAccount", mock.Anything, "acct-1", mock.Anything).Return(approved, nil)

		_, err := svc.SubmitWithdrawal(context.Background(), member, "acct-1", 10001, dest, "")

		assert.ErrorIs(t, err, ErrInsufficientFunds)
		mockStore.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything)
	})

	t.Run("Withdrawal Up To Balance Passes Policy", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{RejectOverdraft: true})

		approved := []models.Transaction{
			{Id: "tx-c", AccountId: "acct-1", Type: models.CREDIT, Amount: 10000, Status: models.APPROVED},
		}
		created := &models.Transaction{Id: "tx-1", AccountId: "acct-1", Status: models.PENDING}
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(activeAccount, nil)
		mockStore.On("ListTransactionsByAccount", mock.Anything, "acct-1", mock.Anything).Return(approved, nil)
		mockStore.On("AppendTransaction", mock.Anything, mock.Anything).Return(created, nil)

		_, err := svc.SubmitWithdrawal(context.Background(), member, "acct-1", 10000, dest, "")

		assert.NoError(t, err)
	})

	t.Run("Notification Failure Does Not Fail Submission", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockNotifier := new(qmocks.Notifier)
		svc := NewService(mockStore, mockNotifier, nil, Policy{})

		created := &models.Transaction{Id: "tx-1", AccountId: "acct-1", Status: models.PENDING}
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(activeAccount, nil)
		mockStore.On("AppendTransaction", mock.Anything, mock.Anything).Return(created, nil)
		mockNotifier.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("queue down"))

		result, err := svc.SubmitWithdrawal(context.Background(), member, "acct-1", 2500, dest, "")

		assert.NoError(t, err)
		assert.Equal(t, "tx-1", result.Id)
	})

	t.Run("Custom Description Preserved", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{})

		created := &models.Transaction{Id: "tx-1", AccountId: "acct-1", Status: models.PENDING}
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(activeAccount, nil)
		mockStore.On("AppendTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Description == "Rent"
		})).Return(created, nil)

		_, err := svc.SubmitWithdrawal(context.Background(), member, "acct-1", 2500, dest, "Rent")

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})
}

func TestIssueCredit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockNotifier := new(qmocks.Notifier)
		svc := NewService(mockStore, mockNotifier, nil, Policy{})

		created := &models.Transaction{Id: "tx-1", AccountId: "acct-1", Type: models.CREDIT, Amount: 10000, Status: models.PENDING}
		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(activeAccount, nil)
		mockStore.On("AppendTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.CREDIT && tx.Description == "Credit" && tx.Destination == nil
		})).Return(created, nil)
		mockNotifier.On("Enqueue", mock.Anything, mock.Anything).Return(nil)

		result, err := svc.IssueCredit(context.Background(), admin, "acct-1", 10000, "")

		assert.NoError(t, err)
		assert.Equal(t, models.PENDING, result.Status)
		mockStore.AssertExpectations(t)
	})

	t.Run("Forbidden For Members", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{})

		_, err := svc.IssueCredit(context.Background(), member, "acct-1", 10000, "")

		assert.ErrorIs(t, err, identity.ErrForbidden)
		mockStore.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{})

		_, err := svc.IssueCredit(context.Background(), admin, "acct-1", 0, "")

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		svc := NewService(mockStore, nil, nil, Policy{})

		mockStore.On("GetAccount", mock.Anything, "acct-missing").Return(nil, storage.ErrAccountNotFound)

		_, err := svc.IssueCredit(context.Background(), admin, "acct-missing", 10000, "")

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})
}
