package redis

import (
	"context"
	"fmt"
	"testing"

	"wallet-topup-service/internal/core/domain"
	"wallet-topup-service/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*LedgerRepo, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLedgerRepo(client, 1), client
}

func notification(id, userID, amount, state, createdAt string) *domain.TopupNotification {
	return &domain.TopupNotification{
		ID:          id,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Description: "Deposit from John Doe",
		Type:        domain.TransactionTypeDeposit,
		TypeMethod:  domain.TypeMethodNPPPayin,
		State:       state,
		UserID:      userID,
		UserName:    "John Doe",
		Amount:      amount,
		Currency:    domain.CurrencyAUD,
		DebitCredit: domain.DebitCreditCredit,
	}
}

func TestLedgerRepo_CreateWalletAndTransaction_Successful(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	outcome, err := repo.CreateWalletAndTransaction(ctx, notification("tx-1", "user-1", "4.00", domain.StateSuccessful, "2023-03-01T04:32:26.837Z"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)

	wallet, err := repo.GetWallet(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.Equal(t, "user-1", wallet.UserID)
	assert.Equal(t, "John Doe", wallet.UserName)
	assert.Equal(t, int64(400), wallet.WalletBalance)
	assert.Equal(t, "2023-03-01T04:32:26.837Z", wallet.CreatedAt)
}

func TestLedgerRepo_CreateWalletAndTransaction_FailedStateCreatesNoWallet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	outcome, err := repo.CreateWalletAndTransaction(ctx, notification("tx-1", "user-1", "4.00", domain.StateFailed, "2023-03-01T04:32:26.837Z"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)

	wallet, err := repo.GetWallet(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, wallet)

	page, err := repo.ListTransactions(ctx, ports.TransactionListQuery{UserID: "user-1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "tx-1", page.Items[0].TransactionID)
	assert.Equal(t, domain.StateFailed, page.Items[0].State)
}

func TestLedgerRepo_RecordTransaction_IncrementsBalance(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateWalletAndTransaction(ctx, notification("tx-1", "user-1", "5.11", domain.StateSuccessful, "2023-03-01T04:32:26.837Z"))
	require.NoError(t, err)

	outcome, err := repo.RecordTransaction(ctx, notification("tx-2", "user-1", "4.89", domain.StateSuccessful, "2023-03-01T04:33:26.837Z"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)

	wallet, err := repo.GetWallet(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.Equal(t, int64(1000), wallet.WalletBalance)
	assert.Equal(t, "2023-03-01T04:33:26.837Z", wallet.UpdatedAt)
}

func TestLedgerRepo_RecordTransaction_FailedStateLeavesBalance(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateWalletAndTransaction(ctx, notification("tx-1", "user-1", "5.11", domain.StateSuccessful, "2023-03-01T04:32:26.837Z"))
	require.NoError(t, err)

	outcome, err := repo.RecordTransaction(ctx, notification("tx-2", "user-1", "4.89", domain.StateFailed, "2023-03-01T04:33:26.837Z"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)

	wallet, err := repo.GetWallet(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(511), wallet.WalletBalance)

	page, err := repo.ListTransactions(ctx, ports.TransactionListQuery{UserID: "user-1", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestLedgerRepo_DuplicateTransactionID_AppliesOnce(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	n := notification("tx-1", "user-1", "4.00", domain.StateSuccessful, "2023-03-01T04:32:26.837Z")

	outcome, err := repo.CreateWalletAndTransaction(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)

	// Replay through both write paths; neither may move the balance again.
	outcome, err = repo.CreateWalletAndTransaction(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyApplied, outcome)

	outcome, err = repo.RecordTransaction(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyApplied, outcome)

	wallet, err := repo.GetWallet(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(400), wallet.WalletBalance)

	page, err := repo.ListTransactions(ctx, ports.TransactionListQuery{UserID: "user-1", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestLedgerRepo_CreateRace_DegradesToIncrement(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	// Both callers saw no wallet and chose the create path.
	_, err := repo.CreateWalletAndTransaction(ctx, notification("tx-1", "user-1", "5.11", domain.StateSuccessful, "2023-03-01T04:32:26.837Z"))
	require.NoError(t, err)
	_, err = repo.CreateWalletAndTransaction(ctx, notification("tx-2", "user-1", "4.89", domain.StateSuccessful, "2023-03-01T04:33:26.837Z"))
	require.NoError(t, err)

	wallet, err := repo.GetWallet(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), wallet.WalletBalance)
	assert.Equal(t, "2023-03-01T04:32:26.837Z", wallet.CreatedAt)
}

func TestLedgerRepo_GetWallet_Unknown(t *testing.T) {
	repo, _ := newTestRepo(t)

	wallet, err := repo.GetWallet(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, wallet)
}

func TestLedgerRepo_ListTransactions_Ordering(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateWalletAndTransaction(ctx, notification("tx-a", "user-1", "1.00", domain.StateSuccessful, "2023-03-01T01:00:00.000Z"))
	require.NoError(t, err)
	_, err = repo.RecordTransaction(ctx, notification("tx-b", "user-1", "2.00", domain.StateSuccessful, "2023-03-01T02:00:00.000Z"))
	require.NoError(t, err)
	_, err = repo.RecordTransaction(ctx, notification("tx-c", "user-1", "3.00", domain.StateSuccessful, "2023-03-01T03:00:00.000Z"))
	require.NoError(t, err)

	asc, err := repo.ListTransactions(ctx, ports.TransactionListQuery{UserID: "user-1", Sort: "asc", Limit: 10})
	require.NoError(t, err)
	require.Len(t, asc.Items, 3)
	assert.Equal(t, "tx-a", asc.Items[0].TransactionID)
	assert.Equal(t, "tx-b", asc.Items[1].TransactionID)
	assert.Equal(t, "tx-c", asc.Items[2].TransactionID)

	desc, err := repo.ListTransactions(ctx, ports.TransactionListQuery{UserID: "user-1", Sort: "desc", Limit: 10})
	require.NoError(t, err)
	require.Len(t, desc.Items, 3)
	assert.Equal(t, "tx-c", desc.Items[0].TransactionID)
	assert.Equal(t, "tx-a", desc.Items[2].TransactionID)
}

func TestLedgerRepo_ListTransactions_PaginatesWithCursor(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		n := notification(
			fmt.Sprintf("tx-%d", i),
			"user-1",
			"1.00",
			domain.StateSuccessful,
			fmt.Sprintf("2023-03-01T0%d:00:00.000Z", i),
		)
		var err error
		if i == 0 {
			_, err = repo.CreateWalletAndTransaction(ctx, n)
		} else {
			_, err = repo.RecordTransaction(ctx, n)
		}
		require.NoError(t, err)
	}

	var seen []string
	cursor := ""
	pages := 0
	for {
		page, err := repo.ListTransactions(ctx, ports.TransactionListQuery{UserID: "user-1", Sort: "asc", Cursor: cursor, Limit: 2})
		require.NoError(t, err)
		for _, item := range page.Items {
			seen = append(seen, item.TransactionID)
		}
		pages++
		if page.LastEvaluatedKey == "" {
			break
		}
		cursor = page.LastEvaluatedKey
	}

	assert.Equal(t, []string{"tx-0", "tx-1", "tx-2", "tx-3", "tx-4"}, seen)
	assert.LessOrEqual(t, pages, 4)
}

func TestLedgerRepo_ListTransactions_DefaultPageSize(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateWalletAndTransaction(ctx, notification("tx-a", "user-1", "1.00", domain.StateSuccessful, "2023-03-01T01:00:00.000Z"))
	require.NoError(t, err)
	_, err = repo.RecordTransaction(ctx, notification("tx-b", "user-1", "2.00", domain.StateSuccessful, "2023-03-01T02:00:00.000Z"))
	require.NoError(t, err)

	// Repo default is one item per page.
	page, err := repo.ListTransactions(ctx, ports.TransactionListQuery{UserID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.NotEmpty(t, page.LastEvaluatedKey)
}

func TestLedgerRepo_ListTransactions_EmptyLog(t *testing.T) {
	repo, _ := newTestRepo(t)

	page, err := repo.ListTransactions(context.Background(), ports.TransactionListQuery{UserID: "nobody", Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.LastEvaluatedKey)
}

func TestLedgerRepo_ListTransactions_BadCursor(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.ListTransactions(context.Background(), ports.TransactionListQuery{UserID: "user-1", Cursor: "not-base64!!", Limit: 1})
	assert.Error(t, err)
}

func TestLedgerRepo_StorageDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	repo := NewLedgerRepo(client, 1)
	mr.Close()

	_, err := repo.GetWallet(context.Background(), "user-1")
	assert.Error(t, err)

	_, err = repo.RecordTransaction(context.Background(), notification("tx-1", "user-1", "1.00", domain.StateSuccessful, "2023-03-01T01:00:00.000Z"))
	assert.Error(t, err)

	_, err = repo.ListTransactions(context.Background(), ports.TransactionListQuery{UserID: "user-1", Limit: 1})
	assert.Error(t, err)
}
