package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"wallet-topup-service/internal/core/domain"
	"wallet-topup-service/internal/core/ports"
	"wallet-topup-service/pkg/apperror"

	goredis "github.com/redis/go-redis/v9"
)

// LedgerRepo implements ports.WalletRepository on a single partitioned
// keyspace, mirroring the provider-side single-table layout:
//
//	partition key  USER#{userId}
//	wallet item    sort key WALLET#{userId}        (hash)
//	transaction    sort key TRANSACTION#{id}#CREATED_AT#{createdAt} (JSON string)
//
// A per-partition sorted set indexes the transaction sort keys (score 0) so
// a lexicographic range yields the chronological log in either direction.
// Both write paths run as Lua scripts: the duplicate-id precondition, the
// record write and the balance move commit or fail as one unit, and the
// balance moves by a server-side increment, so concurrent deliveries for the
// same user can never lose an update.
type LedgerRepo struct {
	client          *goredis.Client
	defaultPageSize int
}

// NewLedgerRepo creates a LedgerRepo. pageSize is the listing default when a
// query does not set its own limit.
func NewLedgerRepo(client *goredis.Client, pageSize int) *LedgerRepo {
	if pageSize <= 0 {
		pageSize = 1
	}
	return &LedgerRepo{client: client, defaultPageSize: pageSize}
}

const (
	walletField        = "walletBalance"
	txSortKeyPrefix    = "TRANSACTION#"
	walletSortKeyWord  = "WALLET#"
	partitionKeyPrefix = "USER#"
)

func partitionKey(userID string) string {
	return partitionKeyPrefix + userID
}

func walletSortKey(userID string) string {
	return walletSortKeyWord + userID
}

func txSortKey(transactionID, createdAt string) string {
	return txSortKeyPrefix + transactionID + "#CREATED_AT#" + createdAt
}

// itemKey joins partition and sort key into one Redis key.
func itemKey(pk, sk string) string {
	return pk + "/" + sk
}

// indexKey holds the sorted set of transaction sort keys for one partition.
// The "_" prefix keeps it outside the sort-key namespace.
func indexKey(pk string) string {
	return pk + "/_index"
}

// Script return codes, following the applied/idempotent convention:
// 1 = applied, 0 = a record with this id already exists.
const (
	scriptAlreadyApplied = 0
	scriptApplied        = 1
)

// createScript writes the transaction record guarded by the duplicate-id
// precondition and, for a successful entry, creates the wallet with the
// entry amount as opening balance. If another request created the wallet
// first, the script degrades to the increment path inside the same atomic
// execution, closing the create/append race.
var createScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[2]) == 1 then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2])
redis.call('ZADD', KEYS[3], 0, ARGV[1])
if ARGV[3] == 'successful' then
  if redis.call('EXISTS', KEYS[1]) == 1 then
    redis.call('HINCRBY', KEYS[1], 'walletBalance', ARGV[4])
    redis.call('HSET', KEYS[1], 'updatedAt', ARGV[8])
  else
    redis.call('HSET', KEYS[1],
      'userId', ARGV[5],
      'userName', ARGV[6],
      'walletBalance', ARGV[4],
      'createdAt', ARGV[7],
      'updatedAt', ARGV[8])
  end
end
return 1
`)

// recordScript appends the transaction record guarded by the duplicate-id
// precondition and, for a successful entry, moves the balance with a single
// server-side increment. There is no read of the previous balance anywhere.
var recordScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[2]) == 1 then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2])
redis.call('ZADD', KEYS[3], 0, ARGV[1])
if ARGV[3] == 'successful' then
  redis.call('HINCRBY', KEYS[1], 'walletBalance', ARGV[4])
  redis.call('HSET', KEYS[1], 'updatedAt', ARGV[8])
end
return 1
`)

// GetWallet returns the user's wallet, or nil when none exists.
func (r *LedgerRepo) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	pk := partitionKey(userID)
	fields, err := r.client.HGetAll(ctx, itemKey(pk, walletSortKey(userID))).Result()
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("wallet read: %w", err))
	}
	if len(fields) == 0 {
		return nil, nil
	}

	balance, err := strconv.ParseInt(fields[walletField], 10, 64)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("corrupt wallet balance for %s: %w", userID, err))
	}

	return &domain.Wallet{
		UserID:        fields["userId"],
		UserName:      fields["userName"],
		WalletBalance: balance,
		CreatedAt:     fields["createdAt"],
		UpdatedAt:     fields["updatedAt"],
	}, nil
}

// CreateWalletAndTransaction atomically writes the first transaction for a
// user and, when it is successful, the wallet itself. A failed first event
// only logs the transaction; no zero-balance wallet is pre-created.
func (r *LedgerRepo) CreateWalletAndTransaction(ctx context.Context, n *domain.TopupNotification) (domain.ApplyOutcome, error) {
	return r.apply(ctx, createScript, n)
}

// RecordTransaction atomically appends a transaction for a user whose wallet
// already exists and, when it is successful, increments the balance.
// Wallets are never deleted, so a wallet observed by the caller is still
// there when the script runs.
func (r *LedgerRepo) RecordTransaction(ctx context.Context, n *domain.TopupNotification) (domain.ApplyOutcome, error) {
	return r.apply(ctx, recordScript, n)
}

func (r *LedgerRepo) apply(ctx context.Context, script *goredis.Script, n *domain.TopupNotification) (domain.ApplyOutcome, error) {
	cents, err := domain.ToMinorUnits(n.Amount)
	if err != nil {
		return domain.OutcomeRejected, apperror.ErrAmountInvalid(n.Amount)
	}

	sk := txSortKey(n.ID, n.CreatedAt)
	record := domain.Transaction{
		UserID:        n.UserID,
		TransactionID: n.ID,
		Amount:        cents,
		Description:   n.Description,
		Type:          n.Type,
		TypeMethod:    n.TypeMethod,
		State:         n.State,
		Currency:      n.Currency,
		DebitCredit:   n.DebitCredit,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return domain.OutcomeRejected, apperror.InternalError(fmt.Errorf("marshal transaction: %w", err))
	}

	pk := partitionKey(n.UserID)
	keys := []string{
		itemKey(pk, walletSortKey(n.UserID)),
		itemKey(pk, sk),
		indexKey(pk),
	}
	argv := []interface{}{
		sk,                 // ARGV[1] sort key for the index
		string(recordJSON), // ARGV[2] record body
		n.State,            // ARGV[3]
		cents,              // ARGV[4]
		n.UserID,           // ARGV[5]
		n.UserName,         // ARGV[6]
		n.CreatedAt,        // ARGV[7]
		n.UpdatedAt,        // ARGV[8]
	}

	code, err := script.Run(ctx, r.client, keys, argv...).Int64()
	if err != nil {
		return domain.OutcomeRejected, apperror.ErrStorageUnavailable(fmt.Errorf("ledger write: %w", err))
	}

	if code == scriptAlreadyApplied {
		return domain.OutcomeAlreadyApplied, nil
	}
	return domain.OutcomeApplied, nil
}

// ListTransactions pages through one user's transaction log in sort-key
// order. The cursor points at the last item of the previous page; a full
// page always carries a cursor, so the final call may return an empty page.
func (r *LedgerRepo) ListTransactions(ctx context.Context, q ports.TransactionListQuery) (*ports.TransactionPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = r.defaultPageSize
	}

	pk := partitionKey(q.UserID)

	// Lex bounds covering exactly the TRANSACTION# prefix.
	min := "[" + txSortKeyPrefix
	max := "[" + txSortKeyPrefix + "\xff"

	if q.Cursor != "" {
		key, err := DecodeCursor(q.Cursor)
		if err != nil {
			return nil, apperror.ErrInvalidRequest()
		}
		// Resume exclusively after the last seen sort key.
		if q.Sort == "desc" {
			max = "(" + key.SK
		} else {
			min = "(" + key.SK
		}
	}

	rangeBy := &goredis.ZRangeBy{Min: min, Max: max, Offset: 0, Count: int64(limit)}

	var sortKeys []string
	var err error
	if q.Sort == "desc" {
		sortKeys, err = r.client.ZRevRangeByLex(ctx, indexKey(pk), rangeBy).Result()
	} else {
		sortKeys, err = r.client.ZRangeByLex(ctx, indexKey(pk), rangeBy).Result()
	}
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("transaction index scan: %w", err))
	}

	page := &ports.TransactionPage{Items: []domain.Transaction{}}
	if len(sortKeys) == 0 {
		return page, nil
	}

	recordKeys := make([]string, len(sortKeys))
	for i, sk := range sortKeys {
		recordKeys[i] = itemKey(pk, sk)
	}

	values, err := r.client.MGet(ctx, recordKeys...).Result()
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("transaction read: %w", err))
	}

	for _, value := range values {
		body, ok := value.(string)
		if !ok {
			continue // index entry without a record; nothing to show
		}
		var txn domain.Transaction
		if err := json.Unmarshal([]byte(body), &txn); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("corrupt transaction record: %w", err))
		}
		page.Items = append(page.Items, txn)
	}

	if len(sortKeys) == limit {
		page.LastEvaluatedKey = EncodeCursor(PageKey{PK: pk, SK: sortKeys[len(sortKeys)-1]})
	}

	return page, nil
}
