package dto

import "wallet-topup-service/internal/core/domain"

// TopupResultResponse is the webhook's 200 body. Both lists echo the
// original wire entries and are always present, empty batches included.
// "successfull" keeps the provider's spelling; consumers match on it.
type TopupResultResponse struct {
	SuccessfullTransactions []domain.TopupNotification `json:"successfull_transactions"`
	FailedTransactions      []domain.TopupNotification `json:"failed_transactions"`
}

// TransactionListResponse is one page of a user's transaction log.
// LastEvaluatedKey is the opaque cursor for the next page; absent on a page
// known to be the last.
type TransactionListResponse struct {
	Items            []domain.Transaction `json:"items"`
	LastEvaluatedKey string               `json:"lastEvaluatedKey,omitempty"`
}

// TokenResponse carries a freshly minted read token.
type TokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"`
}
