package domain

// Closed enumerations accepted on the webhook. The payment provider only
// notifies NPP pay-in deposits in AUD today; widening any of these is a
// schema change, not a code path.
const (
	TransactionTypeDeposit = "deposit"
	TypeMethodNPPPayin     = "npp_payin"
	StateSuccessful        = "successful"
	StateFailed            = "failed"
	CurrencyAUD            = "AUD"
	DebitCreditCredit      = "credit"
)

// MaxBatchSize is the provider-side cap on entries per notification. The
// orchestrator relies on this bound to process batches sequentially.
const MaxBatchSize = 10

// TopupNotification is one validated entry of a webhook batch. Field names
// follow the provider's wire format; result lists echo these objects back
// verbatim.
type TopupNotification struct {
	ID          string `json:"id" validate:"required"`
	CreatedAt   string `json:"created_at" validate:"required"`
	UpdatedAt   string `json:"updated_at" validate:"required"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=deposit"`
	TypeMethod  string `json:"type_method" validate:"required,oneof=npp_payin"`
	State       string `json:"state" validate:"required,oneof=successful failed"`
	UserID      string `json:"user_id" validate:"required"`
	UserName    string `json:"user_name" validate:"required"`
	Amount      string `json:"amount" validate:"required,topup_amount"`
	Currency    string `json:"currency" validate:"required,oneof=AUD"`
	DebitCredit string `json:"debit_credit" validate:"required,oneof=credit"`
}

// IsSuccessful reports whether the notified event should move the balance.
// Failed events are still logged, they just leave the wallet untouched.
func (n *TopupNotification) IsSuccessful() bool {
	return n.State == StateSuccessful
}

// TopupBatch is the webhook request body.
type TopupBatch struct {
	Transactions []TopupNotification `json:"transactions" validate:"max=10,dive"`
}

// Transaction is the stored, append-only ledger record. Once durably written
// it is never mutated or deleted; later notifications with the same id must
// not overwrite it.
type Transaction struct {
	UserID        string `json:"userId"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"` // minor units (cents)
	Description   string `json:"description"`
	Type          string `json:"type"`
	TypeMethod    string `json:"typeMethod"`
	State         string `json:"state"`
	Currency      string `json:"currency"`
	DebitCredit   string `json:"debitCredit"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}
