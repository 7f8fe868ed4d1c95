package domain

// Wallet is the per-user running balance record. There is at most one wallet
// per userId; it is created lazily by the first successful top-up and never
// deleted.
type Wallet struct {
	UserID        string `json:"userId"`
	UserName      string `json:"userName"`
	WalletBalance int64  `json:"walletBalance"` // minor units (cents)
	CreatedAt     string `json:"createdAt"`     // ISO-8601, carried from the notification
	UpdatedAt     string `json:"updatedAt"`
}
