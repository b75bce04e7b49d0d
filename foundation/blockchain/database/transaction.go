package database

import (
	"errors"
	"math"
)

// NetworkAccount is the sender recorded on transactions the network itself
// issues, such as mining rewards and faucet grants.
const NetworkAccount = "0"

// Tx represents a transfer of tokens between two opaque addresses. There is
// no identity field, so two identical transfers are distinct entries, and no
// signature, since proof of work is the only admission control.
//
// The field order matches the sorted key order of the wire format. Hashing
// depends on this ordering, do not rearrange the fields.
type Tx struct {
	Amount    uint64 `json:"amount"`
	Recipient string `json:"recipient"`
	Sender    string `json:"sender"`
}

// NewTx constructs a transaction, rejecting malformed input before it can
// enter the pending pool. Balances are signed 64-bit values, so amounts
// above MaxInt64 are rejected here to keep every balance delta
// representable. Balances themselves are not checked, enforcement is the
// caller's responsibility.
func NewTx(sender string, recipient string, amount uint64) (Tx, error) {
	if sender == "" {
		return Tx{}, errors.New("transaction requires a sender")
	}
	if recipient == "" {
		return Tx{}, errors.New("transaction requires a recipient")
	}
	if amount > math.MaxInt64 {
		return Tx{}, errors.New("transaction amount exceeds the representable balance range")
	}

	return Tx{
		Amount:    amount,
		Recipient: recipient,
		Sender:    sender,
	}, nil
}
