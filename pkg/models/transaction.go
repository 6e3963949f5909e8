package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDecode reports a raw API record that is missing a required field.
var ErrDecode = errors.New("malformed transaction record")

// Flow is the direction of a transaction relative to the account.
type Flow string

const (
	FlowInbound  Flow = "INBOUND"
	FlowOutbound Flow = "OUTBOUND"
)

// Status is the lifecycle state of a transaction. Only posted transactions
// are exported.
type Status string

const (
	StatusPosted  Status = "POSTED"
	StatusPending Status = "PENDING"
)

// Visibility marks transactions the card app hides from the user, such as
// card-verification charges. Only visible transactions are exported.
type Visibility string

const (
	VisibilityVisible Visibility = "VISIBLE"
	VisibilityHidden  Visibility = "HIDDEN"
)

// Transaction is a single credit card transaction in canonical form.
type Transaction struct {
	ID         string
	Timestamp  time.Time
	Amount     decimal.Decimal
	Flow       Flow
	Status     Status
	Visibility Visibility
	Merchant   string
}

// MerchantDetails is the nested merchant object on a raw API record.
type MerchantDetails struct {
	MerchantName string `json:"merchantName"`
	LogoURL      string `json:"logoUrl"`
}

// RawTransaction mirrors one item of the transaction search response.
// Required fields are pointers so a missing field is distinguishable from a
// zero value.
type RawTransaction struct {
	ID              string           `json:"id"`
	AmountMicro     *int64           `json:"amountMicro"`
	Flow            string           `json:"flow"`
	Status          string           `json:"transactionStatus"`
	TransactionAt   *int64           `json:"transactionAt"`
	Visibility      string           `json:"visibility"`
	MerchantDetails *MerchantDetails `json:"merchantDetails"`
}

// NewTransaction converts a raw API record into a canonical Transaction.
//
// The amount is decoded from the micro-unit integer (value × 10⁻⁶) into an
// exact decimal, and the timestamp from epoch milliseconds. The amount keeps
// the sign the API gave it; direction is carried by Flow and applied at
// export time.
func NewTransaction(raw RawTransaction) (Transaction, error) {
	switch {
	case raw.ID == "":
		return Transaction{}, fmt.Errorf("%w: missing id", ErrDecode)
	case raw.AmountMicro == nil:
		return Transaction{}, fmt.Errorf("%w: missing amountMicro (id %s)", ErrDecode, raw.ID)
	case raw.TransactionAt == nil:
		return Transaction{}, fmt.Errorf("%w: missing transactionAt (id %s)", ErrDecode, raw.ID)
	case raw.MerchantDetails == nil:
		return Transaction{}, fmt.Errorf("%w: missing merchantDetails (id %s)", ErrDecode, raw.ID)
	}

	return Transaction{
		ID:         raw.ID,
		Timestamp:  time.UnixMilli(*raw.TransactionAt),
		Amount:     decimal.New(*raw.AmountMicro, -6),
		Flow:       Flow(raw.Flow),
		Status:     Status(raw.Status),
		Visibility: Visibility(raw.Visibility),
		Merchant:   raw.MerchantDetails.MerchantName,
	}, nil
}

// SignedAmount returns the amount negated for outbound transactions.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Flow == FlowOutbound {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Exportable reports whether the transaction should appear in the export
// file: it must be visible and posted.
func (t Transaction) Exportable() bool {
	return t.Visibility == VisibilityVisible && t.Status == StatusPosted
}
