package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func i64(v int64) *int64 { return &v }

func validRaw() RawTransaction {
	return RawTransaction{
		ID:            "txn-1",
		AmountMicro:   i64(123456789),
		Flow:          "OUTBOUND",
		Status:        "POSTED",
		TransactionAt: i64(1704470400000), // 2024-01-05T16:00:00Z
		Visibility:    "VISIBLE",
		MerchantDetails: &MerchantDetails{
			MerchantName: "Corner Coffee",
			LogoURL:      "https://example.com/logo.png",
		},
	}
}

func TestNewTransaction(t *testing.T) {
	tx, err := NewTransaction(validRaw())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}

	if tx.ID != "txn-1" {
		t.Errorf("Expected id txn-1, got %s", tx.ID)
	}
	if got := tx.Amount.String(); got != "123.456789" {
		t.Errorf("Expected amount 123.456789, got %s", got)
	}
	if tx.Flow != FlowOutbound {
		t.Errorf("Expected flow OUTBOUND, got %s", tx.Flow)
	}
	if tx.Status != StatusPosted {
		t.Errorf("Expected status POSTED, got %s", tx.Status)
	}
	if tx.Visibility != VisibilityVisible {
		t.Errorf("Expected visibility VISIBLE, got %s", tx.Visibility)
	}
	if tx.Merchant != "Corner Coffee" {
		t.Errorf("Expected merchant Corner Coffee, got %s", tx.Merchant)
	}
	if got := tx.Timestamp.UnixMilli(); got != 1704470400000 {
		t.Errorf("Expected timestamp 1704470400000, got %d", got)
	}
}

func TestNewTransactionMissingFields(t *testing.T) {
	cases := map[string]func(*RawTransaction){
		"id":              func(r *RawTransaction) { r.ID = "" },
		"amountMicro":     func(r *RawTransaction) { r.AmountMicro = nil },
		"transactionAt":   func(r *RawTransaction) { r.TransactionAt = nil },
		"merchantDetails": func(r *RawTransaction) { r.MerchantDetails = nil },
	}

	for name, mutate := range cases {
		raw := validRaw()
		mutate(&raw)
		_, err := NewTransaction(raw)
		if err == nil {
			t.Errorf("Expected error for missing %s, got nil", name)
			continue
		}
		if !errors.Is(err, ErrDecode) {
			t.Errorf("Expected ErrDecode for missing %s, got %v", name, err)
		}
	}
}

func TestMicroUnitRoundTrip(t *testing.T) {
	cases := []int64{0, 1, 50000000, 123456789, 999999935, 2500000, -75000000}

	for _, micro := range cases {
		amount := decimal.New(micro, -6)

		if got := amount.Shift(6).IntPart(); got != micro {
			t.Errorf("Shift round trip: expected %d, got %d", micro, got)
		}

		// The string form must carry the exact value too.
		parsed, err := decimal.NewFromString(amount.String())
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", amount.String(), err)
		}
		if got := parsed.Shift(6).IntPart(); got != micro {
			t.Errorf("String round trip of %d: expected %d, got %d (via %s)", micro, micro, got, amount.String())
		}
	}
}

func TestTimestampLossless(t *testing.T) {
	cases := []int64{0, 1704470400000, 1704470400123, 999}

	for _, ms := range cases {
		raw := validRaw()
		raw.TransactionAt = i64(ms)
		tx, err := NewTransaction(raw)
		if err != nil {
			t.Fatalf("NewTransaction failed: %v", err)
		}

		if got := tx.Timestamp.UnixMilli(); got != ms {
			t.Errorf("Expected %d ms, got %d", ms, got)
		}
		if got := tx.Timestamp.Unix(); got != ms/1000 {
			t.Errorf("Expected %d s, got %d", ms/1000, got)
		}
	}
}

func TestSignedAmount(t *testing.T) {
	outbound := Transaction{Amount: decimal.New(50000000, -6), Flow: FlowOutbound}
	if got := outbound.SignedAmount(); !got.Equal(decimal.RequireFromString("-50")) {
		t.Errorf("Expected -50, got %s", got)
	}

	inbound := Transaction{Amount: decimal.New(25000000, -6), Flow: FlowInbound}
	if got := inbound.SignedAmount(); !got.Equal(decimal.RequireFromString("25")) {
		t.Errorf("Expected 25, got %s", got)
	}
}

func TestExportable(t *testing.T) {
	cases := []struct {
		visibility Visibility
		status     Status
		expected   bool
	}{
		{VisibilityVisible, StatusPosted, true},
		{VisibilityHidden, StatusPosted, false},
		{VisibilityVisible, StatusPending, false},
		{VisibilityHidden, StatusPending, false},
	}

	for _, c := range cases {
		tx := Transaction{
			Timestamp:  time.Now(),
			Visibility: c.visibility,
			Status:     c.status,
		}
		if got := tx.Exportable(); got != c.expected {
			t.Errorf("Exportable(%s, %s): expected %v, got %v", c.visibility, c.status, c.expected, got)
		}
	}
}
