// Package qif renders transactions in the Quicken Interchange Format, the
// plain-text import format most budgeting software still accepts.
package qif

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateFormat = "01/02/2006"

// AccountType selects the QIF ledger header for an account section.
type AccountType string

const (
	Bank       AccountType = "Bank"
	CreditCard AccountType = "CCard"
)

// Account describes the single account section of the export file.
type Account struct {
	Name        string
	Description string
	Type        AccountType
}

// Transaction is one export record: date, signed amount, payee.
type Transaction struct {
	Date   time.Time
	Amount decimal.Decimal
	Payee  string
}

// Create renders one account section followed by one record per
// transaction.
func Create(account Account, transactions []Transaction) []byte {
	var buf bytes.Buffer

	buf.WriteString("!Account\n")
	fmt.Fprintf(&buf, "N%s\n", account.Name)
	if account.Description != "" {
		fmt.Fprintf(&buf, "D%s\n", account.Description)
	}
	fmt.Fprintf(&buf, "T%s\n", account.Type)
	buf.WriteString("^\n")

	fmt.Fprintf(&buf, "!Type:%s\n", account.Type)
	for _, t := range transactions {
		fmt.Fprintf(&buf, "D%s\n", t.Date.Format(dateFormat))
		fmt.Fprintf(&buf, "T%s\n", FormatAmount(t.Amount))
		fmt.Fprintf(&buf, "P%s\n", t.Payee)
		buf.WriteString("^\n")
	}

	return buf.Bytes()
}

// FormatAmount renders an amount with at least two decimal places, keeping
// the full precision when the value does not fit in cents.
func FormatAmount(d decimal.Decimal) string {
	if d.Equal(d.Truncate(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}
