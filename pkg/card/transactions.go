package card

import (
	"context"
	"fmt"
	"time"

	"github.com/markberger/rh-cc-exporter/pkg/models"
)

const transactionListQuery = `
	query TransactionListQuery(
		$q: TransactionSearchRequest!
	) {
		transactionSearch(q: $q) {
			items {
				id
				amountMicro
				originalAmountMicro
				flow
				transactionStatus
				redemptionStatus
				transactionType
				transactionAt
				visibility
				merchantDetails {
					merchantName
					logoUrl
				}
				pointEarnings
				pointMultiplier
				links {
					paymentId
					creditCustomer {
						id
						creditCustomerId
						name {
							id
							firstName
							lastName
						}
					}
				}
				disputeDetails {
					eligibility
				}
			}
			cursor
		}
	}
`

type filterList struct {
	Values []string `json:"values"`
}

type sortDetails struct {
	Field     string `json:"field"`
	Ascending bool   `json:"ascending"`
}

type searchRequest struct {
	CreditCustomerID string      `json:"creditCustomerId"`
	Filters          filterList  `json:"filters"`
	SortDetails      sortDetails `json:"sortDetails"`
	Limit            int         `json:"limit"`
	Cursor           string      `json:"cursor,omitempty"`
}

type searchVariables struct {
	Q searchRequest `json:"q"`
}

type searchResponse struct {
	Data struct {
		TransactionSearch struct {
			Items  []models.RawTransaction `json:"items"`
			Cursor string                  `json:"cursor"`
		} `json:"transactionSearch"`
	} `json:"data"`
}

// Transactions walks the paginated transaction search, newest first, and
// returns every transaction dated on or after cutoff.
//
// The loop is bounded: it stops on the first item dated strictly before
// cutoff (dropping that item and the rest of its page), on an empty page, on
// a missing cursor, or on a cursor the server already returned. The mid-page
// early exit trusts the requested TIME-descending sort; an out-of-order page
// is logged but handled no differently, so items after the cutoff item in
// the same page are dropped even if individually eligible.
func (c *Client) Transactions(ctx context.Context, token, customerID string, cutoff time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	cursor := ""

	for {
		items, next, err := c.searchPage(ctx, token, customerID, cursor)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("fetched page", "items", len(items), "cursor", next)

		var prev time.Time
		for _, raw := range items {
			tx, err := models.NewTransaction(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTransactionSearch, err)
			}

			if !prev.IsZero() && tx.Timestamp.After(prev) {
				c.logger.Warn("page not sorted descending by time; transactions past the cutoff item may be dropped",
					"id", tx.ID)
			}
			prev = tx.Timestamp

			if dateBefore(tx.Timestamp, cutoff) {
				return transactions, nil
			}
			transactions = append(transactions, tx)
		}

		if len(items) == 0 || next == "" || next == cursor {
			return transactions, nil
		}
		cursor = next
	}
}

func (c *Client) searchPage(ctx context.Context, token, customerID, cursor string) ([]models.RawTransaction, string, error) {
	vars := searchVariables{
		Q: searchRequest{
			CreditCustomerID: customerID,
			Filters:          filterList{Values: []string{}},
			SortDetails:      sortDetails{Field: "TIME", Ascending: false},
			Limit:            c.config.PageSize,
			Cursor:           cursor,
		},
	}

	var out searchResponse
	status, err := c.graphql(ctx, token, "TransactionListQuery", transactionListQuery, vars, &out)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrTransactionSearch, err)
	}
	if status != 200 {
		return nil, "", fmt.Errorf("%w: status %d", ErrTransactionSearch, status)
	}

	return out.Data.TransactionSearch.Items, out.Data.TransactionSearch.Cursor, nil
}

// dateBefore reports whether t falls on an earlier calendar day than cutoff,
// each in its own location. Time of day is ignored: a transaction late on
// the cutoff date is still included.
func dateBefore(t, cutoff time.Time) bool {
	ty, tm, td := t.Date()
	cy, cm, cd := cutoff.Date()
	if ty != cy {
		return ty < cy
	}
	if tm != cm {
		return tm < cm
	}
	return td < cd
}
