package card

import (
	"context"
	"fmt"
)

const criticalDataLoaderQuery = `
	query CriticalDataLoaderQuery {
		authIdentity {
			id
			rhUserId
			roles
			creditCustomers {
				id
				capabilities {
					feature
					scope
					mode
				}
				account {
					id
				}
				displayPrimaryCard {
					id
				}
				externalPrimaryCard {
					id
				}
				rhAppContext {
					id
					customerStatuses
				}
			}
			settings {
				id
				colorScheme
				authConditions
			}
		}
	}
`

type customerResponse struct {
	Data struct {
		AuthIdentity struct {
			CreditCustomers []struct {
				ID string `json:"id"`
			} `json:"creditCustomers"`
		} `json:"authIdentity"`
	} `json:"data"`
}

// CustomerID looks up the credit customer tied to the bearer token. This is
// a single-account tool: only the first customer entry is used, and an empty
// list is an ErrCustomerLookup.
func (c *Client) CustomerID(ctx context.Context, token string) (string, error) {
	var out customerResponse
	status, err := c.graphql(ctx, token, "CriticalDataLoaderQuery", criticalDataLoaderQuery, struct{}{}, &out)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCustomerLookup, err)
	}
	if status != 200 {
		return "", fmt.Errorf("%w: status %d", ErrCustomerLookup, status)
	}

	customers := out.Data.AuthIdentity.CreditCustomers
	if len(customers) == 0 {
		return "", fmt.Errorf("%w: no credit customers on this identity", ErrCustomerLookup)
	}

	c.logger.Debug("resolved credit customer", "id", customers[0].ID)
	return customers[0].ID, nil
}
