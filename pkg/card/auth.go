package card

import (
	"context"
	"fmt"
)

// Credentials are the interactively supplied login secrets.
type Credentials struct {
	Username string
	Password string
	MFACode  string
}

type loginRequest struct {
	ChallengeType string `json:"challenge_type"`
	ClientID      string `json:"client_id"`
	DeviceLabel   string `json:"device_label"`
	DeviceToken   string `json:"device_token"`
	GrantType     string `json:"grant_type"`
	MFACode       string `json:"mfa_code"`
	Password      string `json:"password"`
	Scope         string `json:"scope"`
	Username      string `json:"username"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges the credentials and a freshly generated device token for a
// bearer token. Any non-200 response is an ErrAuth; there is no retry.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	deviceToken, err := c.tokens.DeviceToken()
	if err != nil {
		return "", fmt.Errorf("%w: could not generate device token: %v", ErrAuth, err)
	}

	headers := map[string]string{
		"User-Agent":  c.config.AuthUserAgent,
		"x-x1-client": c.config.AuthClient,
	}
	body := loginRequest{
		ChallengeType: "sms",
		ClientID:      c.config.OAuthClientID,
		DeviceLabel:   c.config.DeviceLabel,
		DeviceToken:   deviceToken,
		GrantType:     "password",
		MFACode:       creds.MFACode,
		Password:      creds.Password,
		Scope:         "credit-card",
		Username:      creds.Username,
	}

	var out loginResponse
	status, err := c.post(ctx, c.config.AuthURL, headers, body, &out)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if status != 200 {
		return "", fmt.Errorf("%w: status %d", ErrAuth, status)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: response carried no access token", ErrAuth)
	}

	c.logger.Debug("authenticated", "device_token", deviceToken)
	return out.AccessToken, nil
}
