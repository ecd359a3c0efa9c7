package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/warbee0712/lunajoy/models"
)

const defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier checks a Google ID token against the tokeninfo endpoint.
// TokenInfoURL is overridable for tests.
type GoogleVerifier struct {
	ClientID     string
	TokenInfoURL string
	HTTPClient   *http.Client
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		ClientID:     clientID,
		TokenInfoURL: defaultTokenInfoURL,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// GoogleIdentity is the verified subject a valid ID token resolves to.
type GoogleIdentity struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

type tokenInfoResponse struct {
	Sub     string `json:"sub"`
	Aud     string `json:"aud"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Exp     string `json:"exp"` // unix seconds, as a string
}

// Verify resolves rawToken to a Google identity. Any verification failure,
// including a mismatched audience or an expired token, is reported as
// models.ErrInvalidCredential.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	endpoint := v.TokenInfoURL + "?id_token=" + url.QueryEscape(rawToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create tokeninfo request: %w", err)
	}

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tokeninfo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, models.ErrInvalidCredential
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("parse tokeninfo response: %w", err)
	}

	if info.Sub == "" || info.Aud != v.ClientID {
		return nil, models.ErrInvalidCredential
	}
	if exp, err := strconv.ParseInt(info.Exp, 10, 64); err != nil || time.Now().Unix() >= exp {
		return nil, models.ErrInvalidCredential
	}

	return &GoogleIdentity{
		Sub:     info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
