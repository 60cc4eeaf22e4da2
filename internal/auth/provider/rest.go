package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RESTClient talks to an identitytoolkit-style account service. The
// base URL and API key are fixed at construction — the emulator
// endpoint in development, the production endpoint otherwise — so
// tests can point a client at an httptest server.
type RESTClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewRESTClient builds a client with a sane default timeout.
func NewRESTClient(baseURL, apiKey string) *RESTClient {
	return &RESTClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *RESTClient) url(op string) string {
	return fmt.Sprintf("%s/v1/accounts:%s?key=%s", c.BaseURL, op, c.APIKey)
}

func (c *RESTClient) CreateAccount(ctx context.Context, acct NewAccount) (Account, error) {
	req := signUpRequest{
		Email:         acct.Email,
		Password:      acct.Password,
		DisplayName:   acct.DisplayName,
		PhotoURL:      acct.PhotoURL,
		EmailVerified: acct.EmailVerified,
		Disabled:      acct.Disabled,
	}

	var resp accountPayload
	if err := c.post(ctx, "signUp", req, &resp); err != nil {
		return Account{}, err
	}
	return resp.account(), nil
}

func (c *RESTClient) UpdateAccount(ctx context.Context, uid string, upd AccountUpdate) error {
	req := updateRequest{
		LocalID:     uid,
		Email:       upd.Email,
		DisplayName: upd.DisplayName,
	}

	// The provider echoes the updated account; nothing in it is
	// consumed beyond confirming the call succeeded.
	var resp accountPayload
	return c.post(ctx, "update", req, &resp)
}

func (c *RESTClient) SignInWithPassword(ctx context.Context, email, password string) (json.RawMessage, error) {
	req := signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}

	var resp json.RawMessage
	if err := c.post(ctx, "signInWithPassword", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) LookupAccount(ctx context.Context, idToken string) (Account, error) {
	req := lookupRequest{IDToken: idToken}

	var resp struct {
		Users []accountPayload `json:"users"`
	}
	if err := c.post(ctx, "lookup", req, &resp); err != nil {
		return Account{}, err
	}
	if len(resp.Users) == 0 {
		return Account{}, &APIError{StatusCode: http.StatusBadRequest, Code: CodeBadIDToken}
	}
	return resp.Users[0].account(), nil
}

// post issues a JSON POST to the named account operation and decodes
// the response into target. Non-2xx responses are parsed into an
// APIError carrying the provider's machine-readable error code.
func (c *RESTClient) post(ctx context.Context, op string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(op), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func parseAPIError(status int, body []byte) error {
	var wire struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error.Message != "" {
		return &APIError{StatusCode: status, Code: wire.Error.Message}
	}
	return &APIError{StatusCode: status, Code: http.StatusText(status)}
}

// Wire shapes. The REST surface names the account id localId; the
// Account type exposed to the rest of the system calls it UID.

type signUpRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	DisplayName   string `json:"displayName,omitempty"`
	PhotoURL      string `json:"photoUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	Disabled      bool   `json:"disabled"`
}

type updateRequest struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type accountPayload struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoUrl"`
	EmailVerified bool   `json:"emailVerified"`
	Disabled      bool   `json:"disabled"`
}

func (p accountPayload) account() Account {
	return Account{
		UID:           p.LocalID,
		Email:         p.Email,
		DisplayName:   p.DisplayName,
		PhotoURL:      p.PhotoURL,
		EmailVerified: p.EmailVerified,
		Disabled:      p.Disabled,
	}
}
