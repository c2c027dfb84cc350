package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cofrap/cofrap-cli/internal/logging"
)

const (
	headerContentType = "Content-Type"
	headerRequestID   = "X-Request-Id"
	contentTypeJSON   = "application/json"

	pathGeneratePassword = "/function/generate-password"
	pathEnrollTwoFactor  = "/function/generate-2fa"
	pathAuthenticate     = "/function/authenticate-user"
	pathHealthz          = "/healthz"
)

// HTTPClient talks to the OpenFaaS gateway fronting the identity functions.
type HTTPClient struct {
	gatewayURL string
	httpClient *http.Client
	logger     logging.Logger
}

// NewHTTPClient returns a client bound to gatewayURL. A zero timeout leaves
// the transport defaults in place.
func NewHTTPClient(gatewayURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "api"),
	}
}

// wire DTOs

type usernameRequest struct {
	Username string `json:"username"`
}

type generatePasswordResponse struct {
	Username string `json:"username"`
	Password string `json:"password"`
	QRCode   string `json:"qrcode"`
}

type enrollTwoFactorResponse struct {
	Username string `json:"username"`
	Secret   string `json:"mfa_secret"`
	QRCode   string `json:"qr_code"`
	TOTPURI  string `json:"totp_uri"`
}

type authenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type authenticateResponse struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	HasTwoFactor bool   `json:"has_2fa"`
	LastActivity string `json:"last_activity"`
}

type errorResponse struct {
	Error       string `json:"error"`
	Requires2FA bool   `json:"requires_2fa"`
	Expired     bool   `json:"expired"`
}

// post sends a JSON body to path and decodes a 2xx response into result.
// Non-2xx responses are returned as *APIError with a status-derived kind;
// callers refine operation-specific statuses (404/409) afterwards.
func (c *HTTPClient) post(ctx context.Context, path string, body any, result any) error {
	reqURL, err := url.JoinPath(c.gatewayURL, path)
	if err != nil {
		return fmt.Errorf("building url: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerRequestID, requestID)

	c.logger.Debug(ctx, "calling gateway", "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "gateway unreachable", "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrServer, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseError(resp.StatusCode, respBody)
		c.logger.Info(ctx, "gateway rejected request",
			"path", path, "request_id", requestID, "status", resp.StatusCode)
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrServer, err)
		}
	}
	return nil
}

// parseError decodes the gateway error body and assigns the status-generic
// error kind. 404/409 stay ErrServer here because their meaning depends on
// the operation.
func parseError(status int, body []byte) *APIError {
	var er errorResponse
	_ = json.Unmarshal(body, &er) // a non-JSON body just leaves the message empty

	apiErr := &APIError{
		StatusCode:  status,
		Message:     er.Error,
		Requires2FA: er.Requires2FA,
		Expired:     er.Expired,
		kind:        ErrServer,
	}

	switch status {
	case http.StatusBadRequest:
		if er.Requires2FA {
			apiErr.kind = ErrSecondFactorRequired
		} else {
			apiErr.kind = ErrMissingFields
		}
	case http.StatusUnauthorized:
		apiErr.kind = ErrAuthRejected
	case http.StatusForbidden:
		if er.Expired {
			apiErr.kind = ErrAccountExpired
		} else {
			apiErr.kind = ErrAccessDenied
		}
	}
	return apiErr
}

// refineStatus rewrites the kind of an *APIError with the given status to the
// operation-specific sentinel.
func refineStatus(err error, status int, kind error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == status {
		apiErr.kind = kind
	}
	return err
}

func (c *HTTPClient) GeneratePassword(ctx context.Context, username string) (*PasswordGrant, error) {
	var res generatePasswordResponse
	if err := c.post(ctx, pathGeneratePassword, usernameRequest{Username: username}, &res); err != nil {
		return nil, refineStatus(err, http.StatusConflict, ErrUserExists)
	}

	qr, err := decodeQR(res.QRCode)
	if err != nil {
		return nil, err
	}

	grantUser := res.Username
	if grantUser == "" {
		grantUser = username
	}
	return &PasswordGrant{Username: grantUser, Password: res.Password, QRPNG: qr}, nil
}

func (c *HTTPClient) EnrollTwoFactor(ctx context.Context, username string) (*TwoFactorGrant, error) {
	var res enrollTwoFactorResponse
	if err := c.post(ctx, pathEnrollTwoFactor, usernameRequest{Username: username}, &res); err != nil {
		err = refineStatus(err, http.StatusNotFound, ErrUserNotFound)
		return nil, refineStatus(err, http.StatusConflict, ErrTwoFactorEnabled)
	}

	qr, err := decodeQR(res.QRCode)
	if err != nil {
		return nil, err
	}

	grantUser := res.Username
	if grantUser == "" {
		grantUser = username
	}
	return &TwoFactorGrant{Username: grantUser, Secret: res.Secret, TOTPURI: res.TOTPURI, QRPNG: qr}, nil
}

func (c *HTTPClient) Authenticate(ctx context.Context, username string, password []byte, totpCode string) (*Account, error) {
	req := authenticateRequest{
		Username: username,
		Password: string(password),
		TOTPCode: totpCode,
	}

	var res authenticateResponse
	if err := c.post(ctx, pathAuthenticate, req, &res); err != nil {
		return nil, err
	}

	return &Account{
		UserID:       res.UserID,
		Username:     res.Username,
		HasTwoFactor: res.HasTwoFactor,
		LastActivity: parseLastActivity(res.LastActivity),
	}, nil
}

// Ping probes the gateway health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	reqURL, err := url.JoinPath(c.gatewayURL, pathHealthz)
	if err != nil {
		return fmt.Errorf("building url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: healthz returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func decodeQR(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	qr, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding qr payload: %v", ErrServer, err)
	}
	return qr, nil
}

// lastActivityLayouts covers the timestamp forms the gateway emits: RFC 3339
// and Python isoformat with or without fractional seconds (no zone).
var lastActivityLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseLastActivity(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range lastActivityLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts
		}
	}
	return nil
}
