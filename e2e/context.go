package e2e

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	authmodels "github.com/thientu9562/identity-management/internal/auth/models"
	idmodels "github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/internal/oracle"
	"github.com/thientu9562/identity-management/pkg/domain"
)

// Defaults match a server started with ORACLE_DEV_MODE=true and
// ADMIN_ADDRESS set to the address of the "admin" wallet.
const (
	defaultBaseURL   = "http://localhost:8080"
	defaultCipherKey = "identity-management-dev-cipher-key"
	adminWallet      = "admin"
)

// TestContext carries HTTP state and named wallets across the steps of one
// scenario.
type TestContext struct {
	BaseURL  string
	client   *http.Client
	cipher   *oracle.DevCipher
	wallets  map[string]*ecdsa.PrivateKey
	tokens   map[string]string
	lastResp *http.Response
	lastBody []byte
	saved    map[string]string
}

func NewTestContext() (*TestContext, error) {
	cipher, err := oracle.NewDevCipher([]byte(envOr("E2E_CIPHER_KEY", defaultCipherKey)))
	if err != nil {
		return nil, err
	}
	return &TestContext{
		BaseURL: envOr("E2E_BASE_URL", defaultBaseURL),
		client:  &http.Client{Timeout: 10 * time.Second},
		cipher:  cipher,
		wallets: make(map[string]*ecdsa.PrivateKey),
		tokens:  make(map[string]string),
		saved:   make(map[string]string),
	}, nil
}

// Reset clears per-scenario state. Wallet keys are deterministic so they are
// kept.
func (tc *TestContext) Reset() {
	tc.tokens = make(map[string]string)
	tc.saved = make(map[string]string)
	tc.lastResp = nil
	tc.lastBody = nil
}

// wallet derives a stable key from the wallet name. The admin key may be
// overridden with E2E_ADMIN_KEY.
func (tc *TestContext) wallet(name string) (*ecdsa.PrivateKey, error) {
	if key, ok := tc.wallets[name]; ok {
		return key, nil
	}
	var (
		key *ecdsa.PrivateKey
		err error
	)
	if raw := os.Getenv("E2E_ADMIN_KEY"); name == adminWallet && raw != "" {
		key, err = gethcrypto.HexToECDSA(strings.TrimPrefix(raw, "0x"))
	} else {
		key, err = gethcrypto.ToECDSA(gethcrypto.Keccak256([]byte("e2e wallet " + name)))
	}
	if err != nil {
		return nil, fmt.Errorf("wallet %s: %w", name, err)
	}
	tc.wallets[name] = key
	return key, nil
}

func (tc *TestContext) Address(name string) (domain.Address, error) {
	key, err := tc.wallet(name)
	if err != nil {
		return domain.Address{}, err
	}
	return domain.Address(gethcrypto.PubkeyToAddress(key.PublicKey)), nil
}

// Login signs a fresh login message for the wallet and stores its token.
func (tc *TestContext) Login(ctx context.Context, name string) error {
	key, err := tc.wallet(name)
	if err != nil {
		return err
	}
	addr := domain.Address(gethcrypto.PubkeyToAddress(key.PublicKey))
	message := authmodels.NewLoginMessage(addr, time.Now()).String()
	sig, err := gethcrypto.Sign(accounts.TextHash([]byte(message)), key)
	if err != nil {
		return err
	}
	sig[64] += 27

	body := map[string]any{
		"address":   addr.String(),
		"message":   message,
		"signature": hexutil.Encode(sig),
	}
	if err := tc.POST(ctx, "", "/auth/token", body); err != nil {
		return err
	}
	if tc.lastResp.StatusCode != http.StatusOK {
		return fmt.Errorf("login %s: status %d: %s", name, tc.lastResp.StatusCode, tc.lastBody)
	}
	token, err := tc.GetResponseField("access_token")
	if err != nil {
		return err
	}
	tc.tokens[name] = token.(string)
	return nil
}

// EncryptedIdentity builds a registration body with development ciphertexts.
// Input proofs are placeholders; the server must run without an input
// verifier.
func (tc *TestContext) EncryptedIdentity(age uint64, country domain.CountryCode) (map[string]any, error) {
	values := map[idmodels.AttributeKind]uint64{
		idmodels.AttributeAge:          age,
		idmodels.AttributeIsStudent:    0,
		idmodels.AttributePassportHash: 0xbeef,
		idmodels.AttributeCity:         1,
		idmodels.AttributeCountryCode:  uint64(country),
	}
	fields := map[idmodels.AttributeKind]string{
		idmodels.AttributeAge:          "age",
		idmodels.AttributeIsStudent:    "is_student",
		idmodels.AttributePassportHash: "passport_hash",
		idmodels.AttributeCity:         "city",
		idmodels.AttributeCountryCode:  "country_code",
	}
	body := make(map[string]any, len(fields))
	for _, kind := range idmodels.Kinds() {
		h, err := tc.cipher.Encrypt(kind.ExpectedType(), values[kind])
		if err != nil {
			return nil, err
		}
		body[fields[kind]] = map[string]string{"handle": h.String(), "proof": "0x01"}
	}
	return body, nil
}

// POST sends body as JSON. An empty wallet name sends no token.
func (tc *TestContext) POST(ctx context.Context, wallet, path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req, wallet)
}

func (tc *TestContext) GET(ctx context.Context, wallet, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return tc.do(req, wallet)
}

func (tc *TestContext) do(req *http.Request, wallet string) error {
	if wallet != "" {
		token, ok := tc.tokens[wallet]
		if !ok {
			return fmt.Errorf("wallet %s is not logged in", wallet)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastResp = resp
	tc.lastBody = body
	return nil
}

func (tc *TestContext) StatusCode() int {
	if tc.lastResp == nil {
		return 0
	}
	return tc.lastResp.StatusCode
}

func (tc *TestContext) Body() []byte { return tc.lastBody }

// GetResponseField reads a top-level field of the last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var data map[string]any
	if err := json.Unmarshal(tc.lastBody, &data); err != nil {
		return nil, fmt.Errorf("decode response: %w: %s", err, tc.lastBody)
	}
	v, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in response: %s", field, tc.lastBody)
	}
	return v, nil
}

func (tc *TestContext) Save(key, value string) { tc.saved[key] = value }

func (tc *TestContext) Saved(key string) (string, error) {
	v, ok := tc.saved[key]
	if !ok {
		return "", fmt.Errorf("nothing saved as %q", key)
	}
	return v, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
