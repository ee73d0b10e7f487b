// Package models holds the login message format and the issued token shape.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

const (
	loginHeader   = "identity-management login"
	addressPrefix = "address: "
	issuedPrefix  = "issued: "
)

// LoginMessage is the text a caller signs with personal_sign to obtain a token.
type LoginMessage struct {
	Address domain.Address
	Issued  time.Time
}

func NewLoginMessage(addr domain.Address, issued time.Time) LoginMessage {
	return LoginMessage{Address: addr, Issued: issued.Truncate(time.Second)}
}

func (m LoginMessage) String() string {
	return fmt.Sprintf("%s\n%s%s\n%s%d", loginHeader, addressPrefix, m.Address, issuedPrefix, m.Issued.Unix())
}

// ParseLoginMessage accepts exactly the three-line format String produces.
// The address line is compared case-insensitively.
func ParseLoginMessage(raw string) (LoginMessage, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) != 3 || lines[0] != loginHeader {
		return LoginMessage{}, dErrors.New(dErrors.CodeInvalidInput, "malformed login message")
	}
	addrText, ok := strings.CutPrefix(lines[1], addressPrefix)
	if !ok {
		return LoginMessage{}, dErrors.New(dErrors.CodeInvalidInput, "login message missing address")
	}
	addr, err := domain.ParseAddress(addrText)
	if err != nil {
		return LoginMessage{}, err
	}
	issuedText, ok := strings.CutPrefix(lines[2], issuedPrefix)
	if !ok {
		return LoginMessage{}, dErrors.New(dErrors.CodeInvalidInput, "login message missing issued time")
	}
	unix, err := strconv.ParseInt(issuedText, 10, 64)
	if err != nil {
		return LoginMessage{}, dErrors.New(dErrors.CodeInvalidInput, "login message issued time must be unix seconds")
	}
	return LoginMessage{Address: addr, Issued: time.Unix(unix, 0).UTC()}, nil
}

// Token is an issued caller access token.
type Token struct {
	AccessToken string
	JTI         string
	Caller      domain.Address
	ExpiresAt   time.Time
}
