package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thientu9562/identity-management/pkg/domain"
	dErrors "github.com/thientu9562/identity-management/pkg/domain-errors"
)

func TestLoginMessageRoundTrip(t *testing.T) {
	addr := domain.Address{19: 0x42}
	msg := NewLoginMessage(addr, time.Unix(1767225600, 500))

	parsed, err := ParseLoginMessage(msg.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed.Address)
	assert.Equal(t, int64(1767225600), parsed.Issued.Unix())
	assert.Equal(t, "identity-management login\naddress: 0x0000000000000000000000000000000000000042\nissued: 1767225600", msg.String())
}

func TestParseLoginMessageRejects(t *testing.T) {
	cases := map[string]string{
		"wrong header":   "hello\naddress: 0x0000000000000000000000000000000000000042\nissued: 1",
		"missing issued": "identity-management login\naddress: 0x0000000000000000000000000000000000000042",
		"bad address":    "identity-management login\naddress: 0x42\nissued: 1",
		"bad issued":     "identity-management login\naddress: 0x0000000000000000000000000000000000000042\nissued: soon",
		"extra line":     "identity-management login\naddress: 0x0000000000000000000000000000000000000042\nissued: 1\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLoginMessage(raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}
