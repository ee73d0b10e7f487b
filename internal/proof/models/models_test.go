package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thientu9562/identity-management/pkg/domain"
)

func TestProofRequestTransitions(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var user domain.Address
	user[0] = 1

	t.Run("fulfill is terminal", func(t *testing.T) {
		r := NewPending(domain.NewRequestID(1), user, KindAgeOver18, at)
		require.NoError(t, r.Fulfill(true, at.Add(time.Second)))
		assert.Equal(t, StatusFulfilled, r.Status)
		require.NotNil(t, r.Result)
		assert.True(t, *r.Result)

		assert.Error(t, r.Fulfill(false, at.Add(2*time.Second)))
		assert.True(t, *r.Result, "a second fulfillment must not overwrite the result")
		assert.Error(t, r.Cancel(at))
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		r := NewPending(domain.NewRequestID(2), user, KindAgeOver21AndValidCountry, at)
		require.NoError(t, r.Cancel(at))
		assert.Equal(t, StatusCancelled, r.Status)
		assert.Nil(t, r.Result)
		assert.Error(t, r.Fulfill(true, at))
	})

	t.Run("staleness only applies to pending requests", func(t *testing.T) {
		r := NewPending(domain.NewRequestID(3), user, KindAgeOver18, at)
		assert.False(t, r.IsStale(at.Add(time.Minute), 10*time.Minute))
		assert.True(t, r.IsStale(at.Add(10*time.Minute), 10*time.Minute))
		require.NoError(t, r.Fulfill(false, at))
		assert.False(t, r.IsStale(at.Add(time.Hour), 10*time.Minute))
	})

	t.Run("clone does not alias", func(t *testing.T) {
		r := NewPending(domain.NewRequestID(4), user, KindAgeOver18, at)
		require.NoError(t, r.Fulfill(true, at))
		c := r.Clone()
		*c.Result = false
		assert.True(t, *r.Result)
	})
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("AgeOver21AndValidCountry")
	require.NoError(t, err)
	assert.Equal(t, KindAgeOver21AndValidCountry, k)

	_, err = ParseKind("AgeOver65")
	assert.Error(t, err)
}
