package verifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/internal/kms"
	"github.com/thientu9562/identity-management/pkg/domain"
)

func TestSignedInputVerifier(t *testing.T) {
	coprocessor, err := kms.GenerateSigner()
	require.NoError(t, err)
	impostor, err := kms.GenerateSigner()
	require.NoError(t, err)

	v := NewSignedInputVerifier(coprocessor.Address())
	user := domain.Address{0x01}
	other := domain.Address{0x02}
	handle := models.CiphertextHandle{0x10}
	ctx := context.Background()

	proof, err := SignInput(coprocessor, user, models.AttributeAge, handle)
	require.NoError(t, err)

	assert.NoError(t, v.Verify(ctx, user, models.AttributeAge, handle, proof))
	assert.ErrorIs(t, v.Verify(ctx, other, models.AttributeAge, handle, proof), ErrInvalidInputProof, "bound to user")
	assert.ErrorIs(t, v.Verify(ctx, user, models.AttributeCity, handle, proof), ErrInvalidInputProof, "bound to slot")
	assert.ErrorIs(t, v.Verify(ctx, user, models.AttributeAge, models.CiphertextHandle{0x11}, proof), ErrInvalidInputProof, "bound to handle")
	assert.ErrorIs(t, v.Verify(ctx, user, models.AttributeAge, handle, []byte("junk")), ErrInvalidInputProof)

	forged, err := SignInput(impostor, user, models.AttributeAge, handle)
	require.NoError(t, err)
	assert.ErrorIs(t, v.Verify(ctx, user, models.AttributeAge, handle, forged), ErrInvalidInputProof)
}

func TestAllowAllVerifier(t *testing.T) {
	assert.NoError(t, AllowAllVerifier{}.Verify(context.Background(), domain.Address{}, models.AttributeAge, models.CiphertextHandle{}, nil))
}
