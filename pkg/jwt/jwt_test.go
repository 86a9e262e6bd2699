package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despachos-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("s3cret", "ana", "admin", "despachos-api", 5)
	require.NoError(t, err)

	user, role, err := jwt.Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "ana", user)
	assert.Equal(t, "admin", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("s3cret", "ana", "admin", "despachos-api", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("s3cret", "ana", "admin", "despachos-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("s3cret", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "ana", "admin", "x", 5)
	assert.Error(t, err)
	_, _, err = jwt.Parse("", "token")
	assert.Error(t, err)
}
