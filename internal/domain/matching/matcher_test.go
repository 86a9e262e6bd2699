package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/domain/matching"
)

func testClients() []entity.KnownClient {
	return []entity.KnownClient{
		{Role: "Templo", Name: "EL TEMPLO DE LA MODA S.A.S.", TaxID: "805027653"},
		{Role: "Esteban", Name: "ESTEBAN RIOS CARDONA", TaxID: "1130600123"},
		{Role: "Corto", Name: "MODA ANDINA", TaxID: "900111222"},
	}
}

func TestClientMatcher_Exacto(t *testing.T) {
	m := matching.NewClientMatcher(testClients())
	c, ok := m.Match("EL TEMPLO DE LA MODA SAS.")
	require.True(t, ok)
	assert.Equal(t, "805027653", c.TaxID)
}

func TestClientMatcher_DosPalabras_AmbosConMasDeDos(t *testing.T) {
	m := matching.NewClientMatcher(testClients())
	c, ok := m.Match("Esteban Rios Mejia")
	require.True(t, ok, "mismas dos primeras palabras y ambos con tres palabras")
	assert.Equal(t, "Esteban", c.Role)
}

func TestClientMatcher_DosPalabras_CandidatoCorto(t *testing.T) {
	m := matching.NewClientMatcher(testClients())
	_, ok := m.Match("ESTEBAN RIOS")
	assert.False(t, ok, "el candidato con dos palabras no activa la regla de respaldo")
}

func TestClientMatcher_DosPalabras_ConocidoCorto(t *testing.T) {
	m := matching.NewClientMatcher(testClients())
	_, ok := m.Match("MODA ANDINA INTERNACIONAL")
	assert.False(t, ok, "el conocido con dos palabras no activa la regla de respaldo")

	c, ok := m.Match("moda  andina")
	require.True(t, ok, "la igualdad exacta sí aplica")
	assert.Equal(t, "Corto", c.Role)
}

func TestClientMatcher_SinCoincidencia(t *testing.T) {
	m := matching.NewClientMatcher(testClients())
	_, ok := m.Match("ALMACENES EXITO SA")
	assert.False(t, ok)
	_, ok = m.Match("")
	assert.False(t, ok)
	_, ok = m.Match("RIOS ESTEBAN CARDONA")
	assert.False(t, ok, "el orden de las palabras importa")
}

func TestClientMatcher_IgnoraNombresVacios(t *testing.T) {
	m := matching.NewClientMatcher([]entity.KnownClient{{Role: "X", Name: "  "}, testClients()[0]})
	_, ok := m.Match("")
	assert.False(t, ok, "un nombre vacío no casa con el cliente sin nombre")
	_, ok = m.Match("   ")
	assert.False(t, ok)
	got, ok := m.Match("el templo de la moda s.a.s")
	require.True(t, ok)
	assert.Equal(t, "Templo", got.Role)
}
