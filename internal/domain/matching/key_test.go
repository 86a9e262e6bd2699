package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/despachos-api/internal/domain/matching"
)

func TestBuildDeliveryKey_Formato(t *testing.T) {
	k := matching.BuildDeliveryKey("REC500", "77", "REF1", "10", "805027653")
	assert.Equal(t, "REC500_77_REF1_10_805027653", k.String())
}

func TestBuildDeliveryKey_RecortaCadaParte(t *testing.T) {
	a := matching.BuildDeliveryKey(" REC500 ", "77\t", " REF1", "10 ", "\n805027653")
	b := matching.BuildDeliveryKey("REC500", "77", "REF1", "10", "805027653")
	assert.Equal(t, b, a)
}

func TestKeyFor_CantidadSinFormato(t *testing.T) {
	assert.Equal(t,
		matching.BuildDeliveryKey("REC1", "L", "R", "1500", "9"),
		matching.KeyFor("REC1", "L", "R", 1500, "9"),
	)
}

func TestBuildDeliveryKey_Inyectiva(t *testing.T) {
	tuples := [][5]string{
		{"a_b", "c", "d", "1", "e"},
		{"a", "b_c", "d", "1", "e"},
		{"a", "b", "c_d", "1", "e"},
		{"a\\", "b", "c", "1", "e"},
		{"a", "\\b", "c", "1", "e"},
		{"a", "b", "c", "1", "e"},
		{"a", "b", "c", "1", ""},
		{"a", "b", "c", "", "1"},
		{"", "a", "b", "c", "1"},
	}
	seen := map[matching.DeliveryKey][5]string{}
	for _, tp := range tuples {
		k := matching.BuildDeliveryKey(tp[0], tp[1], tp[2], tp[3], tp[4])
		prev, dup := seen[k]
		assert.False(t, dup, "colisión entre %v y %v (%s)", prev, tp, k)
		seen[k] = tp
	}
}
