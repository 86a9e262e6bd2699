package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despachos-api/internal/application/reconcile"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/domain/matching"
)

func TestParseOrders_SoloLoteCompleto(t *testing.T) {
	rows := [][]string{
		{`{"A":"500","LOTE":"77","REFERENCIA":"REF1","CANTIDAD":"10","PROVEEDOR":5,"TIPO":"FULL","FECHA_CREACION":"2024-03-01"}`},
		{`{"A":"501","LOTE":"78","REFERENCIA":"REF2","CANTIDAD":"4","TIPO":"PARCIAL"}`},
		{`{"A":"502", "LOTE":`},
		{""},
		{`{"A":"503","REFERENCIA":"REF3","TIPO":"FULL"}`},
	}
	var st reconcile.Stats
	orders := reconcile.ParseOrders(rows, "FULL", &st)

	require.Len(t, orders, 1)
	o := orders[0]
	assert.Equal(t, "500", o.ID)
	assert.Equal(t, "77", o.LotCode)
	assert.Equal(t, "REF1", o.Reference)
	assert.Equal(t, 10, o.Quantity)
	assert.Equal(t, "5", o.SupplierCode)
	assert.Equal(t, map[string]string{"FECHA_CREACION": "2024-03-01"}, o.RawTimestamps)

	assert.Equal(t, 1, st.Orders)
	assert.Equal(t, 1, st.ParseSkipped, "JSON mal formado")
	assert.Equal(t, 1, st.ReconcileSkipped, "pedido sin lote")
}

func TestParseOrders_Anexos(t *testing.T) {
	rows := [][]string{{`{"A":"600","LOTE":"90","TIPO":"FULL","ANEXOS":[` +
		`{"TIPO":"promo","REFERENCIA":"P1","CANTIDAD":3},` +
		`{"TIPO":"PROMO","REFERENCIA":"P2","CANTIDAD":"x"},` +
		`{"TIPO":"OTRO","REFERENCIA":"O1","CANTIDAD":1}]}`}}
	var st reconcile.Stats
	orders := reconcile.ParseOrders(rows, "FULL", &st)

	require.Len(t, orders, 1)
	require.Len(t, orders[0].Attachments, 2, "anexo con cantidad inválida se omite")
	assert.True(t, orders[0].Attachments[0].IsPromo())
	assert.Equal(t, 3, orders[0].Attachments[0].Quantity)
	assert.False(t, orders[0].Attachments[1].IsPromo())
}

func TestParseInvoices_FiltrosYV2(t *testing.T) {
	rules := reconcile.InvoiceRules{
		Matcher:          matching.NewClientMatcher(reconcile.DefaultKnownClients()),
		ValidPrefixes:    []string{"FEV", "FE"},
		ExcludedStatuses: []string{"Anulada", "En proceso"},
	}
	rows := [][]string{
		{"Emitida", "FEV-001", "2024-03-01", "77", "El Templo de la Moda SAS", "5"},
		{"anulada", "FEV-002", "2024-03-01", "77", "EL TEMPLO DE LA MODA S.A.S.", "5"},
		{"Emitida", "NC-003", "2024-03-01", "77", "EL TEMPLO DE LA MODA S.A.S.", "5"},
		{"Emitida", "FEV-004", "2024-03-01", "77", "CLIENTE DESCONOCIDO LTDA", "5"},
		{"Emitida", "FE-005", "2024-03-02", "78", "Esteban Rios Cardona", ""},
		{"Emitida", "FEV-006", "2024-03-02", "", "ESTEBAN RIOS CARDONA", ""},
		{"", "", "", "", "", ""},
	}
	v2 := [][]string{
		{"FEV-001", "$1.500.000", "REF1", "10"},
		{"FE-005", "100.000", "REF7", "2"},
		{"FE-005", "50.000,50", "REF8", "3"},
		{"FEV-009", "abc", "REF9", "1"},
	}
	var st reconcile.Stats
	invoices := reconcile.ParseInvoices(rows, v2, rules, &st)

	require.Len(t, invoices, 2)

	first := invoices[0]
	assert.Equal(t, "FEV-001", first.Number)
	assert.Equal(t, "805027653", first.Client.TaxID)
	assert.Equal(t, "El Templo de la Moda SAS", first.ClientNameRaw)
	assert.Equal(t, "1500000", first.GrossValue.String())
	assert.Equal(t, 10, first.Quantity)
	assert.Equal(t, "REF1", first.Reference)

	second := invoices[1]
	assert.Equal(t, "FE-005", second.Number)
	assert.Equal(t, entity.RefVar, second.Reference, "varias filas V2 comparten factura")
	assert.Equal(t, 5, second.Quantity)
	assert.Equal(t, "150000.5", second.GrossValue.String())

	assert.Equal(t, 2, st.Invoices)
	assert.Equal(t, 1, st.ReconcileSkipped, "factura sin lote")
	assert.Equal(t, 1, st.ParseSkipped, "valor V2 inválido")
}

func TestParseInvoices_SinV2QuedaEnCero(t *testing.T) {
	rules := reconcile.InvoiceRules{Matcher: matching.NewClientMatcher(reconcile.DefaultKnownClients())}
	rows := [][]string{{"Emitida", "X-1", "", "77", "ESTEBAN RIOS CARDONA", ""}}
	var st reconcile.Stats
	invoices := reconcile.ParseInvoices(rows, nil, rules, &st)

	require.Len(t, invoices, 1, "sin prefijos configurados se acepta cualquiera")
	assert.True(t, invoices[0].GrossValue.IsZero())
	assert.Zero(t, invoices[0].Quantity)
	assert.Empty(t, invoices[0].Reference)
}

func TestParseSupports_Clave(t *testing.T) {
	rows := [][]string{
		{"REC500", "77", "REF1", "10", "805027653", "", "2024-03-02 09:00"},
		{"REC500", "77", "REF1", "10", "805027653", "FEV-001", "2024-03-02 10:00"},
		{"REC500", "77", "REF1", "10", "805027653", "", "2024-03-02 11:00"},
		{"", "", "REF1", "10", "805027653", "FEV-001", ""},
		{" REC501 ", "78", "REF2", "4", "", "", ""},
	}
	var st reconcile.Stats
	supports := reconcile.ParseSupports(rows, &st)

	require.Len(t, supports, 2)
	sup, ok := supports[matching.DeliveryKey("REC500_77_REF1_10_805027653")]
	require.True(t, ok)
	assert.Equal(t, "FEV-001", sup.InvoiceNumber, "prevalece el soporte con factura")

	sup, ok = supports[matching.DeliveryKey("REC501_78_REF2_4_")]
	require.True(t, ok)
	assert.False(t, sup.HasInvoice())
	assert.Equal(t, 2, st.Supports)
}

func TestParseSupports_CantidadCanonica(t *testing.T) {
	rows := [][]string{
		{"REC500", "77", "REF1", "1.500", "805027653", "FEV-001", ""},
		{"REC501", "78", "REF2", "10.0", "805027653", "FEV-002", ""},
		{"REC502", "79", "REF3", "diez", "805027653", "", ""},
		{"REC503", "80", "REF4", "", "805027653", "", ""},
	}
	supports := reconcile.ParseSupports(rows, &reconcile.Stats{})

	assert.Contains(t, supports, matching.KeyFor("REC500", "77", "REF1", 1500, "805027653"))
	assert.Contains(t, supports, matching.KeyFor("REC501", "78", "REF2", 10, "805027653"))
	assert.Contains(t, supports, matching.DeliveryKey("REC502_79_REF3_diez_805027653"))
	assert.Contains(t, supports, matching.DeliveryKey("REC503_80_REF4__805027653"))
}

func TestParseDistributions_SumaPorRol(t *testing.T) {
	rows := [][]string{
		{"600", `{"Templo":[{"cantidad":4},{"cantidad":"2"}],"Esteban":[{"cantidad":0}],"Desconocido":[{"cantidad":9}]}`},
		{"600", `{"Shopping":[{"cantidad":3}]}`},
		{"601", `{"Templo": [`},
		{"", `{"Templo":[{"cantidad":1}]}`},
	}
	var st reconcile.Stats
	dists := reconcile.ParseDistributions(rows, reconcile.DefaultKnownClients(), &st)

	require.Len(t, dists, 1)
	d := dists["600"]
	require.Len(t, d.Allocations, 5, "una asignación por cliente conocido")
	assert.Equal(t, "Templo", d.Allocations[0].Role)
	assert.Equal(t, 6, d.Allocations[0].AllocatedQuantity)
	assert.Equal(t, 3, d.Allocations[1].AllocatedQuantity)
	assert.Zero(t, d.Allocations[2].AllocatedQuantity)

	positive := d.Positive()
	require.Len(t, positive, 2)
	assert.Equal(t, "901245678", positive[1].TaxID)
	assert.Equal(t, 2, st.ParseSkipped)
}

func TestParseResponsibles(t *testing.T) {
	got := reconcile.ParseResponsibles([][]string{
		{"500", " Carlos "},
		{"501", ""},
		{"", "Ana"},
	})
	assert.Equal(t, map[string]string{"500": "Carlos"}, got)
}
