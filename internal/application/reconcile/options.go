package reconcile

import (
	"fmt"
	"time"

	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/domain/repository"
)

// Presets disponibles: variantes de configuración del mismo pipeline.
const (
	PresetGama       = "gama"
	PresetBeta       = "beta"
	PresetSinFactura = "sin-factura"
)

// Sources rangos de las hojas que alimentan el pipeline.
// InvoicesV2 y Responsibles son opcionales.
type Sources struct {
	Orders        repository.SourceRef
	Invoices      repository.SourceRef
	InvoicesV2    repository.SourceRef
	Supports      repository.SourceRef
	Distributions repository.SourceRef
	Responsibles  repository.SourceRef
}

// Options objeto único de configuración del pipeline.
type Options struct {
	CacheTTL             time.Duration // 0 = sin caché
	FetchTimeout         time.Duration // límite para la lectura paralela de fuentes
	Sources              Sources
	KnownClients         []entity.KnownClient
	SupplierCodeMap      map[string]string // código de proveedor → nombre
	ValidInvoicePrefixes []string          // vacío = cualquier prefijo
	ExcludedStatuses     []string
	CompleteLotMarker    string // valor de TIPO para pedidos de lote completo
	DocumentPrefix       string // prefijo del documento de despacho, ej. "REC"
	MarkPendingInvoice   bool   // en distribución sin soporte, marcar "PENDIENTE FACTURA"
}

// DefaultKnownClients clientes con los que opera la distribución.
func DefaultKnownClients() []entity.KnownClient {
	return []entity.KnownClient{
		{Role: "Templo", Name: "EL TEMPLO DE LA MODA S.A.S.", TaxID: "805027653"},
		{Role: "Shopping", Name: "SHOPPING DE LA MODA S.A.S.", TaxID: "901245678"},
		{Role: "Esteban", Name: "ESTEBAN RIOS CARDONA", TaxID: "1130600123"},
		{Role: "Didier", Name: "DIDIER RIOS CARDONA", TaxID: "1130600456"},
		{Role: "Bodega", Name: "COMERCIALIZADORA LA BODEGA S.A.S.", TaxID: "900876543"},
	}
}

// Preset devuelve las opciones por defecto de una variante. Las hojas
// (SpreadsheetID) se completan desde la configuración.
func Preset(name string) (Options, error) {
	opts := Options{
		CacheTTL:     5 * time.Minute,
		FetchTimeout: 8 * time.Second,
		Sources: Sources{
			Orders:        repository.SourceRef{Name: "pedidos", Range: "PEDIDOS!A2:A"},
			Invoices:      repository.SourceRef{Name: "facturas", Range: "FACTURAS!A2:F"},
			InvoicesV2:    repository.SourceRef{Name: "facturas_v2", Range: "FACTURAS_V2!A2:D"},
			Supports:      repository.SourceRef{Name: "soportes", Range: "SOPORTES!A2:G"},
			Distributions: repository.SourceRef{Name: "distribucion", Range: "DISTRIBUCION!A2:B"},
			Responsibles:  repository.SourceRef{Name: "responsables", Range: "RESPONSABLES!A2:B"},
		},
		KnownClients: DefaultKnownClients(),
		SupplierCodeMap: map[string]string{
			"5": "CONFECCIONES MODA TOTAL",
			"3": "TEXTILES DEL VALLE",
		},
		ValidInvoicePrefixes: []string{"FEV", "FE"},
		ExcludedStatuses:     []string{"Anulada", "Anuladas", "En proceso"},
		CompleteLotMarker:    "FULL",
		DocumentPrefix:       "REC",
	}
	switch name {
	case "", PresetGama:
	case PresetBeta:
		opts.CacheTTL = 0
	case PresetSinFactura:
		opts.CacheTTL = time.Minute
		opts.MarkPendingInvoice = true
	default:
		return Options{}, fmt.Errorf("reconcile: preset desconocido %q", name)
	}
	return opts, nil
}

// WithSpreadsheet asigna la misma hoja a todas las fuentes que no tengan una.
func (o Options) WithSpreadsheet(id string) Options {
	for _, ref := range o.Sources.all() {
		if ref.SpreadsheetID == "" {
			ref.SpreadsheetID = id
		}
	}
	return o
}

// WithRanges sobrescribe el rango A1 de las fuentes por nombre lógico
// (pedidos, facturas, ...). Los nombres desconocidos son un error.
func (o Options) WithRanges(ranges map[string]string) (Options, error) {
	for name, rng := range ranges {
		found := false
		for _, ref := range o.Sources.all() {
			if ref.Name == name {
				ref.Range = rng
				found = true
			}
		}
		if !found {
			return o, fmt.Errorf("reconcile: fuente desconocida %q", name)
		}
	}
	return o, nil
}

// Validate verifica que las fuentes obligatorias estén configuradas.
func (o Options) Validate() error {
	required := []repository.SourceRef{
		o.Sources.Orders, o.Sources.Invoices, o.Sources.Supports, o.Sources.Distributions,
	}
	for _, ref := range required {
		if !ref.Configured() {
			return fmt.Errorf("reconcile: fuente %q sin hoja o rango", ref.Name)
		}
	}
	if o.CacheTTL < 0 {
		return fmt.Errorf("reconcile: CacheTTL negativo")
	}
	if o.FetchTimeout <= 0 {
		return fmt.Errorf("reconcile: FetchTimeout debe ser positivo")
	}
	return nil
}

func (s *Sources) all() []*repository.SourceRef {
	return []*repository.SourceRef{
		&s.Orders, &s.Invoices, &s.InvoicesV2, &s.Supports, &s.Distributions, &s.Responsibles,
	}
}
