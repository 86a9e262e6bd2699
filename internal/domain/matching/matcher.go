package matching

import "github.com/jhoicas/despachos-api/internal/domain/entity"

// ClientMatcher decide si una razón social de la hoja de facturación pertenece
// a un cliente conocido.
type ClientMatcher struct {
	clients []knownEntry
	exact   map[string]int // nombre normalizado → índice en clients
}

type knownEntry struct {
	client entity.KnownClient
	tokens []string
}

// NewClientMatcher indexa los clientes conocidos por nombre normalizado.
// Si dos clientes normalizan igual, gana el primero.
func NewClientMatcher(clients []entity.KnownClient) *ClientMatcher {
	m := &ClientMatcher{
		clients: make([]knownEntry, 0, len(clients)),
		exact:   make(map[string]int, len(clients)),
	}
	for _, c := range clients {
		n := NormalizeClientName(c.Name)
		if n == "" {
			continue
		}
		if _, dup := m.exact[n]; !dup {
			m.exact[n] = len(m.clients)
		}
		m.clients = append(m.clients, knownEntry{client: c, tokens: Tokens(n)})
	}
	return m
}

// Match busca el cliente conocido para raw.
//
// Regla:
//  1. Igualdad exacta tras NormalizeClientName.
//  2. Si no, las dos primeras palabras coinciden con las dos primeras de un
//     cliente conocido y ambos nombres tienen más de dos palabras.
//
// La segunda regla tolera personas naturales que comparten apellidos en la
// fuente; no debe ampliarse ni restringirse.
func (m *ClientMatcher) Match(raw string) (entity.KnownClient, bool) {
	n := NormalizeClientName(raw)
	if n == "" {
		return entity.KnownClient{}, false
	}
	if i, ok := m.exact[n]; ok {
		return m.clients[i].client, true
	}
	tokens := Tokens(n)
	if len(tokens) <= 2 {
		return entity.KnownClient{}, false
	}
	for _, k := range m.clients {
		if len(k.tokens) <= 2 {
			continue
		}
		if k.tokens[0] == tokens[0] && k.tokens[1] == tokens[1] {
			return k.client, true
		}
	}
	return entity.KnownClient{}, false
}
