// Package memory implementa los puertos de persistencia en memoria con la misma
// disciplina transaccional que el adaptador PostgreSQL: cada Run trabaja sobre una
// copia del estado y solo la publica si fn termina sin error.
package memory

import (
	"sync"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

type state struct {
	orders        map[string]entity.Order
	quotes        map[string]entity.Quote
	products      map[string]entity.Product
	movements     []entity.InventoryMovement
	leads         map[string]entity.Lead
	clients       map[string]entity.Client
	fiscal        map[string]entity.FiscalDocument // por UUID
	notifications []entity.Notification
	appointments  map[string]entity.Appointment
	ai            []entity.AIInteraction
}

func newState() *state {
	return &state{
		orders:       make(map[string]entity.Order),
		quotes:       make(map[string]entity.Quote),
		products:     make(map[string]entity.Product),
		leads:        make(map[string]entity.Lead),
		clients:      make(map[string]entity.Client),
		fiscal:       make(map[string]entity.FiscalDocument),
		appointments: make(map[string]entity.Appointment),
	}
}

// clone copia el estado completo; los punteros y slices internos se duplican
// para que una transacción abortada no deje rastro.
func (s *state) clone() *state {
	c := newState()
	for k, o := range s.orders {
		if o.FiscalData != nil {
			snap := *o.FiscalData
			o.FiscalData = &snap
		}
		c.orders[k] = o
	}
	for k, q := range s.quotes {
		q.Items = append([]entity.QuoteItem(nil), q.Items...)
		c.quotes[k] = q
	}
	for k, p := range s.products {
		c.products[k] = p
	}
	c.movements = append([]entity.InventoryMovement(nil), s.movements...)
	for k, l := range s.leads {
		c.leads[k] = l
	}
	for k, cl := range s.clients {
		c.clients[k] = cl
	}
	for k, d := range s.fiscal {
		if d.OrderID != nil {
			id := *d.OrderID
			d.OrderID = &id
		}
		c.fiscal[k] = d
	}
	c.notifications = append([]entity.Notification(nil), s.notifications...)
	for k, a := range s.appointments {
		c.appointments[k] = a
	}
	c.ai = append([]entity.AIInteraction(nil), s.ai...)
	return c
}

// Store base de datos en memoria. Las transacciones se serializan con mu.
type Store struct {
	mu sync.Mutex
	st *state

	failMu   sync.Mutex
	failures map[string]error
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), failures: make(map[string]error)}
}

// FailOn hace que la operación op (ej. "fiscal.MarkLinked") devuelva err.
// Sirve para simular fallas a mitad de un flujo.
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures[op]
}

// read ejecuta fn con el estado publicado bajo el candado.
func (s *Store) read(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

// ── Carga de datos (seed) ───────────────────────────────────────────────────

// PutOrder inserta o reemplaza una orden.
func (s *Store) PutOrder(o entity.Order) {
	s.read(func(st *state) { st.orders[o.ID] = o })
}

// PutQuote inserta o reemplaza una cotización.
func (s *Store) PutQuote(q entity.Quote) {
	s.read(func(st *state) { st.quotes[q.ID] = q })
}

// PutProduct inserta o reemplaza un producto sin tocar el kardex.
func (s *Store) PutProduct(p entity.Product) {
	s.read(func(st *state) { st.products[p.ID] = p })
}

// PutLead inserta o reemplaza un prospecto.
func (s *Store) PutLead(l entity.Lead) {
	s.read(func(st *state) { st.leads[l.ID] = l })
}

// PutFiscalDocument inserta o reemplaza una entrada de la bandeja fiscal.
func (s *Store) PutFiscalDocument(d entity.FiscalDocument) {
	s.read(func(st *state) { st.fiscal[d.UUID] = d })
}

// PutAppointment inserta o reemplaza una cita.
func (s *Store) PutAppointment(a entity.Appointment) {
	s.read(func(st *state) { st.appointments[a.ID] = a })
}

// PutClient inserta o reemplaza un cliente.
func (s *Store) PutClient(c entity.Client) {
	s.read(func(st *state) { st.clients[c.ID] = c })
}

// ── Lecturas para pruebas ────────────────────────────────────────────────────

// Order devuelve una copia de la orden publicada.
func (s *Store) Order(id string) (entity.Order, bool) {
	var o entity.Order
	var ok bool
	s.read(func(st *state) { o, ok = st.orders[id] })
	return o, ok
}

// Product devuelve una copia del producto publicado.
func (s *Store) Product(id string) (entity.Product, bool) {
	var p entity.Product
	var ok bool
	s.read(func(st *state) { p, ok = st.products[id] })
	return p, ok
}

// Lead devuelve una copia del prospecto publicado.
func (s *Store) Lead(id string) (entity.Lead, bool) {
	var l entity.Lead
	var ok bool
	s.read(func(st *state) { l, ok = st.leads[id] })
	return l, ok
}

// FiscalDocument devuelve una copia del documento por UUID.
func (s *Store) FiscalDocument(uuid string) (entity.FiscalDocument, bool) {
	var d entity.FiscalDocument
	var ok bool
	s.read(func(st *state) { d, ok = st.fiscal[uuid] })
	return d, ok
}

// Appointment devuelve una copia de la cita.
func (s *Store) Appointment(id string) (entity.Appointment, bool) {
	var a entity.Appointment
	var ok bool
	s.read(func(st *state) { a, ok = st.appointments[id] })
	return a, ok
}

// Clients devuelve todos los clientes publicados.
func (s *Store) Clients() []entity.Client {
	var out []entity.Client
	s.read(func(st *state) {
		for _, c := range st.clients {
			out = append(out, c)
		}
	})
	return out
}

// Movements devuelve el kardex publicado de un producto.
func (s *Store) Movements(productID string) []entity.InventoryMovement {
	var out []entity.InventoryMovement
	s.read(func(st *state) {
		for _, m := range st.movements {
			if m.ProductID == productID {
				out = append(out, m)
			}
		}
	})
	return out
}

// Notifications devuelve todas las notificaciones publicadas.
func (s *Store) Notifications() []entity.Notification {
	var out []entity.Notification
	s.read(func(st *state) { out = append(out, st.notifications...) })
	return out
}

// AIInteractions devuelve la bitácora del asistente.
func (s *Store) AIInteractions() []entity.AIInteraction {
	var out []entity.AIInteraction
	s.read(func(st *state) { out = append(out, st.ai...) })
	return out
}
