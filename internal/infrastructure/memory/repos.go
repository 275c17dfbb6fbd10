package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository             = (*orderRepo)(nil)
	_ repository.QuoteRepository             = (*quoteRepo)(nil)
	_ repository.ProductRepository           = (*productRepo)(nil)
	_ repository.InventoryMovementRepository = (*movementRepo)(nil)
	_ repository.LeadRepository              = (*leadRepo)(nil)
	_ repository.ClientRepository            = (*clientRepo)(nil)
	_ repository.FiscalDocumentRepository    = (*fiscalRepo)(nil)
	_ repository.NotificationRepository      = (*notificationRepo)(nil)
	_ repository.AppointmentRepository       = (*appointmentRepo)(nil)
	_ repository.AIInteractionRepository     = (*aiRepo)(nil)
)

// base resuelve sobre qué estado opera un repositorio: la copia de la tx o el publicado.
type base struct {
	store *Store
	tx    *state
}

func (b base) do(ctx context.Context, op string, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.store.fail(op); err != nil {
		return err
	}
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.st)
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── Orders ───────────────────────────────────────────────────────────────────

type orderRepo struct{ base }

func copyOrder(o entity.Order) *entity.Order {
	if o.FiscalData != nil {
		snap := *o.FiscalData
		o.FiscalData = &snap
	}
	return &o
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.do(ctx, "orders.GetByID", func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = copyOrder(o)
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.do(ctx, "orders.GetForUpdate", func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = copyOrder(o)
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) UpdatePayment(ctx context.Context, id string, paidAmount decimal.Decimal, method, status string) error {
	return r.do(ctx, "orders.UpdatePayment", func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.PaidAmount = paidAmount
		o.PaymentMethod = method
		o.Status = status
		o.UpdatedAt = time.Now()
		st.orders[id] = o
		return nil
	})
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.do(ctx, "orders.UpdateStatus", func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.Status = status
		o.UpdatedAt = time.Now()
		st.orders[id] = o
		return nil
	})
}

func (r *orderRepo) UpdateFiscal(ctx context.Context, id string, snapshot *entity.FiscalSnapshot, fiscalStatus string) error {
	return r.do(ctx, "orders.UpdateFiscal", func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		if snapshot != nil {
			snap := *snapshot
			o.FiscalData = &snap
		} else {
			o.FiscalData = nil
		}
		o.FiscalStatus = fiscalStatus
		o.UpdatedAt = time.Now()
		st.orders[id] = o
		return nil
	})
}

// ── Quotes ───────────────────────────────────────────────────────────────────

type quoteRepo struct{ base }

func (r *quoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	var out *entity.Quote
	err := r.do(ctx, "quotes.GetByID", func(st *state) error {
		if q, ok := st.quotes[id]; ok {
			q.Items = append([]entity.QuoteItem(nil), q.Items...)
			out = &q
		}
		return nil
	})
	return out, err
}

// ── Products ─────────────────────────────────────────────────────────────────

type productRepo struct{ base }

func (r *productRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.do(ctx, "products.Create", func(st *state) error {
		if product.ID == "" {
			product.ID = uuid.New().String()
		}
		if _, exists := st.products[product.ID]; exists {
			return domain.ErrDuplicate
		}
		for _, p := range st.products {
			if product.SKU != "" && p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[product.ID] = *product
		return nil
	})
}

func (r *productRepo) get(ctx context.Context, op, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(ctx, op, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, "products.GetByID", id)
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, "products.GetForUpdate", id)
}

func (r *productRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.do(ctx, "products.Update", func(st *state) error {
		if _, ok := st.products[product.ID]; !ok {
			return domain.ErrNotFound
		}
		st.products[product.ID] = *product
		return nil
	})
}

func (r *productRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	return r.do(ctx, "products.UpdateStock", func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Stock = stock
		p.UpdatedAt = time.Now()
		st.products[id] = p
		return nil
	})
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.do(ctx, "products.List", func(st *state) error {
		for _, p := range st.products {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), err
}

// ── Inventory movements ──────────────────────────────────────────────────────

type movementRepo struct{ base }

func (r *movementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	return r.do(ctx, "movements.Create", func(st *state) error {
		if movement.ID == "" {
			movement.ID = uuid.New().String()
		}
		if movement.CreatedAt.IsZero() {
			movement.CreatedAt = time.Now()
		}
		st.movements = append(st.movements, *movement)
		return nil
	})
}

func (r *movementRepo) all(st *state, productID string) []*entity.InventoryMovement {
	var out []*entity.InventoryMovement
	for _, m := range st.movements {
		if m.ProductID == productID {
			m := m
			out = append(out, &m)
		}
	}
	return out
}

func (r *movementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.do(ctx, "movements.ListByProduct", func(st *state) error {
		list := r.all(st, productID)
		// más recientes primero
		for i := len(list) - 1; i >= 0; i-- {
			out = append(out, list[i])
		}
		return nil
	})
	return paginate(out, limit, offset), err
}

func (r *movementRepo) AllByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.do(ctx, "movements.AllByProduct", func(st *state) error {
		out = r.all(st, productID)
		return nil
	})
	return out, err
}

// ── Leads ────────────────────────────────────────────────────────────────────

type leadRepo struct{ base }

func (r *leadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	var out *entity.Lead
	err := r.do(ctx, "leads.GetByID", func(st *state) error {
		if l, ok := st.leads[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *leadRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.do(ctx, "leads.UpdateStatus", func(st *state) error {
		l, ok := st.leads[id]
		if !ok {
			return domain.ErrNotFound
		}
		l.Status = status
		l.UpdatedAt = time.Now()
		st.leads[id] = l
		return nil
	})
}

// ── Clients ──────────────────────────────────────────────────────────────────

type clientRepo struct{ base }

func (r *clientRepo) Create(ctx context.Context, client *entity.Client) error {
	return r.do(ctx, "clients.Create", func(st *state) error {
		if client.ID == "" {
			client.ID = uuid.New().String()
		}
		if _, exists := st.clients[client.ID]; exists {
			return domain.ErrDuplicate
		}
		st.clients[client.ID] = *client
		return nil
	})
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.do(ctx, "clients.GetByID", func(st *state) error {
		if c, ok := st.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// ── Fiscal inbox ─────────────────────────────────────────────────────────────

type fiscalRepo struct{ base }

func copyFiscal(d entity.FiscalDocument) *entity.FiscalDocument {
	if d.OrderID != nil {
		id := *d.OrderID
		d.OrderID = &id
	}
	return &d
}

func (r *fiscalRepo) Create(ctx context.Context, doc *entity.FiscalDocument) error {
	return r.do(ctx, "fiscal.Create", func(st *state) error {
		if doc.ID == "" {
			doc.ID = uuid.New().String()
		}
		if _, exists := st.fiscal[doc.UUID]; exists {
			return domain.ErrDuplicate
		}
		st.fiscal[doc.UUID] = *copyFiscal(*doc)
		return nil
	})
}

func (r *fiscalRepo) GetByUUID(ctx context.Context, uuid string) (*entity.FiscalDocument, error) {
	var out *entity.FiscalDocument
	err := r.do(ctx, "fiscal.GetByUUID", func(st *state) error {
		if d, ok := st.fiscal[uuid]; ok {
			out = copyFiscal(d)
		}
		return nil
	})
	return out, err
}

func (r *fiscalRepo) GetByDigest(ctx context.Context, digest string) (*entity.FiscalDocument, error) {
	var out *entity.FiscalDocument
	err := r.do(ctx, "fiscal.GetByDigest", func(st *state) error {
		for _, d := range st.fiscal {
			if digest != "" && d.Digest == digest {
				out = copyFiscal(d)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *fiscalRepo) MarkLinked(ctx context.Context, uuid, orderID string) error {
	return r.do(ctx, "fiscal.MarkLinked", func(st *state) error {
		d, ok := st.fiscal[uuid]
		if !ok {
			return domain.ErrNotFound
		}
		id := orderID
		d.OrderID = &id
		d.Status = entity.FiscalDocStatusLinked
		d.UpdatedAt = time.Now()
		st.fiscal[uuid] = d
		return nil
	})
}

func (r *fiscalRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.FiscalDocument, error) {
	var out []*entity.FiscalDocument
	err := r.do(ctx, "fiscal.List", func(st *state) error {
		for _, d := range st.fiscal {
			if status != "" && d.Status != status {
				continue
			}
			out = append(out, copyFiscal(d))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return paginate(out, limit, offset), err
}

// ── Notifications ────────────────────────────────────────────────────────────

type notificationRepo struct{ base }

func (r *notificationRepo) Append(ctx context.Context, title, message, notifType string) error {
	return r.do(ctx, "notifications.Append", func(st *state) error {
		st.notifications = append(st.notifications, entity.Notification{
			ID:        uuid.New().String(),
			Title:     title,
			Message:   message,
			Type:      notifType,
			CreatedAt: time.Now(),
		})
		return nil
	})
}

func (r *notificationRepo) ListUnread(ctx context.Context, limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	err := r.do(ctx, "notifications.ListUnread", func(st *state) error {
		for i := len(st.notifications) - 1; i >= 0; i-- {
			n := st.notifications[i]
			if n.Read {
				continue
			}
			out = append(out, &n)
		}
		return nil
	})
	return paginate(out, limit, 0), err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.do(ctx, "notifications.MarkRead", func(st *state) error {
		for i := range st.notifications {
			if st.notifications[i].ID == id {
				st.notifications[i].Read = true
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// ── Appointments ─────────────────────────────────────────────────────────────

type appointmentRepo struct{ base }

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	var out *entity.Appointment
	err := r.do(ctx, "appointments.GetByID", func(st *state) error {
		if a, ok := st.appointments[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.do(ctx, "appointments.UpdateStatus", func(st *state) error {
		a, ok := st.appointments[id]
		if !ok {
			return domain.ErrNotFound
		}
		a.Status = status
		a.UpdatedAt = time.Now()
		st.appointments[id] = a
		return nil
	})
}

// ── AI interactions ──────────────────────────────────────────────────────────

type aiRepo struct{ base }

func (r *aiRepo) Create(ctx context.Context, in *entity.AIInteraction) error {
	return r.do(ctx, "ai.Create", func(st *state) error {
		if in.ID == "" {
			in.ID = uuid.New().String()
		}
		if in.CreatedAt.IsZero() {
			in.CreatedAt = time.Now()
		}
		st.ai = append(st.ai, *in)
		return nil
	})
}
