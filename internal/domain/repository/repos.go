package repository

// Repos agrupa los repositorios atados a una misma transacción.
// Los construye el TxRunner de infraestructura; los casos de uso solo los consumen.
type Repos struct {
	Orders        OrderRepository
	Quotes        QuoteRepository
	Products      ProductRepository
	Movements     InventoryMovementRepository
	Leads         LeadRepository
	Clients       ClientRepository
	Fiscal        FiscalDocumentRepository
	Notifications NotificationRepository
}
