package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/servihogar-api/internal/application/dto"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/inventory"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// UseCase alta y edición de productos con registro en el kardex.
// Ninguna operación cambia Stock sin escribir el movimiento correspondiente.
type UseCase struct {
	tx       TxRunner
	products repository.ProductRepository
	moves    repository.InventoryMovementRepository
	renderer KardexRenderer
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso. products y moves se usan para lecturas fuera de tx.
func NewUseCase(
	tx TxRunner,
	products repository.ProductRepository,
	moves repository.InventoryMovementRepository,
	renderer KardexRenderer,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{tx: tx, products: products, moves: moves, renderer: renderer, log: log}
}

// Create inserta el producto y, si trae stock inicial, su entrada "Inventario inicial".
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == "" {
		in.Type = entity.ProductTypeGood
	}
	if in.Type != entity.ProductTypeGood && in.Type != entity.ProductTypeService {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Type:      in.Type,
		Price:     in.Price,
		Stock:     in.Stock,
		MinStock:  in.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if product.Stock <= 0 {
			return nil
		}
		return repos.Movements.Create(ctx, &entity.InventoryMovement{
			ProductID: product.ID,
			Actor:     actor.DisplayName(),
			Type:      entity.MovementTypeIN,
			Quantity:  product.Stock,
			Reason:    entity.MovementReasonInitial,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica los cambios del producto. Si cambia el stock registra un "Ajuste manual"
// por la diferencia, en la misma transacción que la actualización.
func (uc *UseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		product, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.SKU != nil {
			product.SKU = *in.SKU
		}
		if in.Name != nil {
			if *in.Name == "" {
				return domain.ErrInvalidInput
			}
			product.Name = *in.Name
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		if in.MinStock != nil {
			product.MinStock = *in.MinStock
		}
		if in.Stock != nil {
			if err := adjust(ctx, repos, actor, product, *in.Stock); err != nil {
				return err
			}
		}
		product.UpdatedAt = time.Now()
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// AdjustStock lleva el stock del producto a target registrando la diferencia.
func (uc *UseCase) AdjustStock(ctx context.Context, actor entity.Actor, id string, target int) (*dto.ProductResponse, error) {
	return uc.Update(ctx, actor, id, dto.UpdateProductRequest{Stock: &target})
}

// adjust escribe el movimiento IN/OUT por |target - stock| y deja product.Stock = target.
func adjust(ctx context.Context, repos repository.Repos, actor entity.Actor, product *entity.Product, target int) error {
	movType, qty, ok := inventory.Adjustment(product.Stock, target)
	if !ok {
		return nil
	}
	err := repos.Movements.Create(ctx, &entity.InventoryMovement{
		ProductID: product.ID,
		Actor:     actor.DisplayName(),
		Type:      movType,
		Quantity:  qty,
		Reason:    entity.MovementReasonAdjustment,
	})
	if err != nil {
		return fmt.Errorf("register adjustment: %w", err)
	}
	product.Stock = target
	return nil
}

// ListMovements kardex del producto, más recientes primero.
func (uc *UseCase) ListMovements(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.moves.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Reconcile compara el stock materializado con la suma con signo del kardex.
func (uc *UseCase) Reconcile(ctx context.Context, productID string) (*dto.ReconciliationResponse, error) {
	product, movements, err := uc.kardex(ctx, productID)
	if err != nil {
		return nil, err
	}
	balance := inventory.Balance(movements)
	balanced := inventory.Reconciles(product.Stock, movements)
	if !balanced {
		uc.log.Warn().Str("product_id", productID).Int("stock", product.Stock).
			Int("ledger", balance).Msg("kardex descuadrado")
	}
	return &dto.ReconciliationResponse{
		ProductID:     product.ID,
		Stock:         product.Stock,
		LedgerBalance: balance,
		Balanced:      balanced,
	}, nil
}

// KardexPDF genera el PDF del kardex completo del producto.
func (uc *UseCase) KardexPDF(ctx context.Context, productID string) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("kardex pdf: renderer no configurado")
	}
	product, movements, err := uc.kardex(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderKardex(product, movements)
}

func (uc *UseCase) kardex(ctx context.Context, productID string) (*entity.Product, []*entity.InventoryMovement, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	movements, err := uc.moves.AllByProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	return product, movements, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Type:      p.Type,
		Price:     p.Price,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Actor:     m.Actor,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}
