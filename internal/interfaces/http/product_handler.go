package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servihogar-api/internal/application/dto"
	"github.com/jhoicas/servihogar-api/internal/application/inventory"
)

// ProductHandler productos y kardex (protegido).
type ProductHandler struct {
	uc *inventory.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  Si trae stock inicial registra la entrada "Inventario inicial" en el kardex.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Un cambio de stock se registra como "Ajuste manual" en el kardex.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Kardex del producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.UserContext(), c.Params("id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(out)
}

// Reconciliation godoc
// @Summary      Conciliar stock contra kardex
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReconciliationResponse
// @Router       /api/products/{id}/reconciliation [get]
func (h *ProductHandler) Reconciliation(c *fiber.Ctx) error {
	out, err := h.uc.Reconcile(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(out)
}

// KardexPDF godoc
// @Summary      Kardex en PDF
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Router       /api/products/{id}/kardex.pdf [get]
func (h *ProductHandler) KardexPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.KardexPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="kardex-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}
