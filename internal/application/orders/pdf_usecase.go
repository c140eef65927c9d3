package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// PDFUseCase genera el documento PDF de una orden de compra (el que se envía
// al proveedor).
type PDFUseCase struct {
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	generator    OrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	generator OrderPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadOrderPDF carga la orden, el proveedor y los nombres de producto de
// cada línea, y genera el PDF. Devuelve (bytes, nombre de archivo, error).
func (uc *PDFUseCase) DownloadOrderPDF(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	supplier, err := uc.supplierRepo.GetByID(order.SupplierID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, "", domain.ErrNotFound
	}

	lines := make([]OrderLineForPDF, 0, len(order.Lines))
	for _, line := range order.Lines {
		name := line.ProductID
		if product, err := uc.productRepo.GetByID(line.ProductID); err == nil && product != nil {
			name = product.Name
		}
		lines = append(lines, OrderLineForPDF{ProductName: name, Line: line})
	}

	pdfBytes, err := uc.generator.GenerateOrderPDF(ctx, order, supplier, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar orden: %w", err)
	}
	filename := fmt.Sprintf("orden-compra-%s.pdf", order.ID)
	return pdfBytes, filename, nil
}
