package project

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// WorkOrderUseCase genera la werkbon (PDF) de un project para los installateurs.
type WorkOrderUseCase struct {
	repos     repository.Set
	generator ports.WorkOrderGenerator
}

// NewWorkOrderUseCase construye el caso de uso inyectando sus dependencias.
func NewWorkOrderUseCase(repos repository.Set, generator ports.WorkOrderGenerator) *WorkOrderUseCase {
	return &WorkOrderUseCase{repos: repos, generator: generator}
}

// DownloadWorkOrderPDF carga el project con klant, taken y afspraken y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el project no existe.
func (uc *WorkOrderUseCase) DownloadWorkOrderPDF(ctx context.Context, projectID int64) (pdfBytes []byte, filename string, err error) {
	p, err := loadProject(ctx, uc.repos, projectID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateWorkOrderPDF(ctx, p)
	if err != nil {
		return nil, "", fmt.Errorf("werkbon: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("werkbon_project_%d.pdf", p.ID), nil
}
