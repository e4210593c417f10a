package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/application/audit"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/guard"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// DocumentUseCase documentos de compra. El archivo vive en el almacenamiento
// de objetos externo; aquí solo se registra la referencia opaca (FileKey).
type DocumentUseCase struct {
	repo  repository.DocumentRepository
	guard *guard.Guard
	audit *audit.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repo repository.DocumentRepository, g *guard.Guard, a *audit.Logger) *DocumentUseCase {
	return &DocumentUseCase{repo: repo, guard: g, audit: a}
}

// Create registra un documento. Requiere "Edit Materials".
func (uc *DocumentUseCase) Create(ctx context.Context, actorID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermEditMaterials)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.DocumentNumber) == "" || strings.TrimSpace(in.Type) == "" {
		return nil, domain.ErrInvalidInput
	}
	amount := decimal.Zero
	if in.TotalAmount != nil {
		if in.TotalAmount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		amount = *in.TotalAmount
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	d := &entity.Document{
		ID:             uuid.New().String(),
		Type:           in.Type,
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
		Date:           date,
		VendorName:     in.VendorName,
		FileKey:        in.FileKey,
		TotalAmount:    amount,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionCreate, "documents", d.ID, nil, d, actor.ID, "documento registrado: "+d.DocumentNumber)

	resp := toDocumentResponse(*d)
	return &resp, nil
}

// GetByID devuelve un documento.
func (uc *DocumentUseCase) GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	resp := toDocumentResponse(*d)
	return &resp, nil
}

// List lista documentos con paginación.
func (uc *DocumentUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.DocumentListResponse, error) {
	page.DefaultPage()
	items, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDocumentResponse(d))
	}
	return &dto.DocumentListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un documento no referenciado por lotes. Requiere "Edit Materials".
func (uc *DocumentUseCase) Delete(ctx context.Context, actorID, id string) error {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermEditMaterials)
	if err != nil {
		return err
	}
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Append(ctx, entity.ActionDelete, "documents", id, d, nil, actor.ID, "documento eliminado: "+d.DocumentNumber)
	return nil
}

func toDocumentResponse(d entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:             d.ID,
		Type:           d.Type,
		DocumentNumber: d.DocumentNumber,
		Date:           d.Date,
		VendorName:     d.VendorName,
		FileKey:        d.FileKey,
		TotalAmount:    d.TotalAmount,
		CreatedAt:      d.CreatedAt,
	}
}
