package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/repository"
)

const statusListLimit = 1000

// StatusManager records and lists client liveness pings.
type StatusManager interface {
	Create(ctx context.Context, clientName string) (*entity.StatusCheck, error)
	List(ctx context.Context) ([]*entity.StatusCheck, error)
}

type statusUseCase struct {
	statusRepo repository.StatusRepository
}

// NewStatusManager creates a new StatusManager use case.
func NewStatusManager(statusRepo repository.StatusRepository) StatusManager {
	return &statusUseCase{statusRepo: statusRepo}
}

func (uc *statusUseCase) Create(ctx context.Context, clientName string) (*entity.StatusCheck, error) {
	check := &entity.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := uc.statusRepo.Save(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

func (uc *statusUseCase) List(ctx context.Context) ([]*entity.StatusCheck, error) {
	return uc.statusRepo.FindAll(ctx, statusListLimit)
}
