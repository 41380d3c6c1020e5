// Package rewards — service.go содержит бизнес-логику магазина наград.
package rewards

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Service управляет каталогом наград и обменами.
type Service struct {
	repo *Repository
}

// NewService создаёт новый сервис наград.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create добавляет награду в каталог (только админ).
func (s *Service) Create(ctx context.Context, name string, description *string, cost int) (*Reward, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("название награды обязательно")
	}
	if cost <= 0 {
		return nil, fmt.Errorf("цена награды должна быть больше нуля")
	}

	rw := &Reward{
		RewardID:    uuid.NewString(),
		Name:        name,
		Description: description,
		Cost:        cost,
		Active:      true,
	}
	if err := s.repo.CreateReward(ctx, rw); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"reward_id": rw.RewardID,
		"cost":      rw.Cost,
	}).Info("Награда добавлена в каталог")

	return rw, nil
}

// Catalog возвращает активные награды.
func (s *Service) Catalog(ctx context.Context) ([]*Reward, error) {
	return s.repo.ListActive(ctx)
}

// Deactivate снимает награду с витрины (только админ).
func (s *Service) Deactivate(ctx context.Context, rewardID string) error {
	return s.repo.Deactivate(ctx, rewardID)
}

// Redeem обменивает баллы сотрудника на награду.
func (s *Service) Redeem(ctx context.Context, employeeID, rewardID string) (*Redemption, error) {
	red, err := s.repo.Redeem(ctx, employeeID, rewardID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"employee_id": employeeID,
		"reward_id":   rewardID,
		"cost":        red.Cost,
	}).Info("Награда выкуплена")

	return red, nil
}

// History возвращает последние обмены сотрудника.
func (s *Service) History(ctx context.Context, employeeID string) ([]*Redemption, error) {
	return s.repo.ListRedemptions(ctx, employeeID, 50)
}
