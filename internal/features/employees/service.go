// Package employees — service.go содержит бизнес-логику управления сотрудниками.
// Сервис координирует регистрацию, обновление профилей и выборки
// для поздравительных рассылок.
package employees

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"sparkblaze.io/recognition/internal/common"
)

// Service управляет сотрудниками.
type Service struct {
	repo *Repository
}

// NewService создаёт новый сервис сотрудников.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create регистрирует нового сотрудника и выдаёт ему публичный UUID.
// Баланс баллов всегда начинается с нуля.
func (s *Service) Create(ctx context.Context, p UpdateProfile, role string) (*Employee, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("имя сотрудника обязательно")
	}
	if strings.TrimSpace(p.Email) == "" {
		return nil, fmt.Errorf("email сотрудника обязателен")
	}
	if role == "" {
		role = RoleUser
	}
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf("недопустимая роль %q", role)
	}

	e := &Employee{
		EmployeeID: uuid.NewString(),
		Name:       strings.TrimSpace(p.Name),
		Email:      strings.ToLower(strings.TrimSpace(p.Email)),
		Department: p.Department,
		Role:       role,
		Birthday:   p.Birthday,
		HireDate:   p.HireDate,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"employee_id": e.EmployeeID,
		"email":       e.Email,
	}).Info("Сотрудник зарегистрирован")

	return e, nil
}

// GetByID возвращает сотрудника по публичному идентификатору.
func (s *Service) GetByID(ctx context.Context, employeeID string) (*Employee, error) {
	return s.repo.GetByID(ctx, employeeID)
}

// List возвращает всех сотрудников.
func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	return s.repo.List(ctx)
}

// Exists проверяет, зарегистрирован ли сотрудник.
func (s *Service) Exists(ctx context.Context, employeeID string) (bool, error) {
	return s.repo.Exists(ctx, employeeID)
}

// UpdateProfile обновляет профильные поля сотрудника.
func (s *Service) UpdateProfile(ctx context.Context, employeeID string, p UpdateProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("имя сотрудника обязательно")
	}
	return s.repo.UpdateProfile(ctx, employeeID, p)
}

// AssignRole назначает роль из закрытого набора {user, admin}.
func (s *Service) AssignRole(ctx context.Context, employeeID, role string) error {
	if role != RoleUser && role != RoleAdmin {
		return fmt.Errorf("недопустимая роль %q", role)
	}
	return s.repo.UpdateRole(ctx, employeeID, role)
}

// Delete удаляет сотрудника (только админ).
func (s *Service) Delete(ctx context.Context, employeeID string) error {
	return s.repo.Delete(ctx, employeeID)
}

// RequireAdmin возвращает ошибку, если сотрудник не администратор.
func (s *Service) RequireAdmin(ctx context.Context, employeeID string) error {
	e, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if !e.IsAdmin() {
		return common.ErrNotAdmin
	}
	return nil
}

// DisplayName возвращает отображаемое имя сотрудника.
// Неизвестный сотрудник получает фолбэк "Someone" вместе с ошибкой.
func (s *Service) DisplayName(ctx context.Context, employeeID string) (string, error) {
	e, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		return "Someone", err
	}
	return e.DisplayName(), nil
}

// BirthdaysOn возвращает именинников на указанную дату.
func (s *Service) BirthdaysOn(ctx context.Context, day time.Time) ([]*Employee, error) {
	return s.repo.GetBirthdaysOn(ctx, day.Month(), day.Day())
}

// UpcomingAnniversaries возвращает сотрудников с годовщиной найма
// в ближайшие days дней.
func (s *Service) UpcomingAnniversaries(ctx context.Context, from time.Time, days int) ([]*Employee, error) {
	return s.repo.GetUpcomingAnniversaries(ctx, from, days)
}
