// Package admin — service.go содержит логику аутентификации и управления сессиями.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"sparkblaze.io/recognition/internal/common"
	"sparkblaze.io/recognition/internal/config"
	"sparkblaze.io/recognition/internal/features/employees"
)

const (
	maxLoginAttempts = 3
	attemptWindow    = 1 * time.Hour
	sessionTTL       = 24 * time.Hour
)

// Service управляет входом в админ-панель.
type Service struct {
	repo      *Repository
	employees *employees.Service
	cfg       *config.Config
}

// NewService создаёт сервис админ-панели.
func NewService(repo *Repository, employees *employees.Service, cfg *config.Config) *Service {
	return &Service{repo: repo, employees: employees, cfg: cfg}
}

// Login проверяет пароль администратора и выдаёт токен сессии.
// Включает защиту от brute-force: 3 неудачные попытки = блокировка на 1 час.
func (s *Service) Login(ctx context.Context, employeeID, password string) (string, error) {
	// Вход доступен только сотрудникам с ролью admin
	if err := s.employees.RequireAdmin(ctx, employeeID); err != nil {
		return "", err
	}

	// Проверяем лимит попыток
	attempts, err := s.repo.GetRecentAttempts(ctx, employeeID, attemptWindow)
	if err != nil {
		return "", err
	}
	if attempts >= maxLoginAttempts {
		return "", common.ErrTooManyAttempts
	}

	// Проверяем пароль
	match := verifyArgon2id(password, s.cfg.AdminPasswordHash)

	// Логируем попытку
	if err := s.repo.LogAttempt(ctx, employeeID, match); err != nil {
		log.WithError(err).Warn("Ошибка записи попытки входа")
	}

	if !match {
		return "", common.ErrWrongPassword
	}

	// Создаём сессию (24 часа)
	token := generateSecureToken()
	session := &Session{
		EmployeeID:   employeeID,
		SessionToken: token,
		ExpiresAt:    time.Now().Add(sessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"employee_id": employeeID}).Info("Администратор вошёл в панель")
	return token, nil
}

// Authenticate проверяет токен и возвращает сессию.
func (s *Service) Authenticate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, common.ErrSessionExpired
	}
	session, err := s.repo.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrSessionExpired, err)
	}
	if err := s.repo.UpdateActivity(ctx, token); err != nil {
		log.WithError(err).Warn("Ошибка обновления активности сессии")
	}
	return session, nil
}

// Logout деактивирует все сессии сотрудника.
func (s *Service) Logout(ctx context.Context, employeeID string) error {
	return s.repo.DeactivateSessions(ctx, employeeID)
}

// --- Криптографические утилиты ---

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	// Парсим хеш
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	// Извлекаем параметры
	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	// Декодируем соль
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}

	// Декодируем хеш
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	// Вычисляем хеш введённого пароля
	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравниваем в постоянном времени (защита от timing attack)
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}

// generateSecureToken генерирует криптографически безопасный токен сессии.
func generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return base64.URLEncoding.EncodeToString(b)
}
