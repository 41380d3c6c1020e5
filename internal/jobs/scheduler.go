// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежедневные поздравления с днём рождения,
// понедельничные анонсы годовщин и пятничный дайджест kudos.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"sparkblaze.io/recognition/internal/common"
	"sparkblaze.io/recognition/internal/config"
	"sparkblaze.io/recognition/internal/features/employees"
	"sparkblaze.io/recognition/internal/features/kudos"
)

// Годовщины анонсируются на неделю вперёд.
const anniversaryLookaheadDays = 7

// Announcer публикует текст в чат-синки компании.
type Announcer interface {
	Announce(ctx context.Context, text string)
}

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron      *cron.Cron
	employees *employees.Service
	kudos     *kudos.Service
	announcer Announcer
}

// NewScheduler создаёт планировщик задач в часовом поясе из конфигурации.
func NewScheduler(cfg *config.Config, employees *employees.Service, kudos *kudos.Service, announcer Announcer) *Scheduler {
	loc, err := time.LoadLocation(cfg.AppTimezone)
	if err != nil {
		log.WithError(err).Warnf("Не удалось загрузить %s, используем UTC", cfg.AppTimezone)
		loc = time.UTC
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		employees: employees,
		kudos:     kudos,
		announcer: announcer,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Поздравления с днём рождения каждый день в 09:00
	s.cron.AddFunc("0 9 * * *", func() {
		log.Info("[CRON] Поздравления с днём рождения")
		if err := s.AnnounceBirthdays(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка поздравлений")
		}
	})

	// Годовщины найма по понедельникам в 09:00
	s.cron.AddFunc("0 9 * * 1", func() {
		log.Info("[CRON] Анонс годовщин")
		if err := s.AnnounceAnniversaries(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка анонса годовщин")
		}
	})

	// Недельный дайджест kudos по пятницам в 16:00
	s.cron.AddFunc("0 16 * * 5", func() {
		log.Info("[CRON] Недельный дайджест kudos")
		if err := s.AnnounceWeeklySummary(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка дайджеста")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик, дождавшись выполняющихся задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

// AnnounceBirthdays поздравляет сегодняшних именинников.
func (s *Scheduler) AnnounceBirthdays(ctx context.Context) error {
	list, err := s.employees.BirthdaysOn(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ошибка поиска именинников: %w", err)
	}

	for _, e := range list {
		s.announcer.Announce(ctx, fmt.Sprintf("🎂 Happy birthday, %s!", e.DisplayName()))
	}
	return nil
}

// AnnounceAnniversaries анонсирует годовщины найма на ближайшую неделю.
func (s *Scheduler) AnnounceAnniversaries(ctx context.Context) error {
	now := time.Now().UTC()
	list, err := s.employees.UpcomingAnniversaries(ctx, now, anniversaryLookaheadDays)
	if err != nil {
		return fmt.Errorf("ошибка поиска годовщин: %w", err)
	}

	for _, e := range list {
		if e.HireDate == nil {
			continue
		}
		years := common.YearsOfService(*e.HireDate, now.AddDate(0, 0, anniversaryLookaheadDays))
		if years < 1 {
			continue
		}
		s.announcer.Announce(ctx, fmt.Sprintf(
			"🎉 %s celebrates %d year(s) with us on %s!",
			e.DisplayName(), years, common.FormatCalendarDay(*e.HireDate),
		))
	}
	return nil
}

// AnnounceWeeklySummary публикует дайджест: сколько kudos отправлено
// за неделю и кто чаще всех получал и отправлял.
func (s *Scheduler) AnnounceWeeklySummary(ctx context.Context) error {
	sum, err := s.kudos.WeeklySummary(ctx)
	if err != nil {
		return fmt.Errorf("ошибка сборки дайджеста: %w", err)
	}
	if sum.Total == 0 {
		log.Debug("[CRON] За неделю kudos не было, дайджест пропущен")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 This week the team shared %d %s!\n", sum.Total, common.PluralizeKudos(sum.Total))
	if len(sum.TopReceivers) > 0 {
		b.WriteString("Most recognized: ")
		b.WriteString(formatTop(sum.TopReceivers))
		b.WriteString("\n")
	}
	if len(sum.TopGivers) > 0 {
		b.WriteString("Top givers: ")
		b.WriteString(formatTop(sum.TopGivers))
	}

	s.announcer.Announce(ctx, strings.TrimSpace(b.String()))
	return nil
}

func formatTop(list []kudos.NameCount) string {
	parts := make([]string, 0, len(list))
	for _, nc := range list {
		parts = append(parts, fmt.Sprintf("%s (%d)", nc.Name, nc.Count))
	}
	return strings.Join(parts, ", ")
}
