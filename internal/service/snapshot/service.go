package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/snapshot/models"
)

// Коллекции снимка, они же метки метрик
const (
	CollectionBookings = "bookings"
	CollectionUsers    = "users"
	CollectionKAMs     = "kams"
	CollectionPackages = "packages"
	CollectionSlots    = "slots"
	CollectionSettings = "settings"

	maxSnapshotBookings = 2000
)

// Snapshot всё, что нужно дашборду за один запрос.
// Коллекция, которую не удалось загрузить, остаётся от предыдущего снимка, а ошибка попадает в Errors.
type Snapshot struct {
	Bookings      []*domain.TrainingBooking
	Users         []*domain.User
	KAMs          []*domain.KAM
	Packages      []*domain.TrainingPackage
	Slots         []*domain.TrainingSlot
	Settings      domain.SystemSettings
	SettingsShape domain.TutorialsShape
	Errors        map[string]string
	RefreshedAt   time.Time
}

// Service периодически собирает снимок дашборда
type Service struct {
	bookings BookingRepository
	users    UserRepository
	kams     KAMRepository
	packages PackageRepository
	slots    SlotRepository
	settings SettingsService
	metrics  Metrics
	logger   Logger
	now      func() time.Time

	mu      sync.RWMutex
	current Snapshot
}

// NewService создает сервис снимков. Начальный снимок пустой, с настройками по умолчанию.
func NewService(
	bookings BookingRepository,
	users UserRepository,
	kams KAMRepository,
	packages PackageRepository,
	slots SlotRepository,
	settings SettingsService,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookings: bookings,
		users:    users,
		kams:     kams,
		packages: packages,
		slots:    slots,
		settings: settings,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		current: Snapshot{
			Bookings: []*domain.TrainingBooking{},
			Users:    []*domain.User{},
			KAMs:     []*domain.KAM{},
			Packages: []*domain.TrainingPackage{},
			Slots:    []*domain.TrainingSlot{},
			Settings: domain.DefaultSettings(),
			Errors:   map[string]string{},
		},
	}
}

// Current последний собранный снимок
func (s *Service) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Dashboard текущий снимок в виде ответа
func (s *Service) Dashboard() *models.DashboardResponse {
	snap := s.Current()
	return models.FromDomainSnapshot(
		snap.Bookings, snap.Users, snap.KAMs, snap.Packages, snap.Slots,
		snap.Settings, snap.SettingsShape, snap.Errors, snap.RefreshedAt,
	)
}

// Refresh загружает все коллекции параллельно и независимо друг от друга,
// затем целиком заменяет снимок. Возвращает новый снимок.
func (s *Service) Refresh(ctx context.Context) Snapshot {
	prev := s.Current()
	next := Snapshot{
		Bookings:      prev.Bookings,
		Users:         prev.Users,
		KAMs:          prev.KAMs,
		Packages:      prev.Packages,
		Slots:         prev.Slots,
		Settings:      prev.Settings,
		SettingsShape: prev.SettingsShape,
		Errors:        map[string]string{},
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	fetch := func(collection string, load func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := load()
			if err == nil {
				return
			}

			s.logger.Warn("Refresh: failed to load %s, keeping previous: %v", collection, err)
			s.metrics.ObserveSnapshotFailure(collection)

			mu.Lock()
			next.Errors[collection] = err.Error()
			mu.Unlock()
		}()
	}

	fetch(CollectionBookings, func() error {
		bookings, err := s.bookings.GetByFilter(ctx, domain.BookingsFilter{Limit: maxSnapshotBookings})
		if err != nil {
			return err
		}
		mu.Lock()
		next.Bookings = bookings
		mu.Unlock()
		return nil
	})
	fetch(CollectionUsers, func() error {
		users, err := s.users.GetAll(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		next.Users = users
		mu.Unlock()
		return nil
	})
	fetch(CollectionKAMs, func() error {
		kams, err := s.kams.GetAll(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		next.KAMs = kams
		mu.Unlock()
		return nil
	})
	fetch(CollectionPackages, func() error {
		packages, err := s.packages.GetAll(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		next.Packages = packages
		mu.Unlock()
		return nil
	})
	fetch(CollectionSlots, func() error {
		slots, err := s.slots.GetAll(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		next.Slots = slots
		mu.Unlock()
		return nil
	})
	fetch(CollectionSettings, func() error {
		if err := s.settings.Refresh(ctx); err != nil {
			return err
		}
		settings := s.settings.Current()
		shape := s.settings.TutorialsShape()
		mu.Lock()
		next.Settings = settings
		next.SettingsShape = shape
		mu.Unlock()
		return nil
	})

	wg.Wait()
	next.RefreshedAt = s.now()

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if len(next.Errors) > 0 {
		s.logger.Warn("Refresh: snapshot refreshed with %d failed collections", len(next.Errors))
	}
	return next
}

// RunPoller обновляет снимок сразу и затем каждые interval, пока не отменён ctx
func (s *Service) RunPoller(ctx context.Context, interval time.Duration) {
	s.logger.Info("RunPoller: refreshing dashboard every %s", interval)
	s.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("RunPoller: stopped")
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}
