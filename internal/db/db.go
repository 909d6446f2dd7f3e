package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/tally/internal/dates"
	apperrors "github.com/balkashynov/tally/internal/errors"
	"github.com/balkashynov/tally/internal/ids"
	applog "github.com/balkashynov/tally/internal/logger"
	"github.com/balkashynov/tally/internal/models"
)

// Store is the record store: a gorm handle plus the identity generator and
// clock every service stamps new records with. It is passed explicitly to
// whoever needs it; there is no package-level handle.
type Store struct {
	db         *gorm.DB
	ids        ids.Generator
	clock      dates.Clock
	logQueries bool
}

// Option customises a Store.
type Option func(*Store)

// WithIDGenerator sets the identity generator (uuid by default).
func WithIDGenerator(g ids.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock sets the clock used for timestamps and "today".
func WithClock(c dates.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithQueryLogging routes gorm's SQL log into the application logger.
func WithQueryLogging(enabled bool) Option {
	return func(s *Store) { s.logQueries = enabled }
}

// Open sets up the database connection and runs migrations
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		ids:   ids.UUIDGenerator{},
		clock: dates.SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger:  s.gormLogger(),
		NowFunc: func() time.Time { return s.clock.Now() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// one connection keeps the foreign_keys pragma in force for every statement
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	s.db = db

	if err := s.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	applog.Debug("database ready", "path", path)
	return s, nil
}

// dsn enables foreign keys so child completions and exercises cascade, and
// stores times in a fixed sortable layout so date range filters compare correctly.
func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

func (s *Store) gormLogger() logger.Interface {
	if s.logQueries && applog.Logger != nil {
		return logger.New(applog.Logger, logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Info,
		})
	}
	return logger.Default.LogMode(logger.Silent) // Quiet by default
}

// runMigrations creates/updates the database schema
func (s *Store) runMigrations() error {
	return s.db.AutoMigrate(
		&models.Task{},
		&models.Note{},
		&models.Habit{},
		&models.HabitCompletion{},
		&models.Workout{},
		&models.Exercise{},
		&models.WorkoutCompletion{},
	)
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Clock returns the clock the store stamps records with.
func (s *Store) Clock() dates.Clock {
	return s.clock
}

// Tasks returns the task service.
func (s *Store) Tasks() *TaskService {
	return &TaskService{store: s}
}

// Notes returns the note service.
func (s *Store) Notes() *NoteService {
	return &NoteService{store: s}
}

// Habits returns the habit service.
func (s *Store) Habits() *HabitService {
	return newHabitService(s)
}

// Workouts returns the workout service.
func (s *Store) Workouts() *WorkoutService {
	return newWorkoutService(s)
}

// now returns the store clock's current time.
func (s *Store) now() time.Time {
	return s.clock.Now()
}

// storeErr converts a gorm failure into a StoreFailure, leaving the
// NotFound signal untouched.
func storeErr(op string, err error) error {
	if err == nil || apperrors.IsNotFound(err) {
		return err
	}
	return apperrors.Store(op, err)
}
