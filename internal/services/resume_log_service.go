package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	apperrors "resumeapi/internal/errors"
	"resumeapi/internal/logger"
	"resumeapi/internal/models"
	"resumeapi/internal/pagination"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

const (
	pingTimeout = 2 * time.Second
	// schemaRetryInterval spaces out schema setup attempts after a failure.
	schemaRetryInterval = 30 * time.Second
)

var (
	codeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_code_cache_hits_total",
		Help: "Resume code lookups answered from the in-memory cache.",
	})
	codeCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_code_cache_misses_total",
		Help: "Resume code lookups that went to the database.",
	})
	storeReadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_log_read_failures_total",
		Help: "Resume log reads that degraded to an empty result.",
	}, []string{"operation"})
)

// resumeLogService stores and queries resume generation logs.
type resumeLogService struct {
	db    *gorm.DB
	cache *expirable.LRU[string, models.ResumeLog]

	schemaMu      sync.Mutex
	schemaSetup   func() error
	schemaReady   bool
	schemaTriedAt time.Time
	now           func() time.Time
}

// LogOption customizes a resume log service.
type LogOption func(*resumeLogService)

// WithSchemaSetup runs setup after the first successful ping, so a database
// that comes up after the service still gets its tables. A failed setup is
// retried on a later successful ping.
func WithSchemaSetup(setup func() error) LogOption {
	return func(s *resumeLogService) { s.schemaSetup = setup }
}

// NewResumeLogService creates a ResumeLogServicer backed by db. Found codes
// are cached in an LRU of cacheSize entries for ttl. The service never
// updates or deletes rows, but rows removed outside it keep answering
// FindByCode and LookupCode until their cache entry expires.
func NewResumeLogService(db *gorm.DB, cacheSize int, ttl time.Duration, opts ...LogOption) ResumeLogServicer {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	s := &resumeLogService{
		db:    db,
		cache: expirable.NewLRU[string, models.ResumeLog](cacheSize, nil, ttl),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available pings the database.
func (s *resumeLogService) Available(ctx context.Context) bool {
	if s.db == nil {
		return false
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if sqlDB.PingContext(ctx) != nil {
		return false
	}
	s.ensureSchema()
	return true
}

func (s *resumeLogService) ensureSchema() {
	if s.schemaSetup == nil {
		return
	}
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()

	if s.schemaReady {
		return
	}
	now := s.now()
	if !s.schemaTriedAt.IsZero() && now.Sub(s.schemaTriedAt) < schemaRetryInterval {
		return
	}
	s.schemaTriedAt = now

	if err := s.schemaSetup(); err != nil {
		logger.Get().Errorw("resume log schema setup failed, will retry", "error", err)
		return
	}
	s.schemaReady = true
}

// Insert persists a new log entry.
func (s *resumeLogService) Insert(ctx context.Context, entry *models.ResumeLog) error {
	if entry == nil || strings.TrimSpace(entry.Username) == "" || strings.TrimSpace(entry.ResumeCode) == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "username and resume code are required")
	}
	if s.db == nil {
		return apperrors.Wrap(apperrors.ErrPersistence, errors.New("database not configured"))
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.Wrap(apperrors.ErrDuplicateCode, err)
		}
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.cache.Add(entry.ResumeCode, *entry)
	return nil
}

// CodeExists reports whether code is already taken. Unlike the read
// operations it returns query errors so callers can tell "free" from "unknown".
func (s *resumeLogService) CodeExists(ctx context.Context, code string) (bool, error) {
	code = strings.TrimSpace(code)
	if _, ok := s.cache.Get(code); ok {
		codeCacheHits.Inc()
		return true, nil
	}
	codeCacheMisses.Inc()
	if s.db == nil {
		return false, errors.New("database not configured")
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.ResumeLog{}).
		Where("resume_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByCode returns the entry for code, or nil.
func (s *resumeLogService) FindByCode(ctx context.Context, code string) *models.ResumeLog {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	if cached, ok := s.cache.Get(code); ok {
		codeCacheHits.Inc()
		return &cached
	}
	codeCacheMisses.Inc()
	if s.db == nil {
		return nil
	}

	var entries []models.ResumeLog
	err := s.db.WithContext(ctx).
		Where("resume_code = ?", code).
		Order("created_at DESC").
		Limit(1).
		Find(&entries).Error
	if err != nil {
		s.readFailed("find_by_code", err)
		return nil
	}
	if len(entries) == 0 {
		return nil
	}

	s.cache.Add(code, entries[0])
	return &entries[0]
}

// FindByUsername returns the username's entries, newest first.
func (s *resumeLogService) FindByUsername(ctx context.Context, username string) []models.ResumeLog {
	entries := []models.ResumeLog{}
	if s.db == nil {
		return entries
	}
	err := s.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		s.readFailed("find_by_username", err)
		return []models.ResumeLog{}
	}
	return entries
}

// FindAll returns every entry, newest first.
func (s *resumeLogService) FindAll(ctx context.Context) []models.ResumeLog {
	entries := []models.ResumeLog{}
	if s.db == nil {
		return entries
	}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		s.readFailed("find_all", err)
		return []models.ResumeLog{}
	}
	return entries
}

// FindPage returns one page of entries, newest first.
func (s *resumeLogService) FindPage(ctx context.Context, page pagination.PageRequest) pagination.PageResponse[models.ResumeLog] {
	page.Defaults()
	empty := pagination.NewPageResponse[models.ResumeLog](nil, page.Page, page.PageSize, 0)
	if s.db == nil {
		return empty
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.ResumeLog{}).Count(&total).Error; err != nil {
		s.readFailed("find_page", err)
		return empty
	}

	var entries []models.ResumeLog
	err := s.db.WithContext(ctx).
		Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		s.readFailed("find_page", err)
		return empty
	}
	return pagination.NewPageResponse(entries, page.Page, page.PageSize, total)
}

// AggregateByUsername groups entries per username, ordered by count
// descending. Ties go to the username that generated most recently, then
// alphabetically.
func (s *resumeLogService) AggregateByUsername(ctx context.Context) []models.UserStats {
	stats := []models.UserStats{}
	if s.db == nil {
		return stats
	}

	var entries []models.ResumeLog
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&entries).Error; err != nil {
		s.readFailed("aggregate_by_username", err)
		return stats
	}

	return aggregate(entries)
}

// aggregate folds entries sorted by CreatedAt ascending into per-user stats.
func aggregate(entries []models.ResumeLog) []models.UserStats {
	index := make(map[string]int)
	stats := []models.UserStats{}

	for _, e := range entries {
		i, ok := index[e.Username]
		if !ok {
			index[e.Username] = len(stats)
			stats = append(stats, models.UserStats{
				Username:       e.Username,
				ResumeCodes:    []string{},
				FirstGenerated: e.CreatedAt,
				LastGenerated:  e.CreatedAt,
			})
			i = len(stats) - 1
		}
		st := &stats[i]
		st.TotalResumes++
		st.ResumeCodes = append(st.ResumeCodes, e.ResumeCode)
		if e.CreatedAt.Before(st.FirstGenerated) {
			st.FirstGenerated = e.CreatedAt
		}
		if e.CreatedAt.After(st.LastGenerated) {
			st.LastGenerated = e.CreatedAt
		}
	}

	sort.SliceStable(stats, func(a, b int) bool {
		if stats[a].TotalResumes != stats[b].TotalResumes {
			return stats[a].TotalResumes > stats[b].TotalResumes
		}
		if !stats[a].LastGenerated.Equal(stats[b].LastGenerated) {
			return stats[a].LastGenerated.After(stats[b].LastGenerated)
		}
		return stats[a].Username < stats[b].Username
	})
	return stats
}

// LookupCode resolves code and attaches the full history of its username.
func (s *resumeLogService) LookupCode(ctx context.Context, code string) *models.CodeValidation {
	entry := s.FindByCode(ctx, code)
	if entry == nil {
		return nil
	}

	history := s.FindByUsername(ctx, entry.Username)
	if len(history) == 0 {
		// the history query degraded; the entry itself is still known
		history = []models.ResumeLog{*entry}
	}

	items := make([]models.CodeHistoryItem, 0, len(history))
	for _, h := range history {
		items = append(items, models.CodeHistoryItem{Code: h.ResumeCode, GeneratedAt: h.CreatedAt})
	}

	return &models.CodeValidation{
		Username:       entry.Username,
		Code:           entry.ResumeCode,
		GeneratedAt:    entry.CreatedAt,
		TotalResumes:   len(history),
		AllCodes:       items,
		FirstGenerated: history[len(history)-1].CreatedAt,
		LastGenerated:  history[0].CreatedAt,
	}
}

func (s *resumeLogService) readFailed(op string, err error) {
	storeReadFailures.WithLabelValues(op).Inc()
	logger.Get().Warnw("resume log read degraded to empty result",
		"operation", op,
		"error", err,
	)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
