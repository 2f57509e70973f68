package campaigns

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ragavan2104/mailblaster/pkg/cache"
	"github.com/ragavan2104/mailblaster/pkg/db"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// MaxPage keeps the row offset of the last page within range.
const MaxPage = math.MaxInt/MaxLimit + 1

const statsCacheKey = "dashboard-stats"

// Config holds store settings.
type Config struct {
	StatsTTL time.Duration `env:"DASHBOARD_STATS_TTL" envDefault:"30s"`
}

// DB is what the store needs from a pgx pool.
type DB interface {
	db.Querier
	db.TxBeginner
}

// Store persists campaign records in Postgres.
type Store struct {
	db     DB
	stats  cache.Cache[Stats]
	logger *slog.Logger
	now    func() time.Time
	ttl    time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStatsCache memoizes Stats in c.
func WithStatsCache(c cache.Cache[Stats], ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.stats = c
		s.ttl = ttl
	}
}

// WithStoreLogger sets the logger for cache invalidation failures.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStoreClock overrides the time source for the recent-campaign window.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a Store.
func NewStore(pool DB, opts ...StoreOption) *Store {
	s := &Store{
		db:     pool,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const insertCampaign = `INSERT INTO campaigns
(id, subject, body, total_recipients, successful_sends, failed_sends, sent_at, sent_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

var recipientColumns = []string{"campaign_id", "position", "email", "status", "message_id", "error"}

// Save writes the record and its recipients in one transaction.
func (s *Store) Save(ctx context.Context, r Record) (uuid.UUID, error) {
	if !r.valid() {
		return uuid.Nil, ErrCountMismatch
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertCampaign,
			r.ID, r.Subject, r.Body, r.TotalRecipients, r.SuccessfulSends, r.FailedSends, r.SentAt, r.SentBy,
		); err != nil {
			return err
		}

		rows := make([][]any, len(r.Recipients))
		for i, o := range r.Recipients {
			rows[i] = []any{r.ID, i, o.Email, o.Status, nullable(o.MessageID), nullable(o.Error)}
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"campaign_recipients"}, recipientColumns, pgx.CopyFromRows(rows))
		return err
	})
	if err != nil {
		return uuid.Nil, classify(err, ErrSaveFailed)
	}

	if s.stats != nil {
		if err := s.stats.Delete(ctx, statsCacheKey); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate dashboard stats", slog.Any("error", err))
		}
	}
	return r.ID, nil
}

// Pagination describes one page of history.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalEmails int64 `json:"totalEmails"`
	TotalCount  int64 `json:"totalCount"`
	HasMore     bool  `json:"hasMore"`
}

// Page is a slice of records without recipients.
type Page struct {
	Emails     []Record   `json:"emails"`
	Pagination Pagination `json:"pagination"`
}

// NormalizePage applies the pagination defaults and cap.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return min(page, MaxPage), min(limit, MaxLimit)
}

const listCampaigns = `SELECT id, subject, body, total_recipients, successful_sends, failed_sends, sent_at, sent_by
FROM campaigns ORDER BY sent_at DESC, id DESC LIMIT $1 OFFSET $2`

// List returns the newest records first.
func (s *Store) List(ctx context.Context, page, limit int) (Page, error) {
	page, limit = NormalizePage(page, limit)
	skip := int64(page-1) * int64(limit)

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM campaigns`).Scan(&total); err != nil {
		return Page{}, classify(err, nil)
	}

	// Past the last record: nothing to fetch.
	records := []Record{}
	if skip < total {
		rows, err := s.db.Query(ctx, listCampaigns, limit, skip)
		if err != nil {
			return Page{}, classify(err, nil)
		}
		if records, err = pgx.CollectRows(rows, scanRecord); err != nil {
			return Page{}, classify(err, nil)
		}
		if records == nil {
			records = []Record{}
		}
	}

	return Page{
		Emails: records,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
			TotalEmails: total,
			TotalCount:  total,
			HasMore:     skip+int64(len(records)) < total,
		},
	}, nil
}

const (
	getCampaign = `SELECT id, subject, body, total_recipients, successful_sends, failed_sends, sent_at, sent_by
FROM campaigns WHERE id = $1`
	getRecipients = `SELECT email, status, coalesce(message_id, ''), coalesce(error, '')
FROM campaign_recipients WHERE campaign_id = $1 ORDER BY position`
)

// GetByID returns the full record. A malformed id is ErrRecordNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (Record, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return Record{}, ErrRecordNotFound
	}

	rows, err := s.db.Query(ctx, getCampaign, uid)
	if err != nil {
		return Record{}, classify(err, nil)
	}
	r, err := pgx.CollectExactlyOneRow(rows, scanRecord)
	if err != nil {
		return Record{}, classify(err, nil)
	}

	rows, err = s.db.Query(ctx, getRecipients, uid)
	if err != nil {
		return Record{}, classify(err, nil)
	}
	r.Recipients, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (Outcome, error) {
		var o Outcome
		err := row.Scan(&o.Email, &o.Status, &o.MessageID, &o.Error)
		return o, err
	})
	if err != nil {
		return Record{}, classify(err, nil)
	}
	return r, nil
}

const aggregateStats = `SELECT count(*),
	coalesce(sum(successful_sends), 0),
	coalesce(sum(failed_sends), 0),
	count(*) FILTER (WHERE sent_at >= $1)
FROM campaigns`

// AggregateStats computes Stats over every record as of now.
func (s *Store) AggregateStats(ctx context.Context, now time.Time) (Stats, error) {
	var st Stats
	err := s.db.QueryRow(ctx, aggregateStats, now.Add(-recentWindow)).
		Scan(&st.TotalCampaigns, &st.TotalEmailsSent, &st.TotalEmailsFailed, &st.RecentCampaigns)
	if err != nil {
		return Stats{}, classify(err, nil)
	}
	st.SuccessRate = SuccessRate(st.TotalEmailsSent, st.TotalEmailsFailed)
	return st, nil
}

// Stats returns AggregateStats, memoized when a cache is configured.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	compute := func(ctx context.Context) (Stats, error) {
		return s.AggregateStats(ctx, s.now())
	}
	if s.stats == nil {
		return compute(ctx)
	}
	return cache.GetOrSet(ctx, s.stats, statsCacheKey, s.ttl, compute)
}

func scanRecord(row pgx.CollectableRow) (Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.Subject, &r.Body, &r.TotalRecipients, &r.SuccessfulSends, &r.FailedSends, &r.SentAt, &r.SentBy)
	return r, err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// classify maps driver errors onto package sentinels.
func classify(err, fallback error) error {
	switch {
	case db.IsNotFound(err):
		return ErrRecordNotFound
	case db.IsUnavailable(err):
		return errors.Join(ErrStorageUnavailable, err)
	case fallback != nil:
		return errors.Join(fallback, err)
	}
	return err
}
