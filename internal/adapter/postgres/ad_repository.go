package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"exo-ads/internal/core/domain"
	"exo-ads/internal/core/port"
)

// Implementation check
var _ port.AdRepository = (*AdRepository)(nil)

// AdRepository implements port.AdRepository using pgxpool for PostgreSQL.
type AdRepository struct {
	pool *pgxpool.Pool
}

// NewAdRepository returns a new repository instance.
func NewAdRepository(pool *pgxpool.Pool) *AdRepository {
	return &AdRepository{pool: pool}
}

const adColumns = `id, type, ui_variant, title, description, bullet_points,
	image_url, local_image_path, cta_text, cta_url,
	display_locations, target_platforms, priority, is_active, start_date, end_date,
	is_dismissible, dismiss_cooldown_days,
	impressions, clicks, dismissals, created_at, updated_at`

// counterColumns whitelists the column per metric. Counter names are
// interpolated into SQL, so anything outside this map is rejected.
var counterColumns = map[domain.Metric]string{
	domain.MetricImpressions: "impressions",
	domain.MetricClicks:      "clicks",
	domain.MetricDismissals:  "dismissals",
}

func scanAd(row pgx.CollectableRow) (domain.Advertisement, error) {
	var (
		ad        domain.Advertisement
		locations []string
		platforms []string
	)
	err := row.Scan(
		&ad.ID,
		&ad.Type,
		&ad.UIVariant,
		&ad.Title,
		&ad.Description,
		&ad.BulletPoints,
		&ad.ImageURL,
		&ad.LocalImagePath,
		&ad.CTAText,
		&ad.CTAURL,
		&locations,
		&platforms,
		&ad.Priority,
		&ad.IsActive,
		&ad.StartDate,
		&ad.EndDate,
		&ad.IsDismissible,
		&ad.DismissCooldownDays,
		&ad.Impressions,
		&ad.Clicks,
		&ad.Dismissals,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return ad, err
	}
	ad.DisplayLocations = toLocations(locations)
	ad.TargetPlatforms = toPlatforms(platforms)
	return ad, nil
}

func toLocations(in []string) []domain.DisplayLocation {
	out := make([]domain.DisplayLocation, len(in))
	for i, v := range in {
		out[i] = domain.DisplayLocation(v)
	}
	return out
}

func toPlatforms(in []string) []domain.Platform {
	out := make([]domain.Platform, len(in))
	for i, v := range in {
		out[i] = domain.Platform(v)
	}
	return out
}

// orEmpty maps a nil slice to an empty one so NOT NULL array columns
// never receive NULL.
func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func fromLocations(in []domain.DisplayLocation) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func fromPlatforms(in []domain.Platform) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

// FindByLocation returns active ads placed at location whose date window
// contains now, highest priority first. Equal priorities fall back to
// insertion order (created_at, then id).
func (r *AdRepository) FindByLocation(ctx context.Context, location domain.DisplayLocation, now time.Time) ([]domain.Advertisement, error) {
	query := `SELECT ` + adColumns + `
		FROM advertisements
		WHERE is_active
		  AND $1 = ANY(display_locations)
		  AND (start_date IS NULL OR start_date <= $2)
		  AND (end_date IS NULL OR end_date >= $2)
		ORDER BY priority DESC, created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, string(location), now)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanAd)
}

// GetAdvertisement returns an ad by id, port.ErrNotFound when missing. A
// malformed id is treated as missing rather than bubbling a syntax error.
func (r *AdRepository) GetAdvertisement(ctx context.Context, id string) (*domain.Advertisement, error) {
	if uuid.Validate(id) != nil {
		return nil, port.ErrNotFound
	}
	rows, err := r.pool.Query(ctx, `SELECT `+adColumns+` FROM advertisements WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	ad, err := pgx.CollectExactlyOneRow(rows, scanAd)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// CreateAdvertisement stores a new ad, assigning its id and timestamps.
func (r *AdRepository) CreateAdvertisement(ctx context.Context, ad *domain.Advertisement) error {
	return r.insertAd(ctx, r.pool, ad)
}

// execer is satisfied by both pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// insertAd runs the create statement against either the pool or an open
// transaction so seeding can reuse it.
func (r *AdRepository) insertAd(ctx context.Context, q execer, ad *domain.Advertisement) error {
	if ad.ID == "" {
		ad.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	_, err := q.Exec(ctx, `INSERT INTO advertisements
		(id, type, ui_variant, title, description, bullet_points,
		 image_url, local_image_path, cta_text, cta_url,
		 display_locations, target_platforms, priority, is_active, start_date, end_date,
		 is_dismissible, dismiss_cooldown_days,
		 impressions, clicks, dismissals, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,0,0,0,$19,$19)`,
		ad.ID, string(ad.Type), string(ad.UIVariant), ad.Title, ad.Description, orEmpty(ad.BulletPoints),
		ad.ImageURL, ad.LocalImagePath, ad.CTAText, ad.CTAURL,
		fromLocations(ad.DisplayLocations), fromPlatforms(ad.TargetPlatforms),
		ad.Priority, ad.IsActive, ad.StartDate, ad.EndDate,
		ad.IsDismissible, ad.DismissCooldownDays, now)
	return err
}

// UpdateAdvertisement overwrites the mutable fields of an existing ad.
// Analytics counters are deliberately not part of the statement.
func (r *AdRepository) UpdateAdvertisement(ctx context.Context, ad *domain.Advertisement) error {
	tag, err := r.pool.Exec(ctx, `UPDATE advertisements SET
		type = $2, ui_variant = $3, title = $4, description = $5, bullet_points = $6,
		image_url = $7, local_image_path = $8, cta_text = $9, cta_url = $10,
		display_locations = $11, target_platforms = $12, priority = $13, is_active = $14,
		start_date = $15, end_date = $16, is_dismissible = $17, dismiss_cooldown_days = $18,
		updated_at = now()
		WHERE id = $1`,
		ad.ID, string(ad.Type), string(ad.UIVariant), ad.Title, ad.Description, orEmpty(ad.BulletPoints),
		ad.ImageURL, ad.LocalImagePath, ad.CTAText, ad.CTAURL,
		fromLocations(ad.DisplayLocations), fromPlatforms(ad.TargetPlatforms),
		ad.Priority, ad.IsActive, ad.StartDate, ad.EndDate,
		ad.IsDismissible, ad.DismissCooldownDays)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// DeleteAdvertisement removes an ad and its per-user records.
func (r *AdRepository) DeleteAdvertisement(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM advertisements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// ListAdvertisements returns every ad for admin tooling, newest first.
func (r *AdRepository) ListAdvertisements(ctx context.Context) ([]domain.Advertisement, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+adColumns+` FROM advertisements ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanAd)
}

// FindDismissalsForUser returns the user's dismissals still live at now.
func (r *AdRepository) FindDismissalsForUser(ctx context.Context, userID string, now time.Time) ([]domain.AdDismissal, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, ad_id, dismissed_at, show_again_after
		FROM ad_dismissals
		WHERE user_id = $1 AND show_again_after > $2`, userID, now)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AdDismissal, error) {
		var d domain.AdDismissal
		err := row.Scan(&d.ID, &d.AdID, &d.DismissedAt, &d.ShowAgainAfter)
		return d, err
	})
}

// UpsertDismissal writes or overwrites the user's dismissal for an ad.
// The unique (user_id, ad_id) index makes repeats update in place, so at
// most one record ever exists per pair.
func (r *AdRepository) UpsertDismissal(ctx context.Context, userID string, d *domain.AdDismissal) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO ad_dismissals (id, user_id, ad_id, dismissed_at, show_again_after)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id, ad_id) DO UPDATE
		SET dismissed_at = EXCLUDED.dismissed_at, show_again_after = EXCLUDED.show_again_after`,
		d.ID, userID, d.AdID, d.DismissedAt, d.ShowAgainAfter)
	return err
}

// FindSeenPromo returns the user's seen record for an ad.
func (r *AdRepository) FindSeenPromo(ctx context.Context, userID, adID string) (*domain.SeenPromo, error) {
	var p domain.SeenPromo
	err := r.pool.QueryRow(ctx, `SELECT id, ad_id, seen_at, version FROM seen_promos
		WHERE user_id = $1 AND ad_id = $2`, userID, adID).
		Scan(&p.ID, &p.AdID, &p.SeenAt, &p.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateSeenPromo stores a seen record; first-seen wins, so a conflicting
// insert leaves the existing record untouched.
func (r *AdRepository) CreateSeenPromo(ctx context.Context, userID string, p *domain.SeenPromo) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO seen_promos (id, user_id, ad_id, seen_at, version)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id, ad_id) DO NOTHING`,
		p.ID, userID, p.AdID, p.SeenAt, p.Version)
	return err
}

// IncrementCounter atomically adds 1 to one analytics counter. The add
// happens inside the database, never as a read-modify-write from client
// state, so concurrent bumps cannot lose updates.
func (r *AdRepository) IncrementCounter(ctx context.Context, adID string, metric domain.Metric) error {
	col, ok := counterColumns[metric]
	if !ok {
		return fmt.Errorf("%w: unknown metric %q", port.ErrValidation, metric)
	}
	tag, err := r.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE advertisements SET %s = %s + 1 WHERE id = $1`, col, col), adID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// SeedAdvertisements creates all given ads inside a single transaction:
// a failure partway rolls everything back so no partial set remains.
func (r *AdRepository) SeedAdvertisements(ctx context.Context, ads []domain.Advertisement) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()
	for i := range ads {
		if err = r.insertAd(ctx, tx, &ads[i]); err != nil {
			return err
		}
	}
	return nil
}
