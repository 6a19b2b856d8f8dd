package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/procura/notice-harvester/internal/models"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// UpsertNotice stores one extracted record, keyed by its source entry name
// so re-running a month replaces rather than duplicates.
func (s *Store) UpsertNotice(ctx context.Context, sourceEntry string, n *models.Notice) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	var buyerName, buyerCity *string
	if n.ContractingParty != nil {
		buyerName = n.ContractingParty.Name
		buyerCity = n.ContractingParty.City
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO notices (
			source_entry, notice_id, issue_date, notice_type, regulatory_domain,
			buyer_name, buyer_city, total_amount, currency, lot_count, payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (source_entry) DO UPDATE SET
			notice_id = EXCLUDED.notice_id,
			issue_date = EXCLUDED.issue_date,
			notice_type = EXCLUDED.notice_type,
			regulatory_domain = EXCLUDED.regulatory_domain,
			buyer_name = EXCLUDED.buyer_name,
			buyer_city = EXCLUDED.buyer_city,
			total_amount = EXCLUDED.total_amount,
			currency = EXCLUDED.currency,
			lot_count = EXCLUDED.lot_count,
			payload = EXCLUDED.payload,
			updated_at = NOW()
	`,
		sourceEntry, n.NoticeID, n.IssueDate, n.NoticeType, n.RegulatoryDomain,
		buyerName, buyerCity, n.Financial.TotalAmount, n.Financial.Currency,
		len(n.Lots), payload,
	)
	if err != nil {
		return fmt.Errorf("upsert notice %s: %w", sourceEntry, err)
	}
	return nil
}

type ListParams struct {
	Query         string // matches buyer name or notice id
	NoticeType    string
	BuyerCity     string
	Currency      string
	IssueDateFrom string
	IssueDateTo   string
	Limit         int
	Offset        int
}

type ListResult struct {
	Notices []models.StoredNotice `json:"notices"`
	Total   int                   `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

const selectCols = `id, source_entry, notice_id, issue_date, notice_type, regulatory_domain,
	buyer_name, buyer_city, total_amount, currency, lot_count, payload, created_at, updated_at`

// buildListFilter turns ListParams into a WHERE clause and its arguments.
// Kept pure so the SQL assembly is testable without a database.
func buildListFilter(p ListParams) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if p.Query != "" {
		add("(buyer_name ILIKE '%%' || $%d || '%%' OR notice_id = $%[1]d)", p.Query)
	}
	if p.NoticeType != "" {
		add("notice_type = $%d", p.NoticeType)
	}
	if p.BuyerCity != "" {
		add("buyer_city = $%d", p.BuyerCity)
	}
	if p.Currency != "" {
		add("currency = $%d", p.Currency)
	}
	if p.IssueDateFrom != "" {
		add("issue_date >= $%d", p.IssueDateFrom)
	}
	if p.IssueDateTo != "" {
		add("issue_date <= $%d", p.IssueDateTo)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (s *Store) ListNotices(ctx context.Context, p ListParams) (ListResult, error) {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	where, args := buildListFilter(p)

	var total int
	countQuery := "SELECT count(*) FROM notices " + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return ListResult{}, fmt.Errorf("count notices: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM notices %s ORDER BY issue_date DESC NULLS LAST, source_entry LIMIT $%d OFFSET $%d",
		selectCols, where, len(args)+1, len(args)+2,
	)
	args = append(args, p.Limit, p.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return ListResult{}, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()

	result := ListResult{
		Notices: []models.StoredNotice{},
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
	}
	for rows.Next() {
		n, err := scanNotice(rows.Scan)
		if err != nil {
			return ListResult{}, fmt.Errorf("scan notice: %w", err)
		}
		result.Notices = append(result.Notices, n)
	}
	return result, rows.Err()
}

// GetNotice looks a record up by its notice id, falling back to the source
// entry name for records whose documents carried no scheme-tagged id.
func (s *Store) GetNotice(ctx context.Context, id string) (models.StoredNotice, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+selectCols+" FROM notices WHERE notice_id = $1 OR source_entry = $1 LIMIT 1", id)
	return scanNotice(row.Scan)
}

func scanNotice(scan func(dest ...interface{}) error) (models.StoredNotice, error) {
	var n models.StoredNotice
	err := scan(
		&n.ID, &n.SourceEntry, &n.NoticeID, &n.IssueDate, &n.NoticeType, &n.RegulatoryDomain,
		&n.BuyerName, &n.BuyerCity, &n.TotalAmount, &n.Currency, &n.LotCount, &n.Payload,
		&n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
}

type Stats struct {
	Total        int `json:"total"`
	WithNoticeID int `json:"with_notice_id"`
	WithAmount   int `json:"with_amount"`
	TotalLots    int `json:"total_lots"`
}

func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.pool.QueryRow(ctx, `
		SELECT count(*), count(notice_id), count(total_amount), COALESCE(sum(lot_count), 0)
		FROM notices
	`).Scan(&st.Total, &st.WithNoticeID, &st.WithAmount, &st.TotalLots)
	if err != nil {
		return Stats{}, fmt.Errorf("stats query: %w", err)
	}
	return st, nil
}
