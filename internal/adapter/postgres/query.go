package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/dbscan"
	"github.com/georgysavva/scany/v2/pgxscan"
)

// Builder is the squirrel statement builder configured for PostgreSQL.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Scan is the scany API shared by all repositories. Unknown columns are
// ignored so views can grow without breaking readers.
var Scan = mustScanAPI()

func mustScanAPI() *pgxscan.API {
	dbAPI, err := pgxscan.NewDBScanAPI(dbscan.WithAllowUnknownColumns(true))
	if err != nil {
		panic(fmt.Sprintf("postgres: scany dbscan api: %v", err))
	}
	api, err := pgxscan.NewAPI(dbAPI)
	if err != nil {
		panic(fmt.Sprintf("postgres: scany pgx api: %v", err))
	}
	return api
}

// Relations readable through Query and QueryByDateRange.
var relations = map[string]struct{}{
	"vw_batch_yield":           {},
	"vw_invoice_aging":         {},
	"vw_customer_metrics":      {},
	"orders":                   {},
	"order_items":              {},
	"invoices":                 {},
	"production_batches":       {},
	"batch_inputs":             {},
	"material_intake_records":  {},
	"inventory_movements":      {},
	"financial_ledger_entries": {},
	"data_integrity_issues":    {},
	"data_integrity_alerts":    {},
	"alert_configs":            {},
	"audit_logs":               {},
	"system_notifications":     {},
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Filters are equality conditions keyed by column name.
type Filters map[string]any

// OrderBy is one ORDER BY term.
type OrderBy struct {
	Column string
	Desc   bool
}

func checkRelation(name string) error {
	if _, ok := relations[name]; !ok {
		return fmt.Errorf("postgres: relation %q is not readable", name)
	}
	return nil
}

func checkColumn(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("postgres: invalid column name %q", name)
	}
	return nil
}

func applyOrder(b sq.SelectBuilder, orderBy []OrderBy) (sq.SelectBuilder, error) {
	for _, o := range orderBy {
		if err := checkColumn(o.Column); err != nil {
			return b, err
		}
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		b = b.OrderBy(o.Column + dir)
	}
	return b, nil
}

// Query reads every row of a view or table matching filters. A read either
// returns all rows of one attempt or an error.
func Query[T any](ctx context.Context, g *Gateway, view string, filters Filters, orderBy ...OrderBy) ([]T, error) {
	if err := checkRelation(view); err != nil {
		return nil, err
	}

	b := Builder.Select("*").From(view)
	if len(filters) > 0 {
		for col := range filters {
			if err := checkColumn(col); err != nil {
				return nil, err
			}
		}
		b = b.Where(sq.Eq(filters))
	}
	b, err := applyOrder(b, orderBy)
	if err != nil {
		return nil, err
	}

	return selectAll[T](ctx, g, "query "+view, b)
}

// QueryByDateRange reads rows whose dateColumn lies within [start, end].
func QueryByDateRange[T any](ctx context.Context, g *Gateway, view, dateColumn string, start, end time.Time, orderBy ...OrderBy) ([]T, error) {
	if err := checkRelation(view); err != nil {
		return nil, err
	}
	if err := checkColumn(dateColumn); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("postgres: date range end %s is before start %s", end, start)
	}

	b := Builder.Select("*").From(view).
		Where(sq.GtOrEq{dateColumn: start}).
		Where(sq.LtOrEq{dateColumn: end})
	b, err := applyOrder(b, orderBy)
	if err != nil {
		return nil, err
	}

	return selectAll[T](ctx, g, "query_by_date "+view, b)
}

// SelectAll runs a prepared builder through the gateway with RetryRead.
func SelectAll[T any](ctx context.Context, g *Gateway, label string, b sq.SelectBuilder) ([]T, error) {
	return selectAll[T](ctx, g, label, b)
}

func selectAll[T any](ctx context.Context, g *Gateway, label string, b sq.SelectBuilder) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build sql: %w", label, err)
	}

	var result []T
	err = g.ExecuteWithRetry(ctx, label, RetryRead, func(ctx context.Context) error {
		var rows []T
		if err := Scan.Select(ctx, g.Querier(ctx), &rows, query, args...); err != nil {
			return err
		}
		result = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CallJSON invokes a database function whose parameters and result are
// jsonb. Each param is marshalled to JSON.
func (g *Gateway) CallJSON(ctx context.Context, fn string, policy Policy, params ...any) ([]byte, error) {
	if !identRe.MatchString(fn) {
		return nil, fmt.Errorf("postgres: invalid function name %q", fn)
	}

	args := make([]any, len(params))
	placeholders := make([]string, len(params))
	for i, p := range params {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal param %d: %w", fn, i+1, err)
		}
		args[i] = string(raw)
		placeholders[i] = fmt.Sprintf("$%d::jsonb", i+1)
	}
	query := fmt.Sprintf("SELECT %s(%s)", fn, strings.Join(placeholders, ", "))

	var out []byte
	err := g.ExecuteWithRetry(ctx, fn, policy, func(ctx context.Context) error {
		var raw []byte
		if err := g.Querier(ctx).QueryRow(ctx, query, args...).Scan(&raw); err != nil {
			return err
		}
		out = raw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
