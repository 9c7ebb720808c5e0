package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hpungsan/concierge/internal/errors"
	"github.com/hpungsan/concierge/internal/sales"
)

// Load inserts a dataset into the snapshot in one transaction.
// Products keep their dataset order as position, which breaks ranking ties.
func (s *Snapshot) Load(ctx context.Context, ds sales.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	dayStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sales_days (day_unix_nano, daily_sales, customers, average_order)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare sales insert: %w", err)
	}
	defer dayStmt.Close()

	for _, d := range ds.Sales {
		if _, err := dayStmt.ExecContext(ctx, d.Date.UnixNano(), d.DailySales, d.Customers, d.AverageOrder); err != nil {
			return fmt.Errorf("insert sales day: %w", err)
		}
	}

	productStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (position, drink, sales, price, rating, category)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare product insert: %w", err)
	}
	defer productStmt.Close()

	for i, p := range ds.Products {
		if _, err := productStmt.ExecContext(ctx, i, p.Drink, p.Sales, p.Price, p.Rating, p.Category); err != nil {
			return fmt.Errorf("insert product %q: %w", p.Drink, err)
		}
	}

	return tx.Commit()
}

// RecentSales returns the last n days in ascending date order.
func (s *Snapshot) RecentSales(ctx context.Context, n int) ([]sales.SalesSample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day_unix_nano, daily_sales, customers, average_order FROM (
			SELECT * FROM sales_days ORDER BY day_unix_nano DESC LIMIT ?
		) ORDER BY day_unix_nano ASC
	`, n)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []sales.SalesSample
	for rows.Next() {
		d, err := scanSalesDay(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// TopProducts returns up to n products by units sold, highest first.
func (s *Snapshot) TopProducts(ctx context.Context, n int) ([]sales.ProductSample, error) {
	return s.queryProducts(ctx, `
		SELECT drink, sales, price, rating, category FROM products
		ORDER BY sales DESC, position ASC LIMIT ?
	`, n)
}

// TopSeller returns the best-selling product.
func (s *Snapshot) TopSeller(ctx context.Context) (sales.ProductSample, error) {
	return s.firstProduct(ctx, `
		SELECT drink, sales, price, rating, category FROM products
		ORDER BY sales DESC, position ASC LIMIT 1
	`)
}

// HighestRated returns the product with the best rating.
func (s *Snapshot) HighestRated(ctx context.Context) (sales.ProductSample, error) {
	return s.firstProduct(ctx, `
		SELECT drink, sales, price, rating, category FROM products
		ORDER BY rating DESC, position ASC LIMIT 1
	`)
}

// BusiestDay returns the day with the most customers; the earliest wins ties.
func (s *Snapshot) BusiestDay(ctx context.Context) (sales.SalesSample, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT day_unix_nano, daily_sales, customers, average_order FROM sales_days
		ORDER BY customers DESC, day_unix_nano ASC LIMIT 1
	`)
	d, err := scanSalesDay(row)
	if err == sql.ErrNoRows {
		return sales.SalesSample{}, errors.NewNotFound("sales day", "busiest")
	}
	if err != nil {
		return sales.SalesSample{}, errors.NewInternal(err)
	}
	return d, nil
}

func (s *Snapshot) firstProduct(ctx context.Context, query string) (sales.ProductSample, error) {
	products, err := s.queryProducts(ctx, query)
	if err != nil {
		return sales.ProductSample{}, err
	}
	if len(products) == 0 {
		return sales.ProductSample{}, errors.NewNotFound("product", "any")
	}
	return products[0], nil
}

func (s *Snapshot) queryProducts(ctx context.Context, query string, args ...any) ([]sales.ProductSample, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []sales.ProductSample
	for rows.Next() {
		var p sales.ProductSample
		if err := rows.Scan(&p.Drink, &p.Sales, &p.Price, &p.Rating, &p.Category); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSalesDay(row scanner) (sales.SalesSample, error) {
	var (
		d    sales.SalesSample
		nano int64
	)
	if err := row.Scan(&nano, &d.DailySales, &d.Customers, &d.AverageOrder); err != nil {
		return sales.SalesSample{}, err
	}
	d.Date = time.Unix(0, nano)
	return d, nil
}
