package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a product repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id, name, price, sale_price, image_url, images, image_alt_texts,
	category, subcategory, color, brand, description, sizes, in_stock, is_new,
	is_on_sale, stock_quantity, measurements, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	stock, err := stockJSON(p.StockQuantity)
	if err != nil {
		return err
	}
	measurements, err := measurementsJSON(p.Measurements)
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products
		  (id, name, price, sale_price, image_url, images, image_alt_texts,
		   category, subcategory, color, brand, description, sizes, in_stock,
		   is_new, is_on_sale, stock_quantity, measurements)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Price, p.SalePrice, p.ImageURL,
		pq.Array(p.Images), pq.Array(p.ImageAltTexts),
		p.Category, nullable(p.Subcategory), nullable(p.Color), nullable(p.Brand),
		p.Description, pq.Array(p.Sizes), p.InStock, p.IsNew, p.IsOnSale,
		stock, measurements).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var subcategory, color, brand sql.NullString
	var stock, measurements []byte
	err := scan(&p.ID, &p.Name, &p.Price, &p.SalePrice, &p.ImageURL,
		pq.Array(&p.Images), pq.Array(&p.ImageAltTexts),
		&p.Category, &subcategory, &color, &brand, &p.Description,
		pq.Array(&p.Sizes), &p.InStock, &p.IsNew, &p.IsOnSale,
		&stock, &measurements, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Subcategory = subcategory.String
	p.Color = color.String
	p.Brand = brand.String
	if stock != nil {
		if err := json.Unmarshal(stock, &p.StockQuantity); err != nil {
			return nil, fmt.Errorf("invalid stock_quantity for product %s: %w", p.ID, err)
		}
	}
	if measurements != nil {
		if err := json.Unmarshal(measurements, &p.Measurements); err != nil {
			return nil, fmt.Errorf("invalid measurements for product %s: %w", p.ID, err)
		}
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, uid)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, q Query) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	n := 1
	add := func(clause string, arg interface{}) {
		query += fmt.Sprintf(clause, n)
		args = append(args, arg)
		n++
	}
	if q.Category != "" {
		add(` AND category=$%d`, q.Category)
	}
	if q.Search != "" {
		// One placeholder reused for both comparisons.
		query += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d)`, n, n)
		args = append(args, "%"+q.Search+"%")
		n++
	}
	if q.IsNew != nil {
		add(` AND is_new=$%d`, *q.IsNew)
	}
	if q.IsOnSale != nil {
		add(` AND is_on_sale=$%d`, *q.IsOnSale)
	}
	if q.InStock != nil {
		add(` AND in_stock=$%d`, *q.InStock)
	}
	if q.MinPrice != nil {
		add(` AND price>=$%d`, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		add(` AND price<=$%d`, *q.MaxPrice)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	stock, err := stockJSON(p.StockQuantity)
	if err != nil {
		return err
	}
	measurements, err := measurementsJSON(p.Measurements)
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name=$1, price=$2, sale_price=$3, image_url=$4, images=$5,
		    image_alt_texts=$6, category=$7, subcategory=$8, color=$9,
		    brand=$10, description=$11, sizes=$12, in_stock=$13, is_new=$14,
		    is_on_sale=$15, stock_quantity=$16, measurements=$17,
		    updated_at=NOW()
		WHERE id=$18
		RETURNING updated_at`,
		p.Name, p.Price, p.SalePrice, p.ImageURL,
		pq.Array(p.Images), pq.Array(p.ImageAltTexts),
		p.Category, nullable(p.Subcategory), nullable(p.Color), nullable(p.Brand),
		p.Description, pq.Array(p.Sizes), p.InStock, p.IsNew, p.IsOnSale,
		stock, measurements, p.ID).Scan(&p.UpdatedAt)
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func stockJSON(m map[string]int) (interface{}, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func measurementsJSON(m map[string]map[string]string) (interface{}, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}
