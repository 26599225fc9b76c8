package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/banquet-booking/internal/model"
)

// BanquetSearchQuery defines filters & pagination for listing banquets.
type BanquetSearchQuery struct {
	Name        string
	Location    string
	MinCapacity int
	Page        int
	PageSize    int
}

// Search lists catalog entries matching q ordered by BanquetID, together
// with the total number of matches.
func (r *BanquetRepo) Search(ctx context.Context, q BanquetSearchQuery) ([]model.Banquet, int64, error) {
	where := []string{}
	args := []any{}

	if q.Name != "" {
		where = append(where, "LOWER(Name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Name)+"%")
	}
	if q.Location != "" {
		where = append(where, "LOWER(Location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}
	if q.MinCapacity > 0 {
		where = append(where, "Capacity >= ?")
		args = append(args, q.MinCapacity)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	if q.PageSize <= 0 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	var (
		total int64
		out   = make([]model.Banquet, 0, limit)
	)
	err := withConn(ctx, r.conns, func(conn *sql.Conn) error {
		if err := conn.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM Banquet WHERE "+cond, args...).Scan(&total); err != nil {
			return classify(err, "count banquets", nil)
		}

		dataSQL := `SELECT BanquetID, Name, Location, Capacity, CostPerDay
			FROM Banquet
			WHERE ` + cond + `
			ORDER BY BanquetID ASC
			LIMIT ? OFFSET ?`
		argsData := append(append([]any{}, args...), limit, offset)

		rows, err := conn.QueryContext(ctx, dataSQL, argsData...)
		if err != nil {
			return classify(err, "search banquets", nil)
		}
		defer rows.Close()

		for rows.Next() {
			var b model.Banquet
			if err := rows.Scan(&b.BanquetID, &b.Name, &b.Location, &b.Capacity, &b.CostPerDay); err != nil {
				return classify(err, "scan banquet", nil)
			}
			out = append(out, b)
		}
		return classify(rows.Err(), "search banquets", nil)
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
