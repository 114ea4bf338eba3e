package store

import (
	"context"
	"strconv"
	"strings"
	"time"

	"back2u/internal/database"
	"back2u/internal/model"

	"github.com/jackc/pgx/v5"
)

const itemColumns = `i.id, i.title, i.description, i.type, i.category, i.location, i.image,
	i.user_id, i.user_email, i.is_resolved, i.resolved_at, i.resolved_by, i.created_at, i.updated_at`

func itemDest(it *model.Item) []any {
	return []any{
		&it.ID,
		&it.Title,
		&it.Description,
		&it.Type,
		&it.Category,
		&it.Location,
		&it.Image,
		&it.OwnerID,
		&it.OwnerEmail,
		&it.IsResolved,
		&it.ResolvedAt,
		&it.ResolvedBy,
		&it.CreatedAt,
		&it.UpdatedAt,
	}
}

func scanItem(row pgx.Row) (*model.Item, error) {
	it := &model.Item{}
	if err := row.Scan(itemDest(it)...); err != nil {
		return nil, err
	}
	return it, nil
}

// scanItemWithOwner scans item columns followed by the owner's first name,
// last name and email.
func scanItemWithOwner(row pgx.Row) (*model.Item, error) {
	it := &model.Item{Owner: &model.Owner{}}
	dest := append(itemDest(it), &it.Owner.FirstName, &it.Owner.LastName, &it.Owner.Email)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	it.Owner.ID = it.OwnerID
	return it, nil
}

func CreateItem(ctx context.Context, db database.Querier, it *model.Item) (*model.Item, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO items (id, title, description, type, category, location, image, user_id, user_email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at`,
		it.ID,
		it.Title,
		it.Description,
		it.Type,
		it.Category,
		it.Location,
		it.Image,
		it.OwnerID,
		it.OwnerEmail,
	)
	if err := row.Scan(&it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, storeErr("CreateItem", err)
	}
	return it, nil
}

// GetItemByID returns the item with its owner's name and email attached.
func GetItemByID(ctx context.Context, db database.Querier, itemID string) (*model.Item, error) {
	it, err := scanItemWithOwner(db.QueryRow(ctx,
		`SELECT `+itemColumns+`, u.first_name, u.last_name, u.email
		 FROM items i JOIN users u ON u.id = i.user_id
		 WHERE i.id = $1`,
		itemID,
	))
	if err != nil {
		return nil, storeErr("GetItemByID", err)
	}
	return it, nil
}

// escapeLike escapes the LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListItems returns items matching f, newest first. Owner names are attached
// but the owner email is not.
func ListItems(ctx context.Context, db database.Querier, f model.ItemFilter) ([]model.Item, error) {
	var (
		where []string
		args  []any
	)
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, "i.type = $"+strconv.Itoa(len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, "i.category = $"+strconv.Itoa(len(args)))
	}
	if f.Search != "" {
		args = append(args, escapeLike(f.Search))
		where = append(where, "i.title ILIKE '%' || $"+strconv.Itoa(len(args))+" || '%'")
	}

	sql := `SELECT ` + itemColumns + `, u.first_name, u.last_name, u.email
		FROM items i JOIN users u ON u.id = i.user_id`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY i.created_at DESC"

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeErr("ListItems", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := scanItemWithOwner(rows)
		if err != nil {
			return nil, storeErr("ListItems", err)
		}
		it.Owner.Email = ""
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("ListItems", err)
	}
	return items, nil
}

func ListItemsByOwner(ctx context.Context, db database.Querier, ownerID string) ([]model.Item, error) {
	rows, err := db.Query(ctx,
		`SELECT `+itemColumns+`
		 FROM items i
		 WHERE i.user_id = $1
		 ORDER BY i.created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, storeErr("ListItemsByOwner", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, storeErr("ListItemsByOwner", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("ListItemsByOwner", err)
	}
	return items, nil
}

// UpdateItem applies the non-nil fields of p.
func UpdateItem(ctx context.Context, db database.Querier, itemID string, p model.ItemPatch) (*model.Item, error) {
	it, err := scanItem(db.QueryRow(ctx,
		`UPDATE items i SET
			title       = COALESCE($2, i.title),
			description = COALESCE($3, i.description),
			category    = COALESCE($4, i.category),
			location    = COALESCE($5, i.location),
			image       = COALESCE($6, i.image),
			updated_at  = now()
		 WHERE i.id = $1
		 RETURNING `+itemColumns,
		itemID,
		p.Title,
		p.Description,
		p.Category,
		p.Location,
		p.Image,
	))
	if err != nil {
		return nil, storeErr("UpdateItem", err)
	}
	return it, nil
}

// ResolveItem marks the item resolved only if it is not resolved yet. A
// missing row therefore means either an unknown id or a concurrent resolve;
// callers check existence first.
func ResolveItem(ctx context.Context, db database.Querier, itemID, resolverID string, at time.Time) (*model.Item, error) {
	it, err := scanItem(db.QueryRow(ctx,
		`UPDATE items i SET
			is_resolved = true,
			resolved_at = $2,
			resolved_by = $3,
			updated_at  = $2
		 WHERE i.id = $1 AND i.is_resolved = false
		 RETURNING `+itemColumns,
		itemID,
		at,
		resolverID,
	))
	if err != nil {
		return nil, storeErr("ResolveItem", err)
	}
	return it, nil
}

// CountItemsByOwner returns the total and resolved item counts for ownerID.
func CountItemsByOwner(ctx context.Context, db database.Querier, ownerID string) (total, resolved int, err error) {
	row := db.QueryRow(ctx,
		`SELECT count(*), count(*) FILTER (WHERE is_resolved)
		 FROM items WHERE user_id = $1`,
		ownerID,
	)
	if err := row.Scan(&total, &resolved); err != nil {
		return 0, 0, storeErr("CountItemsByOwner", err)
	}
	return total, resolved, nil
}
