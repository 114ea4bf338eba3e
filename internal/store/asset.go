package store

import (
	"context"

	"back2u/internal/database"
	"back2u/internal/model"
)

func CreateAsset(ctx context.Context, db database.Querier, a *model.Asset) (*model.Asset, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO assets (id, folder, name, content_type, data)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		a.ID,
		a.Folder,
		a.Name,
		a.ContentType,
		a.Data,
	)
	if err := row.Scan(&a.CreatedAt); err != nil {
		return nil, storeErr("CreateAsset", err)
	}
	return a, nil
}

func GetAsset(ctx context.Context, db database.Querier, assetID string) (*model.Asset, error) {
	a := &model.Asset{}
	if err := db.QueryRow(ctx,
		`SELECT id, folder, name, content_type, data, created_at
		 FROM assets WHERE id = $1`,
		assetID,
	).Scan(
		&a.ID,
		&a.Folder,
		&a.Name,
		&a.ContentType,
		&a.Data,
		&a.CreatedAt,
	); err != nil {
		return nil, storeErr("GetAsset", err)
	}
	return a, nil
}
