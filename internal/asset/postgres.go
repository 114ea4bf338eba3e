package asset

import (
	"context"
	"fmt"
	"strings"

	"back2u/internal/common"
	"back2u/internal/database"
	"back2u/internal/model"
	"back2u/internal/store"

	"github.com/google/uuid"
)

var (
	createAsset = store.CreateAsset
	getAsset    = store.GetAsset
)

// Postgres keeps asset bytes in the assets table and serves them from
// <BaseURL>/api/assets/<id>.
type Postgres struct {
	DB      database.Querier
	BaseURL string
}

func NewPostgres(db database.Querier, baseURL string) *Postgres {
	return &Postgres{DB: db, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (p *Postgres) Upload(ctx context.Context, f File, folder string) (string, error) {
	a := &model.Asset{
		ID:          uuid.NewString(),
		Folder:      folder,
		Name:        objectName(f.Filename),
		ContentType: f.ContentType,
		Data:        f.Data,
	}
	if _, err := createAsset(ctx, p.DB, a); err != nil {
		return "", fmt.Errorf("storing asset: %w: %v", common.ErrUpload, err)
	}
	return p.BaseURL + "/api/assets/" + a.ID, nil
}

// Open returns a stored asset. Malformed ids are reported as not found.
func (p *Postgres) Open(ctx context.Context, id string) (*model.Asset, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.Newf(common.ErrNotFound, "asset not found")
	}
	return getAsset(ctx, p.DB, id)
}
