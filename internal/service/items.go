package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"back2u/internal/asset"
	"back2u/internal/common"
	"back2u/internal/database"
	"back2u/internal/events"
	"back2u/internal/model"
	"back2u/internal/store"

	"github.com/google/uuid"
)

var (
	createItem        = store.CreateItem
	getItemByID       = store.GetItemByID
	listItems         = store.ListItems
	listItemsByOwner  = store.ListItemsByOwner
	updateItem        = store.UpdateItem
	resolveItem       = store.ResolveItem
	countItemsByOwner = store.CountItemsByOwner
)

var (
	errItemNotFound    = common.Newf(common.ErrNotFound, "item not found")
	errNotItemOwner    = common.Newf(common.ErrForbidden, "you can only modify your own items")
	errAlreadyResolved = common.Newf(common.ErrAlreadyResolved, "item is already resolved")
	errImageTooLarge   = common.Newf(common.ErrValidation, "image must be at most 5MB")
	errBadTypeFilter   = common.Newf(common.ErrValidation, "type must be one of: lost, found")
	errBadCategory     = common.Newf(common.ErrValidation, "category must be one of: electronics, documents, accessories, others")
	errUserGone        = common.Newf(common.ErrUnauthenticated, "user no longer exists")
)

// Items implements the item lifecycle. An item starts unresolved and may be
// resolved once by its owner.
type Items struct {
	DB     database.Querier
	Assets asset.Host
	Events *events.Dispatcher
	Now    func() time.Time
}

func (s *Items) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Items) emit(key string, it *model.Item) {
	s.Events.Emit(key, events.NewItemEvent(it, s.now()))
}

// Create posts a new item owned by ownerID. The image, if any, is uploaded
// before the record is written so a failed upload leaves nothing behind.
func (s *Items) Create(ctx context.Context, ownerID string, in model.NewItem, image *asset.File) (*model.Item, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	owner, err := getUserByID(ctx, s.DB, ownerID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, errUserGone
	}
	if err != nil {
		return nil, err
	}

	var imageURL string
	if image != nil {
		if len(image.Data) > asset.MaxItemImageSize {
			return nil, errImageTooLarge
		}
		if imageURL, err = upload(ctx, s.Assets, *image, asset.NormalizeImage, asset.FolderItems); err != nil {
			return nil, err
		}
	}

	it, err := createItem(ctx, s.DB, &model.Item{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Category:    in.Category,
		Location:    in.Location,
		Image:       imageURL,
		OwnerID:     owner.ID,
		OwnerEmail:  owner.Email,
	})
	if err != nil {
		return nil, err
	}
	it.Owner = &model.Owner{ID: owner.ID, FirstName: owner.FirstName, LastName: owner.LastName, Email: owner.Email}
	s.emit(events.ItemCreated, it)
	return it, nil
}

// Get returns an item with its owner's contact details. Malformed ids are
// reported as not found.
func (s *Items) Get(ctx context.Context, itemID string) (*model.Item, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, errItemNotFound
	}
	it, err := getItemByID(ctx, s.DB, itemID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, errItemNotFound
	}
	return it, err
}

func (s *Items) owned(ctx context.Context, callerID, itemID string) (*model.Item, error) {
	it, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != callerID {
		return nil, errNotItemOwner
	}
	return it, nil
}

// Update applies the allow-listed fields of p. Type, owner and resolution
// state cannot be changed. An empty patch returns the item unchanged.
func (s *Items) Update(ctx context.Context, callerID, itemID string, p model.ItemPatch, image *asset.File) (*model.Item, error) {
	it, err := s.owned(ctx, callerID, itemID)
	if err != nil {
		return nil, err
	}

	p = model.ItemPatch{
		Title:       trimPtr(p.Title),
		Description: trimPtr(p.Description),
		Category:    p.Category,
		Location:    trimPtr(p.Location),
	}
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if image != nil {
		if len(image.Data) > asset.MaxItemImageSize {
			return nil, errImageTooLarge
		}
		url, err := upload(ctx, s.Assets, *image, asset.NormalizeImage, asset.FolderItems)
		if err != nil {
			return nil, err
		}
		p.Image = &url
	}
	if p.Empty() {
		return it, nil
	}

	updated, err := updateItem(ctx, s.DB, itemID, p)
	if errors.Is(err, common.ErrNotFound) {
		return nil, errItemNotFound
	}
	if err != nil {
		return nil, err
	}
	updated.Owner = it.Owner
	s.emit(events.ItemUpdated, updated)
	return updated, nil
}

// Resolve marks the caller's item resolved. Only the first resolve wins;
// later or concurrent attempts get ErrAlreadyResolved.
func (s *Items) Resolve(ctx context.Context, callerID, itemID string) (*model.Item, error) {
	it, err := s.owned(ctx, callerID, itemID)
	if err != nil {
		return nil, err
	}
	if it.IsResolved {
		return nil, errAlreadyResolved
	}
	resolved, err := resolveItem(ctx, s.DB, itemID, callerID, s.now())
	if errors.Is(err, common.ErrNotFound) {
		return nil, errAlreadyResolved
	}
	if err != nil {
		return nil, err
	}
	resolved.Owner = it.Owner
	s.emit(events.ItemResolved, resolved)
	return resolved, nil
}

// List returns public items matching f, newest first.
func (s *Items) List(ctx context.Context, f model.ItemFilter) ([]model.Item, error) {
	f.Type = model.ItemType(strings.TrimSpace(string(f.Type)))
	f.Category = model.Category(strings.TrimSpace(string(f.Category)))
	f.Search = strings.TrimSpace(f.Search)
	if f.Type != "" && !f.Type.Valid() {
		return nil, errBadTypeFilter
	}
	if f.Category != "" && !f.Category.Valid() {
		return nil, errBadCategory
	}
	return listItems(ctx, s.DB, f)
}

func (s *Items) ListMine(ctx context.Context, callerID string) ([]model.Item, error) {
	return listItemsByOwner(ctx, s.DB, callerID)
}

func (s *Items) DashboardStats(ctx context.Context, callerID string) (model.DashboardStats, error) {
	total, resolved, err := countItemsByOwner(ctx, s.DB, callerID)
	if err != nil {
		return model.DashboardStats{}, err
	}
	return model.DashboardStats{Total: total, Resolved: resolved, Active: total - resolved}, nil
}
