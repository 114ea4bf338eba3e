// File: internal/model/item.go
package model

import "time"

type ItemType string

const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeLost || t == ItemTypeFound
}

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryDocuments   Category = "documents"
	CategoryAccessories Category = "accessories"
	CategoryOthers      Category = "others"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryDocuments, CategoryAccessories, CategoryOthers:
		return true
	}
	return false
}

const (
	MaxTitleLength       = 20
	MaxDescriptionLength = 1000
)

type Item struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Type        ItemType   `db:"type" json:"type"`
	Category    Category   `db:"category" json:"category"`
	Location    string     `db:"location" json:"location"`
	Image       string     `db:"image" json:"image"`
	OwnerID     string     `db:"user_id" json:"user_id"`
	OwnerEmail  string     `db:"user_email" json:"user_email"`
	IsResolved  bool       `db:"is_resolved" json:"is_resolved"`
	ResolvedAt  *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
	ResolvedBy  *string    `db:"resolved_by" json:"resolved_by,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	// Owner is populated on reads that join the users table.
	Owner *Owner `db:"-" json:"owner,omitempty"`
}

// Owner is the public identity of an item's creator.
type Owner struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

// NewItem is the input of a new posting.
type NewItem struct {
	Title       string   `json:"title" form:"title" validate:"required,max=20"`
	Description string   `json:"description" form:"description" validate:"required,max=1000"`
	Type        ItemType `json:"type" form:"type" validate:"required,oneof=lost found"`
	Category    Category `json:"category" form:"category" validate:"required,oneof=electronics documents accessories others"`
	Location    string   `json:"location" form:"location" validate:"required,max=200"`
}

// ItemPatch is the allow-list of mutable item fields. Type, owner and
// resolution state are deliberately absent.
type ItemPatch struct {
	Title       *string   `json:"title" validate:"omitnil,min=1,max=20"`
	Description *string   `json:"description" validate:"omitnil,min=1,max=1000"`
	Category    *Category `json:"category" validate:"omitnil,oneof=electronics documents accessories others"`
	Location    *string   `json:"location" validate:"omitnil,min=1,max=200"`
	Image       *string   `json:"-"`
}

func (p ItemPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Location == nil && p.Image == nil
}

// ItemFilter narrows a public listing. Zero values mean "unconstrained".
type ItemFilter struct {
	Type     ItemType
	Category Category
	Search   string
}

type DashboardStats struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
	Active   int `json:"active"`
}

// Asset is an uploaded binary served back by URL.
type Asset struct {
	ID          string    `db:"id"`
	Folder      string    `db:"folder"`
	Name        string    `db:"name"`
	ContentType string    `db:"content_type"`
	Data        []byte    `db:"data"`
	CreatedAt   time.Time `db:"created_at"`
}
