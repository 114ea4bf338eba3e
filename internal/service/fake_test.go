package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"back2u/internal/asset"
	"back2u/internal/common"
	"back2u/internal/database"
	"back2u/internal/events"
	"back2u/internal/model"
	"back2u/internal/worker"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memStore stands in for PostgreSQL by replacing the store function
// variables for the duration of a test.
type memStore struct {
	mu    sync.Mutex
	users map[string]*model.User
	items map[string]*model.Item
	clock time.Time
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) withOwner(it *model.Item, email bool) model.Item {
	cp := *it
	if u, ok := m.users[it.OwnerID]; ok {
		cp.Owner = &model.Owner{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
		if email {
			cp.Owner.Email = u.Email
		}
	}
	return cp
}

func sortNewestFirst(items []model.Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}

func installMemStore(t *testing.T) *memStore {
	t.Helper()
	m := &memStore{
		users: map[string]*model.User{},
		items: map[string]*model.Item{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	origCreateUser, origGetUserByID, origGetUserByEmail := createUser, getUserByID, getUserByEmail
	origUpdateProfile, origUpdatePassword := updateUserProfile, updateUserPassword
	origCreateItem, origGetItem, origList, origListOwner := createItem, getItemByID, listItems, listItemsByOwner
	origUpdateItem, origResolve, origCount := updateItem, resolveItem, countItemsByOwner
	t.Cleanup(func() {
		createUser, getUserByID, getUserByEmail = origCreateUser, origGetUserByID, origGetUserByEmail
		updateUserProfile, updateUserPassword = origUpdateProfile, origUpdatePassword
		createItem, getItemByID, listItems, listItemsByOwner = origCreateItem, origGetItem, origList, origListOwner
		updateItem, resolveItem, countItemsByOwner = origUpdateItem, origResolve, origCount
	})

	createUser = func(_ context.Context, _ database.Querier, u *model.User) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, existing := range m.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return nil, fmt.Errorf("CreateUser: %w", common.ErrConflict)
			}
		}
		u.CreatedAt = m.tick()
		u.UpdatedAt = u.CreatedAt
		cp := *u
		m.users[u.ID] = &cp
		return u, nil
	}
	getUserByID = func(_ context.Context, _ database.Querier, id string) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		u, ok := m.users[id]
		if !ok {
			return nil, fmt.Errorf("GetUserByID: %w", common.ErrNotFound)
		}
		cp := *u
		return &cp, nil
	}
	getUserByEmail = func(_ context.Context, _ database.Querier, email string) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.users {
			if strings.EqualFold(u.Email, email) {
				cp := *u
				return &cp, nil
			}
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", common.ErrNotFound)
	}
	updateUserProfile = func(_ context.Context, _ database.Querier, id string, p model.ProfilePatch) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		u, ok := m.users[id]
		if !ok {
			return nil, fmt.Errorf("UpdateUserProfile: %w", common.ErrNotFound)
		}
		set := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		set(&u.FirstName, p.FirstName)
		set(&u.LastName, p.LastName)
		set(&u.Bio, p.Bio)
		set(&u.Instagram, p.Instagram)
		set(&u.LinkedIn, p.LinkedIn)
		set(&u.Facebook, p.Facebook)
		set(&u.GitHub, p.GitHub)
		set(&u.Avatar, p.Avatar)
		cp := *u
		return &cp, nil
	}
	updateUserPassword = func(_ context.Context, _ database.Querier, id, hash string) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		u, ok := m.users[id]
		if !ok {
			return fmt.Errorf("UpdateUserPassword: %w", common.ErrNotFound)
		}
		u.PasswordHash = hash
		return nil
	}

	createItem = func(_ context.Context, _ database.Querier, it *model.Item) (*model.Item, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		it.CreatedAt = m.tick()
		it.UpdatedAt = it.CreatedAt
		cp := *it
		m.items[it.ID] = &cp
		return it, nil
	}
	getItemByID = func(_ context.Context, _ database.Querier, id string) (*model.Item, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		it, ok := m.items[id]
		if !ok {
			return nil, fmt.Errorf("GetItemByID: %w", common.ErrNotFound)
		}
		cp := m.withOwner(it, true)
		return &cp, nil
	}
	listItems = func(_ context.Context, _ database.Querier, f model.ItemFilter) ([]model.Item, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		out := []model.Item{}
		for _, it := range m.items {
			if f.Type != "" && it.Type != f.Type {
				continue
			}
			if f.Category != "" && it.Category != f.Category {
				continue
			}
			if f.Search != "" && !strings.Contains(strings.ToLower(it.Title), strings.ToLower(f.Search)) {
				continue
			}
			out = append(out, m.withOwner(it, false))
		}
		sortNewestFirst(out)
		return out, nil
	}
	listItemsByOwner = func(_ context.Context, _ database.Querier, ownerID string) ([]model.Item, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		out := []model.Item{}
		for _, it := range m.items {
			if it.OwnerID == ownerID {
				out = append(out, *it)
			}
		}
		sortNewestFirst(out)
		return out, nil
	}
	updateItem = func(_ context.Context, _ database.Querier, id string, p model.ItemPatch) (*model.Item, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		it, ok := m.items[id]
		if !ok {
			return nil, fmt.Errorf("UpdateItem: %w", common.ErrNotFound)
		}
		if p.Title != nil {
			it.Title = *p.Title
		}
		if p.Description != nil {
			it.Description = *p.Description
		}
		if p.Category != nil {
			it.Category = *p.Category
		}
		if p.Location != nil {
			it.Location = *p.Location
		}
		if p.Image != nil {
			it.Image = *p.Image
		}
		it.UpdatedAt = m.tick()
		cp := *it
		return &cp, nil
	}
	resolveItem = func(_ context.Context, _ database.Querier, id, resolver string, at time.Time) (*model.Item, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		it, ok := m.items[id]
		if !ok || it.IsResolved {
			return nil, fmt.Errorf("ResolveItem: %w", common.ErrNotFound)
		}
		it.IsResolved = true
		it.ResolvedAt = &at
		it.ResolvedBy = &resolver
		it.UpdatedAt = at
		cp := *it
		return &cp, nil
	}
	countItemsByOwner = func(_ context.Context, _ database.Querier, ownerID string) (int, int, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		var total, resolved int
		for _, it := range m.items {
			if it.OwnerID != ownerID {
				continue
			}
			total++
			if it.IsResolved {
				resolved++
			}
		}
		return total, resolved, nil
	}
	return m
}

func (m *memStore) item(id string) model.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.items[id]
}

type FakeHost struct {
	UploadFn func(ctx context.Context, f asset.File, folder string) (string, error)
}

func (f *FakeHost) Upload(ctx context.Context, file asset.File, folder string) (string, error) {
	return f.UploadFn(ctx, file, folder)
}

func okHost(uploads *[]string) *FakeHost {
	return &FakeHost{UploadFn: func(_ context.Context, f asset.File, folder string) (string, error) {
		*uploads = append(*uploads, folder)
		return fmt.Sprintf("https://cdn.test/%s/%d.jpg", folder, len(*uploads)), nil
	}}
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// testApp bundles the services over one memStore.
type testApp struct {
	store     *memStore
	creds     *Credentials
	items     *Items
	published *recordingPublisher
	uploads   []string
}

func newTestApp(t *testing.T) *testApp {
	a := &testApp{store: installMemStore(t), published: &recordingPublisher{}}
	host := okHost(&a.uploads)
	sessions := &Sessions{Secret: []byte("test-secret")}
	a.creds = &Credentials{Sessions: sessions, Assets: host, Cost: bcrypt.MinCost}
	a.items = &Items{
		Assets: host,
		Events: &events.Dispatcher{Pool: worker.Inline{}, Publisher: a.published},
	}
	return a
}

func (a *testApp) register(t *testing.T, first, email string) *model.User {
	t.Helper()
	u, err := a.creds.Register(context.Background(), model.Registration{
		FirstName: first, LastName: "Tester", Email: email, Password: "secret1",
	})
	require.NoError(t, err)
	return u
}

func (a *testApp) post(t *testing.T, ownerID, title string, typ model.ItemType, cat model.Category) *model.Item {
	t.Helper()
	it, err := a.items.Create(context.Background(), ownerID, model.NewItem{
		Title: title, Description: "desc", Type: typ, Category: cat, Location: "Library",
	}, nil)
	require.NoError(t, err)
	return it
}
