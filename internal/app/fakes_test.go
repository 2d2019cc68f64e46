package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"showroom-service/internal/domain/auth"
	"showroom-service/internal/domain/category"
	"showroom-service/internal/domain/image"
	"showroom-service/internal/domain/product"
	"showroom-service/internal/domain/vignette"
	xerrors "showroom-service/internal/pkg/errors"
	"showroom-service/internal/pkg/session"

	"github.com/google/uuid"
)

// memCatalog keeps every table in memory for router tests.
type memCatalog struct {
	mu         sync.Mutex
	categories []category.Category
	products   map[int64]*product.Product
	vignettes  map[int64]*vignette.Vignette
	links      []memLink
	images     map[int64]*image.Image
	nextID     int64
}

type memLink struct {
	id                    int64
	vignetteID, productID int64
	position              int
	notes                 *string
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		products:  map[int64]*product.Product{},
		vignettes: map[int64]*vignette.Vignette{},
		images:    map[int64]*image.Image{},
	}
}

func (m *memCatalog) id() int64 {
	m.nextID++
	return m.nextID
}

// ----- categories -----

type memCategories struct{ *memCatalog }

func (r memCategories) ListActive(_ context.Context) ([]category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []category.Category{}
	for _, c := range r.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memCategories) FindNameByID(_ context.Context, id int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.ID == id {
			return c.Name, nil
		}
	}
	return "", xerrors.ErrNotFound
}

// ----- products -----

type memProducts struct{ *memCatalog }

func (r memProducts) display(p product.Product) product.Product {
	if p.CategoryID != nil {
		for _, c := range r.categories {
			if c.ID == *p.CategoryID && c.IsActive {
				name := c.Name
				p.Category = &name
			}
		}
	}
	return p
}

func (r memProducts) List(_ context.Context, filters *product.ListFilters) ([]product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []product.Product{}
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if filters != nil && filters.Category != "" {
			legacy := p.Category != nil && *p.Category == filters.Category
			byID := p.CategoryID != nil && strconv.FormatInt(*p.CategoryID, 10) == filters.Category
			if !legacy && !byID {
				continue
			}
		}
		out = append(out, r.display(*p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memProducts) FindActiveByID(_ context.Context, id int64) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || !p.IsActive {
		return nil, xerrors.ErrNotFound
	}
	out := r.display(*p)
	return &out, nil
}

func (r memProducts) ListByVignette(_ context.Context, vignetteID int64) ([]product.VignetteProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []product.VignetteProduct{}
	for _, l := range r.links {
		p, ok := r.products[l.productID]
		if l.vignetteID != vignetteID || !ok || !p.IsActive {
			continue
		}
		out = append(out, product.VignetteProduct{Product: r.display(*p), Position: l.position, Notes: l.notes})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r memProducts) apply(p *product.Product, f *product.Fields) {
	p.Name = f.Name
	p.CategoryID = f.CategoryID
	if f.SyncLegacy {
		p.Category = f.LegacyName
	}
	p.Description, p.Manufacturer, p.ModelNumber, p.SKU = f.Description, f.Manufacturer, f.ModelNumber, f.SKU
	p.Price, p.Dimensions, p.Material, p.Color = f.Price, f.Dimensions, f.Material, f.Color
	p.DateUpdated = time.Now()
}

func (r memProducts) Create(_ context.Context, f *product.Fields) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &product.Product{ID: r.id(), IsActive: true, DateAdded: time.Now()}
	r.apply(p, f)
	r.products[p.ID] = p
	return p.ID, nil
}

func (r memProducts) Update(_ context.Context, id int64, f *product.Fields) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return 0, nil
	}
	r.apply(p, f)
	return 1, nil
}

func (r memProducts) SoftDelete(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return 0, nil
	}
	p.IsActive = false
	return 1, nil
}

// ----- vignettes -----

type memVignettes struct{ *memCatalog }

func (r memVignettes) ListActive(_ context.Context) ([]vignette.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []vignette.Summary{}
	for _, v := range r.vignettes {
		if !v.IsActive {
			continue
		}
		s := vignette.Summary{Vignette: *v}
		for _, l := range r.links {
			if l.vignetteID == v.ID {
				s.ProductCount++
			}
		}
		for _, img := range r.images {
			if img.Owner == image.VignetteOwner(v.ID) {
				s.ImageCount++
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memVignettes) FindActiveByID(_ context.Context, id int64) (*vignette.Vignette, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vignettes[id]
	if !ok || !v.IsActive {
		return nil, xerrors.ErrNotFound
	}
	out := *v
	return &out, nil
}

func (r memVignettes) Create(_ context.Context, req *vignette.VignetteRequest) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	v := &vignette.Vignette{
		ID: r.id(), Name: req.Name, Description: req.Description, Location: req.Location, Theme: req.Theme,
		DateCreated: now, DateUpdated: now, IsActive: true,
	}
	r.vignettes[v.ID] = v
	return v.ID, nil
}

func (r memVignettes) Update(_ context.Context, id int64, req *vignette.VignetteRequest) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vignettes[id]
	if !ok {
		return 0, nil
	}
	v.Name, v.Description, v.Location, v.Theme = req.Name, req.Description, req.Location, req.Theme
	v.DateUpdated = time.Now()
	return 1, nil
}

func (r memVignettes) SoftDelete(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vignettes[id]
	if !ok {
		return 0, nil
	}
	v.IsActive = false
	return 1, nil
}

func (r memVignettes) AddProduct(_ context.Context, vignetteID, productID int64, position int, notes *string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.links {
		if l.vignetteID == vignetteID && l.productID == productID {
			return 0, fmt.Errorf("product already in vignette: %w", xerrors.ErrDuplicateEntry)
		}
	}
	l := memLink{id: r.id(), vignetteID: vignetteID, productID: productID, position: position, notes: notes}
	r.links = append(r.links, l)
	return l.id, nil
}

func (r memVignettes) RemoveProduct(_ context.Context, vignetteID, productID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.links {
		if l.vignetteID == vignetteID && l.productID == productID {
			r.links = append(r.links[:i], r.links[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// ----- images -----

type memImages struct{ *memCatalog }

func (r memImages) Create(_ context.Context, owner image.Owner, path string, isPrimary bool, caption *string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img := &image.Image{ID: r.id(), Owner: owner, ImagePath: path, IsPrimary: isPrimary, Caption: caption, DateAdded: time.Now()}
	r.images[img.ID] = img
	return img.ID, nil
}

func (r memImages) FindByID(_ context.Context, id int64) (*image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := *img
	return &out, nil
}

func (r memImages) ListByOwner(_ context.Context, owner image.Owner) ([]image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []image.Image{}
	for _, img := range r.images {
		if img.Owner == owner {
			out = append(out, *img)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memImages) Delete(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.images[id]; !ok {
		return 0, nil
	}
	delete(r.images, id)
	return 1, nil
}

// ----- blobs -----

type memBlobs struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (b *memBlobs) Put(_ context.Context, name, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	path := "/uploads/" + name
	b.files[path] = data
	return path, nil
}

func (b *memBlobs) Delete(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.files, path)
	return nil
}

// ----- users & sessions -----

type memUsers struct {
	mu     sync.Mutex
	byName map[string]*auth.User
}

func (r *memUsers) FindActiveByUsername(_ context.Context, username string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byName[username]
	if !ok || !u.IsActive {
		return nil, xerrors.ErrNotFound
	}
	return u, nil
}

func (r *memUsers) Create(_ context.Context, u *auth.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[u.Username]; ok {
		return 0, fmt.Errorf("user %q already exists: %w", u.Username, xerrors.ErrDuplicateEntry)
	}
	u.ID = int64(len(r.byName) + 1)
	r.byName[u.Username] = u
	return u.ID, nil
}

func (r *memUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byName[username]
	return ok, nil
}

type memSessions struct {
	mu   sync.Mutex
	byID map[string]*session.Data
}

func (s *memSessions) Create(_ context.Context, userID int64, username, ip, ua string) (*session.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	d := &session.Data{ID: uuid.NewString(), UserID: userID, Username: username, IPAddress: ip, UserAgent: ua, LoginAt: now, ExpiresAt: now.Add(time.Hour)}
	s.byID[d.ID] = d
	return d, nil
}

func (s *memSessions) Get(_ context.Context, id string) (*session.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.byID[id]
	if !ok {
		return nil, xerrors.ErrSessionExpired
	}
	return d, nil
}

func (s *memSessions) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	return nil
}
