// Package testutil provee implementaciones en memoria de los puertos de
// persistencia para tests de casos de uso, incluyendo runners transaccionales
// que simulan el rollback restaurando un snapshot del estado cuando el
// callback falla.
package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
	"github.com/tiendaflow/tienda-core/internal/domain/repository"
)

// Mem almacén en memoria compartido por todos los puertos. Cada puerto se
// obtiene con los métodos *Port, que operan sobre el mismo estado.
type Mem struct {
	Stores      map[string]*entity.Store
	Persons     map[string]*entity.Person
	Memberships []*entity.Membership
	Categories  map[string]*entity.Category
	Products    map[string]*entity.Product
	Variants    map[string][]entity.Variant // por producto

	// Errores inyectables para probar rollback.
	FailVariantInsert    error
	FailMembershipCreate error
}

// NewMem construye el almacén vacío.
func NewMem() *Mem {
	return &Mem{
		Stores:     map[string]*entity.Store{},
		Persons:    map[string]*entity.Person{},
		Categories: map[string]*entity.Category{},
		Products:   map[string]*entity.Product{},
		Variants:   map[string][]entity.Variant{},
	}
}

func (m *Mem) StorePort() repository.StoreRepository           { return storePort{m} }
func (m *Mem) PersonPort() repository.PersonRepository         { return personPort{m} }
func (m *Mem) MembershipPort() repository.MembershipRepository { return membershipPort{m} }
func (m *Mem) CategoryPort() repository.CategoryRepository     { return categoryPort{m} }
func (m *Mem) ProductPort() repository.ProductRepository       { return productPort{m} }

// ── runners transaccionales ─────────────────────────────────────────────────

// Run simula la transacción de escritura: si fn falla, restaura el snapshot previo.
func (m *Mem) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	personRepo repository.PersonRepository,
	membershipRepo repository.MembershipRepository,
) error) error {
	snap := m.snapshot()
	if err := fn(m.ProductPort(), m.PersonPort(), m.MembershipPort()); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

// RunProvision simula la transacción de aprovisionamiento con el mismo rollback.
func (m *Mem) RunProvision(_ context.Context, fn func(
	storeRepo repository.StoreRepository,
	personRepo repository.PersonRepository,
	membershipRepo repository.MembershipRepository,
) error) error {
	snap := m.snapshot()
	if err := fn(m.StorePort(), m.PersonPort(), m.MembershipPort()); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *Mem) snapshot() *Mem {
	snap := NewMem()
	for k, v := range m.Stores {
		c := *v
		snap.Stores[k] = &c
	}
	for k, v := range m.Persons {
		c := *v
		snap.Persons[k] = &c
	}
	for _, v := range m.Memberships {
		c := *v
		snap.Memberships = append(snap.Memberships, &c)
	}
	for k, v := range m.Categories {
		c := *v
		snap.Categories[k] = &c
	}
	for k, v := range m.Products {
		c := *v
		snap.Products[k] = &c
	}
	for k, v := range m.Variants {
		snap.Variants[k] = append([]entity.Variant(nil), v...)
	}
	return snap
}

func (m *Mem) restore(snap *Mem) {
	m.Stores = snap.Stores
	m.Persons = snap.Persons
	m.Memberships = snap.Memberships
	m.Categories = snap.Categories
	m.Products = snap.Products
	m.Variants = snap.Variants
}

// ── StoreRepository ─────────────────────────────────────────────────────────

type storePort struct{ m *Mem }

func (p storePort) Create(store *entity.Store) error {
	c := *store
	p.m.Stores[store.ID] = &c
	return nil
}

func (p storePort) GetByID(id string) (*entity.Store, error) {
	s, ok := p.m.Stores[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

// ── PersonRepository ────────────────────────────────────────────────────────

type personPort struct{ m *Mem }

func (p personPort) Create(person *entity.Person) error {
	for _, existing := range p.m.Persons {
		if existing.Email == person.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *person
	p.m.Persons[person.ID] = &c
	return nil
}

func (p personPort) GetByID(id string) (*entity.Person, error) {
	person, ok := p.m.Persons[id]
	if !ok {
		return nil, nil
	}
	c := *person
	return &c, nil
}

func (p personPort) GetByEmail(email string) (*entity.Person, error) {
	for _, person := range p.m.Persons {
		if person.Email == email {
			c := *person
			return &c, nil
		}
	}
	return nil, nil
}

func (p personPort) Update(person *entity.Person) error {
	if existing, ok := p.m.Persons[person.ID]; ok {
		existing.Name = person.Name
		existing.Phone = person.Phone
		existing.Status = person.Status
		existing.UpdatedAt = person.UpdatedAt
	}
	return nil
}

func (p personPort) TouchLastLogin(id string) error {
	if person, ok := p.m.Persons[id]; ok {
		now := time.Now()
		person.LastLoginAt = &now
	}
	return nil
}

func (p personPort) Delete(id string) error {
	delete(p.m.Persons, id)
	return nil
}

// ── MembershipRepository ────────────────────────────────────────────────────

type membershipPort struct{ m *Mem }

func (p membershipPort) Create(mb *entity.Membership) error {
	if p.m.FailMembershipCreate != nil {
		return p.m.FailMembershipCreate
	}
	c := *mb
	p.m.Memberships = append(p.m.Memberships, &c)
	return nil
}

func (p membershipPort) GetByPersonAndStore(personID, storeID string) (*entity.Membership, error) {
	for _, mb := range p.m.Memberships {
		if mb.PersonID == personID && mb.StoreID == storeID {
			c := *mb
			return &c, nil
		}
	}
	return nil, nil
}

func (p membershipPort) FirstByPerson(personID string) (*entity.Membership, error) {
	var first *entity.Membership
	for _, mb := range p.m.Memberships {
		if mb.PersonID != personID {
			continue
		}
		if first == nil || mb.AssignedAt.Before(first.AssignedAt) {
			first = mb
		}
	}
	if first == nil {
		return nil, nil
	}
	c := *first
	return &c, nil
}

func (p membershipPort) ListByStore(storeID string) ([]*entity.StoreMember, error) {
	var members []*entity.StoreMember
	for _, mb := range p.m.Memberships {
		if mb.StoreID != storeID {
			continue
		}
		person, ok := p.m.Persons[mb.PersonID]
		if !ok {
			continue
		}
		members = append(members, &entity.StoreMember{
			Person:     *person,
			Role:       mb.Role,
			AssignedAt: mb.AssignedAt,
		})
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].AssignedAt.Before(members[j].AssignedAt)
	})
	return members, nil
}

func (p membershipPort) UpdateRole(personID, storeID string, role entity.Role) error {
	for _, mb := range p.m.Memberships {
		if mb.PersonID == personID && mb.StoreID == storeID {
			mb.Role = role
		}
	}
	return nil
}

func (p membershipPort) Delete(personID, storeID string) error {
	kept := p.m.Memberships[:0]
	for _, mb := range p.m.Memberships {
		if mb.PersonID == personID && mb.StoreID == storeID {
			continue
		}
		kept = append(kept, mb)
	}
	p.m.Memberships = kept
	return nil
}

func (p membershipPort) CountByPerson(personID string) (int, error) {
	count := 0
	for _, mb := range p.m.Memberships {
		if mb.PersonID == personID {
			count++
		}
	}
	return count, nil
}

func (p membershipPort) CountOwners(storeID string) (int, error) {
	count := 0
	for _, mb := range p.m.Memberships {
		if mb.StoreID == storeID && mb.Role == entity.RoleOwner {
			count++
		}
	}
	return count, nil
}

// ── CategoryRepository ──────────────────────────────────────────────────────

type categoryPort struct{ m *Mem }

func (p categoryPort) Create(category *entity.Category) error {
	c := *category
	p.m.Categories[category.ID] = &c
	return nil
}

func (p categoryPort) ListActiveByStore(storeID string) ([]*entity.Category, error) {
	var categories []*entity.Category
	for _, cat := range p.m.Categories {
		if cat.StoreID != storeID || cat.Status != entity.CategoryActive {
			continue
		}
		c := *cat
		c.ProductCount = 0
		for _, prod := range p.m.Products {
			if prod.StoreID == storeID && prod.CategoryID == cat.ID {
				c.ProductCount++
			}
		}
		categories = append(categories, &c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// ── ProductRepository ───────────────────────────────────────────────────────

type productPort struct{ m *Mem }

func (p productPort) Create(product *entity.Product) error {
	for _, existing := range p.m.Products {
		if existing.StoreID != product.StoreID {
			continue
		}
		if product.Barcode != "" && existing.Barcode == product.Barcode {
			return domain.ErrDuplicate
		}
		if product.SKU != "" && existing.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	c := *product
	c.Variants = nil
	p.m.Products[product.ID] = &c
	return nil
}

func (p productPort) GetByStore(storeID, id string) (*entity.Product, error) {
	prod, ok := p.m.Products[id]
	if !ok || prod.StoreID != storeID {
		return nil, nil
	}
	c := *prod
	if cat, ok := p.m.Categories[c.CategoryID]; ok {
		c.CategoryName = cat.Name
	}
	variants, _ := p.ListVariants(id)
	c.Variants = variants
	return &c, nil
}

func (p productPort) Update(product *entity.Product) error {
	existing, ok := p.m.Products[product.ID]
	if !ok || existing.StoreID != product.StoreID {
		return nil
	}
	c := *product
	c.Variants = nil
	c.StockTotal = existing.StockTotal
	p.m.Products[product.ID] = &c
	return nil
}

func (p productPort) Delete(storeID, id string) error {
	prod, ok := p.m.Products[id]
	if !ok || prod.StoreID != storeID {
		return domain.ErrNotFound
	}
	delete(p.m.Products, id)
	delete(p.m.Variants, id)
	return nil
}

func (p productPort) ListByStore(storeID string, filter repository.ProductFilter) ([]*entity.Product, error) {
	var products []*entity.Product
	for id, prod := range p.m.Products {
		if prod.StoreID != storeID {
			continue
		}
		if filter.CategoryID != "" && prod.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Search != "" && !matchesSearch(prod, filter.Search) {
			continue
		}
		full, _ := p.GetByStore(storeID, id)
		products = append(products, full)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func matchesSearch(prod *entity.Product, search string) bool {
	s := strings.ToLower(search)
	for _, field := range []string{prod.Name, prod.Barcode, prod.SKU, prod.Brand} {
		if strings.Contains(strings.ToLower(field), s) {
			return true
		}
	}
	return false
}

func (p productPort) InsertVariant(v *entity.Variant) error {
	if p.m.FailVariantInsert != nil {
		return p.m.FailVariantInsert
	}
	p.m.Variants[v.ProductID] = append(p.m.Variants[v.ProductID], *v)
	return nil
}

func (p productPort) DeleteVariants(productID string) error {
	delete(p.m.Variants, productID)
	return nil
}

func (p productPort) ListVariants(productID string) ([]entity.Variant, error) {
	variants := append([]entity.Variant(nil), p.m.Variants[productID]...)
	sort.Slice(variants, func(i, j int) bool {
		if variants[i].Size != variants[j].Size {
			return variants[i].Size < variants[j].Size
		}
		return variants[i].Color < variants[j].Color
	})
	return variants, nil
}

func (p productPort) SumVariantStock(productID string) (int, error) {
	total := 0
	for _, v := range p.m.Variants[productID] {
		total += v.Stock
	}
	return total, nil
}

func (p productPort) UpdateStockTotal(productID string, total int) error {
	if prod, ok := p.m.Products[productID]; ok {
		prod.StockTotal = total
	}
	return nil
}
