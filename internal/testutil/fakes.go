// Package testutil provee implementaciones en memoria de los puertos de
// persistencia para probar los casos de uso sin PostgreSQL. El TxRunner falso
// reproduce la semántica todo-o-nada: si fn devuelve error, el estado del
// almacén se restaura al snapshot previo.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// Store almacén en memoria compartido por los repositorios falsos.
type Store struct {
	mu           sync.Mutex
	nextID       int64
	Products     map[int64]entity.Product
	Categories   map[int64]entity.Category
	Suppliers    map[int64]entity.Supplier
	Sales        map[int64]entity.Sale
	SaleDetails  map[int64]entity.SaleDetail
	Orders       map[int64]entity.PurchaseOrder
	OrderDetails map[int64]entity.PurchaseOrderDetail
	Movements    []entity.InventoryMovement
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		Products:     make(map[int64]entity.Product),
		Categories:   make(map[int64]entity.Category),
		Suppliers:    make(map[int64]entity.Supplier),
		Sales:        make(map[int64]entity.Sale),
		SaleDetails:  make(map[int64]entity.SaleDetail),
		Orders:       make(map[int64]entity.PurchaseOrder),
		OrderDetails: make(map[int64]entity.PurchaseOrderDetail),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) clone() *Store {
	c := NewStore()
	c.nextID = s.nextID
	for k, v := range s.Products {
		c.Products[k] = v
	}
	for k, v := range s.Categories {
		c.Categories[k] = v
	}
	for k, v := range s.Suppliers {
		c.Suppliers[k] = v
	}
	for k, v := range s.Sales {
		c.Sales[k] = v
	}
	for k, v := range s.SaleDetails {
		c.SaleDetails[k] = v
	}
	for k, v := range s.Orders {
		c.Orders[k] = v
	}
	for k, v := range s.OrderDetails {
		c.OrderDetails[k] = v
	}
	c.Movements = append(c.Movements, s.Movements...)
	return c
}

func (s *Store) restore(snap *Store) {
	s.nextID = snap.nextID
	s.Products = snap.Products
	s.Categories = snap.Categories
	s.Suppliers = snap.Suppliers
	s.Sales = snap.Sales
	s.SaleDetails = snap.SaleDetails
	s.Orders = snap.Orders
	s.OrderDetails = snap.OrderDetails
	s.Movements = snap.Movements
}

// SeedProduct inserta un producto y devuelve su ID.
func (s *Store) SeedProduct(p entity.Product) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	} else if p.ID > s.nextID {
		s.nextID = p.ID
	}
	s.Products[p.ID] = p
	return p.ID
}

// SeedSupplier inserta un proveedor y devuelve su ID.
func (s *Store) SeedSupplier(sp entity.Supplier) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sp.ID == 0 {
		sp.ID = s.id()
	} else if sp.ID > s.nextID {
		s.nextID = sp.ID
	}
	s.Suppliers[sp.ID] = sp
	return sp.ID
}

// SeedOrder inserta una orden con sus detalles y devuelve el ID de la cabecera.
func (s *Store) SeedOrder(o entity.PurchaseOrder, details ...entity.PurchaseOrderDetail) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == 0 {
		o.ID = s.id()
	} else if o.ID > s.nextID {
		s.nextID = o.ID
	}
	s.Orders[o.ID] = o
	for _, d := range details {
		if d.ID == 0 {
			d.ID = s.id()
		} else if d.ID > s.nextID {
			s.nextID = d.ID
		}
		d.PurchaseOrderID = o.ID
		s.OrderDetails[d.ID] = d
	}
	return o.ID
}

// MovementsFor devuelve los movimientos registrados para un producto, en orden
// de inserción.
func (s *Store) MovementsFor(productID int64) []entity.InventoryMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.InventoryMovement
	for _, m := range s.Movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

// TxRunner ejecutor transaccional falso con snapshot/rollback.
type TxRunner struct {
	s *Store
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el ejecutor sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos ligados al almacén; si fn falla restaura el snapshot.
func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.s.mu.Lock()
	snap := r.s.clone()
	r.s.mu.Unlock()
	err := fn(NewMovementRepo(r.s), NewProductRepo(r.s), NewOrderRepo(r.s), NewSaleRepo(r.s))
	if err != nil {
		r.s.mu.Lock()
		r.s.restore(snap)
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

// NewProductRepo construye el repositorio.
func NewProductRepo(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.Products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	p.ID = r.s.id()
	r.s.Products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.Products {
		if p.Code == code {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.Products {
		if p.IsActive {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.Products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// Stock se preserva: solo UpdateStock lo muta.
	p.Stock = stored.Stock
	r.s.Products[p.ID] = *p
	return nil
}

func (r *ProductRepo) UpdateStock(id int64, stock int, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.UpdatedAt = updatedAt
	r.s.Products[id] = p
	return nil
}

func (r *ProductRepo) SoftDelete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = false
	r.s.Products[id] = p
	return nil
}

// CategoryRepo repositorio de categorías en memoria.
type CategoryRepo struct{ s *Store }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// NewCategoryRepo construye el repositorio.
func NewCategoryRepo(s *Store) *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) Create(cat *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.Categories {
		if existing.Name == cat.Name {
			return domain.ErrDuplicate
		}
	}
	cat.ID = r.s.id()
	r.s.Categories[cat.ID] = *cat
	return nil
}

func (r *CategoryRepo) GetByID(id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cat, ok := r.s.Categories[id]
	if !ok {
		return nil, nil
	}
	return &cat, nil
}

func (r *CategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, cat := range r.s.Categories {
		cp := cat
		out = append(out, &cp)
	}
	return out, nil
}

func (r *CategoryRepo) Update(cat *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Categories[cat.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Categories[cat.ID] = *cat
	return nil
}

func (r *CategoryRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Categories, id)
	return nil
}

// SupplierRepo repositorio de proveedores en memoria.
type SupplierRepo struct{ s *Store }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// NewSupplierRepo construye el repositorio.
func NewSupplierRepo(s *Store) *SupplierRepo { return &SupplierRepo{s: s} }

func (r *SupplierRepo) Create(sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp.ID = r.s.id()
	r.s.Suppliers[sp.ID] = *sp
	return nil
}

func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.Suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Supplier
	for _, sp := range r.s.Suppliers {
		cp := sp
		out = append(out, &cp)
	}
	return out, nil
}

func (r *SupplierRepo) Update(sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Suppliers[sp.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Suppliers[sp.ID] = *sp
	return nil
}

func (r *SupplierRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Suppliers, id)
	return nil
}

// SaleRepo repositorio de ventas en memoria.
type SaleRepo struct{ s *Store }

var _ repository.SaleRepository = (*SaleRepo)(nil)

// NewSaleRepo construye el repositorio.
func NewSaleRepo(s *Store) *SaleRepo { return &SaleRepo{s: s} }

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale.ID = r.s.id()
	r.s.Sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) CreateDetail(d *entity.SaleDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = r.s.id()
	r.s.SaleDetails[d.ID] = *d
	return nil
}

func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.Sales[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for _, sale := range r.s.Sales {
		cp := sale
		out = append(out, &cp)
	}
	return out, nil
}

func (r *SaleRepo) ListDetails(saleID int64) ([]*entity.SaleDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SaleDetail
	for _, d := range r.s.SaleDetails {
		if d.SaleID == saleID {
			cp := d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SaleRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for detailID, d := range r.s.SaleDetails {
		if d.SaleID == id {
			delete(r.s.SaleDetails, detailID)
		}
	}
	delete(r.s.Sales, id)
	return nil
}

// OrderRepo repositorio de órdenes de compra en memoria.
type OrderRepo struct{ s *Store }

var _ repository.PurchaseOrderRepository = (*OrderRepo)(nil)

// NewOrderRepo construye el repositorio.
func NewOrderRepo(s *Store) *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.Orders {
		if existing.OrderNumber == o.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	o.ID = r.s.id()
	r.s.Orders[o.ID] = *o
	return nil
}

func (r *OrderRepo) CreateDetail(d *entity.PurchaseOrderDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = r.s.id()
	r.s.OrderDetails[d.ID] = *d
	return nil
}

func (r *OrderRepo) GetByID(id int64) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.Orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepo) GetForUpdate(id int64) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *OrderRepo) ExistsByOrderNumber(orderNumber string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.Orders {
		if o.OrderNumber == orderNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *OrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PurchaseOrder
	for _, o := range r.s.Orders {
		cp := o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *OrderRepo) ListDetails(orderID int64) ([]*entity.PurchaseOrderDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PurchaseOrderDetail
	for _, d := range r.s.OrderDetails {
		if d.PurchaseOrderID == orderID {
			cp := d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *OrderRepo) GetDetail(detailID int64) (*entity.PurchaseOrderDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.OrderDetails[detailID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *OrderRepo) Update(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Orders[o.ID] = *o
	return nil
}

func (r *OrderRepo) UpdateDetailReceived(detailID int64, quantityReceived int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.OrderDetails[detailID]
	if !ok {
		return domain.ErrNotFound
	}
	d.QuantityReceived = quantityReceived
	r.s.OrderDetails[detailID] = d
	return nil
}

func (r *OrderRepo) MarkDelivered(id int64, receivedDate time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.Orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = entity.OrderStatusDelivered
	o.ReceivedDate = &receivedDate
	r.s.Orders[id] = o
	return nil
}

func (r *OrderRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for detailID, d := range r.s.OrderDetails {
		if d.PurchaseOrderID == id {
			delete(r.s.OrderDetails, detailID)
		}
	}
	delete(r.s.Orders, id)
	return nil
}

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct{ s *Store }

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

// NewMovementRepo construye el repositorio.
func NewMovementRepo(s *Store) *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) Create(m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.id()
	r.s.Movements = append(r.s.Movements, *m)
	return nil
}

func (r *MovementRepo) GetByID(id int64) (*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.Movements {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) List(limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InventoryMovement
	for i := len(r.s.Movements) - 1; i >= 0; i-- {
		cp := r.s.Movements[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InventoryMovement
	for i := len(r.s.Movements) - 1; i >= 0; i-- {
		if r.s.Movements[i].ProductID == productID {
			cp := r.s.Movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}
