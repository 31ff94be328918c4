// Package memstore is an in-memory implementation of the inventory stores.
// Transactions run against a cloned state that replaces the committed state
// only when the transaction function succeeds, so a failed operation leaves
// nothing behind. All transactions are serialized by one mutex.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	productdomain "github.com/tair/warehouse-inventory/internal/product/domain"
	warehousedomain "github.com/tair/warehouse-inventory/internal/warehouse/domain"
)

type state struct {
	products   map[uint]productdomain.Product
	warehouses map[uint]warehousedomain.Warehouse
	inventory  map[uint]domain.Inventory

	nextProductID   uint
	nextWarehouseID uint
	nextInventoryID uint
}

func newState() *state {
	return &state{
		products:   map[uint]productdomain.Product{},
		warehouses: map[uint]warehousedomain.Warehouse{},
		inventory:  map[uint]domain.Inventory{},
	}
}

// clone copies every table. Stored rows never hold association pointers.
func (s *state) clone() *state {
	c := &state{
		products:        make(map[uint]productdomain.Product, len(s.products)),
		warehouses:      make(map[uint]warehousedomain.Warehouse, len(s.warehouses)),
		inventory:       make(map[uint]domain.Inventory, len(s.inventory)),
		nextProductID:   s.nextProductID,
		nextWarehouseID: s.nextWarehouseID,
		nextInventoryID: s.nextInventoryID,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	return c
}

// accessor runs fn against some version of the state
type accessor interface {
	run(ctx context.Context, fn func(s *state) error) error
}

// Store holds the committed state
type Store struct {
	mu         sync.Mutex
	state      *state
	accesses   int
	failCommit error
}

func New() *Store {
	return &Store{state: newState()}
}

func (st *Store) run(ctx context.Context, fn func(s *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.accesses++
	return fn(st.state)
}

// txState is the working copy of one transaction; the store lock is already held
type txState struct {
	s *state
}

func (t txState) run(ctx context.Context, fn func(s *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.s)
}

// WithinTx implements domain.TxManager. The store lock is held until fn
// returns and is not reentrant: fn must use the repositories on the Tx it is
// given. Calling a repository from Stores() inside fn deadlocks.
func (st *Store) WithinTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.accesses++

	work := txState{s: st.state.clone()}
	if err := fn(bind(work)); err != nil {
		return err
	}
	if err := st.failCommit; err != nil {
		st.failCommit = nil
		return err
	}
	st.state = work.s
	return nil
}

// FailNextCommit makes the next transaction that would commit return err instead
func (st *Store) FailNextCommit(err error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.failCommit = err
}

// Accesses counts reads, writes and transactions served so far
func (st *Store) Accesses() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.accesses
}

// Stores exposes the store through the domain interfaces. These repositories
// take the store lock, so they must not be used inside a WithinTx callback.
func (st *Store) Stores() domain.Stores {
	tx := bind(st)
	return domain.Stores{
		Tx:         st,
		Inventory:  tx.Inventory,
		Warehouses: tx.Warehouses,
		Products:   tx.Products,
	}
}

func bind(a accessor) domain.Tx {
	return domain.Tx{
		Inventory:  &inventoryRepo{a: a},
		Warehouses: &warehouseRepo{a: a},
		Products:   &productRepo{a: a},
	}
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
