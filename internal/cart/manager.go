// Package cart implements the session cart state manager: the single source
// of truth for the cart's line items, their stock ceilings, persistence, and
// change notification.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/velostore/storefront/internal/domain"
	"github.com/velostore/storefront/internal/store"
	apperrors "github.com/velostore/storefront/pkg/errors"
)

// Observer receives a snapshot of the cart after every effective mutation.
// Observers must not call back into the Manager from the callback.
type Observer func(snapshot domain.Cart)

// Manager owns the in-memory cart for the session. All operations are
// serialized by a single mutex, mutate atomically, and on any effective
// change persist the full snapshot and notify every subscribed observer.
// Persistence failures are logged and swallowed: the in-memory state stays
// authoritative for the rest of the session even if durability failed.
type Manager struct {
	mu        sync.Mutex
	items     []domain.Line
	store     store.Store
	logger    *slog.Logger
	observers []Observer
}

// NewManager creates a cart manager backed by the given store. Call Load
// once at startup to restore the persisted snapshot.
func NewManager(st store.Store, logger *slog.Logger) *Manager {
	return &Manager{
		items:  []domain.Line{},
		store:  st,
		logger: logger,
	}
}

// Load restores the persisted cart snapshot into memory. A missing snapshot
// yields an empty cart; a corrupt one is logged and discarded, also yielding
// an empty cart. Load never fails from the caller's point of view.
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.store.Get(ctx, store.KeyCart)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			m.logger.DebugContext(ctx, "no persisted cart, starting empty")
		} else {
			m.logger.WarnContext(ctx, "failed to read persisted cart, starting empty",
				slog.String("error", err.Error()),
			)
		}
		m.items = []domain.Line{}
		return
	}

	items, err := store.DecodeCart(data)
	if err != nil {
		m.logger.WarnContext(ctx, "discarding unreadable cart snapshot",
			slog.String("error", err.Error()),
		)
		m.items = []domain.Line{}
		return
	}

	m.items = sanitize(items, m.logger)
	m.logger.InfoContext(ctx, "cart restored",
		slog.Int("lines", len(m.items)),
	)
	cartLines.Set(float64(len(m.items)))
}

// sanitize drops persisted lines that violate the cart invariants, keeping
// the rest in their stored order.
func sanitize(items []domain.Line, logger *slog.Logger) []domain.Line {
	kept := make([]domain.Line, 0, len(items))
	for _, l := range items {
		if l.ProductID == "" || l.Quantity < 1 || (l.StockLimit > 0 && l.Quantity > l.StockLimit) {
			logger.Warn("dropping invalid persisted cart line",
				slog.String("product_id", l.ProductID),
				slog.Int("quantity", l.Quantity),
				slog.Int("stock_limit", l.StockLimit),
			)
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// Subscribe registers an observer that is invoked, with a defensive snapshot
// copy, after every effective mutation.
func (m *Manager) Subscribe(fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Snapshot returns a copy of the current cart.
func (m *Manager) Snapshot() domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Total returns the sum of unit price times quantity over all lines.
func (m *Manager) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Cart{Items: m.items}.Total()
}

// Count returns total units held in the cart across all lines.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Cart{Items: m.items}.Count()
}

// AddItem adds quantity units of the product to the cart. If a line for the
// product already exists the quantities merge and the line keeps its
// position; otherwise a new line is appended. When the combined quantity
// would exceed the product's available stock the whole mutation is rejected
// and the cart is left unchanged — quantities are never silently clamped.
func (m *Manager) AddItem(ctx context.Context, product domain.Product, quantity int) Result {
	m.mu.Lock()

	if product.ID == "" {
		return m.rejectLocked("add", "product id is required", 0)
	}
	if quantity < 1 {
		return m.rejectLocked("add", "quantity must be a positive integer", product.Stock)
	}

	if i := (domain.Cart{Items: m.items}).FindLine(product.ID); i >= 0 {
		newQuantity := m.items[i].Quantity + quantity
		if newQuantity > product.Stock {
			return m.rejectLocked("add", stockReason(product.Stock), product.Stock)
		}
		m.items[i].Quantity = newQuantity
		// The stock ceiling was just re-validated against the catalog;
		// the price snapshot keeps its add-time value.
		m.items[i].StockLimit = product.Stock
	} else {
		if quantity > product.Stock {
			return m.rejectLocked("add", stockReason(product.Stock), product.Stock)
		}
		m.items = append(m.items, product.CartLine(quantity))
	}

	cartOperations.WithLabelValues("add", string(StatusApplied)).Inc()
	return m.commitLocked(ctx, "add",
		slog.String("product_id", product.ID),
		slog.Int("quantity", quantity),
	)
}

// RemoveItem removes the line with the given product ID. Removing an absent
// line is a no-op, so removal is idempotent.
func (m *Manager) RemoveItem(ctx context.Context, productID string) Result {
	m.mu.Lock()

	i := domain.Cart{Items: m.items}.FindLine(productID)
	if i < 0 {
		return m.noopLocked("remove")
	}

	m.items = append(m.items[:i], m.items[i+1:]...)

	cartOperations.WithLabelValues("remove", string(StatusApplied)).Inc()
	return m.commitLocked(ctx, "remove",
		slog.String("product_id", productID),
	)
}

// UpdateQuantity sets the quantity of an existing line. A target below 1
// removes the line; a target above the line's recorded stock ceiling is
// rejected and the line keeps its previous quantity.
func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int) Result {
	if quantity < 1 {
		return m.RemoveItem(ctx, productID)
	}

	m.mu.Lock()

	i := domain.Cart{Items: m.items}.FindLine(productID)
	if i < 0 {
		return m.noopLocked("update")
	}

	if quantity > m.items[i].StockLimit {
		return m.rejectLocked("update", stockReason(m.items[i].StockLimit), m.items[i].StockLimit)
	}

	if m.items[i].Quantity == quantity {
		return m.noopLocked("update")
	}

	m.items[i].Quantity = quantity

	cartOperations.WithLabelValues("update", string(StatusApplied)).Inc()
	return m.commitLocked(ctx, "update",
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)
}

// Clear empties the cart unconditionally, persisting and notifying even when
// it was already empty.
func (m *Manager) Clear(ctx context.Context) Result {
	m.mu.Lock()

	m.items = []domain.Line{}

	cartOperations.WithLabelValues("clear", string(StatusApplied)).Inc()
	return m.commitLocked(ctx, "clear")
}

// --- internal ---

// snapshotLocked must be called with the mutex held.
func (m *Manager) snapshotLocked() domain.Cart {
	return domain.Cart{Items: m.items}.Clone()
}

// rejectLocked releases the mutex and returns a rejection result. The cart
// is unchanged, so nothing is persisted and no observer fires.
func (m *Manager) rejectLocked(op, reason string, stock int) Result {
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	cartOperations.WithLabelValues(op, string(StatusRejected)).Inc()
	return Result{Status: StatusRejected, Reason: reason, Stock: stock, Cart: snapshot}
}

// noopLocked releases the mutex and returns a no-op result.
func (m *Manager) noopLocked(op string) Result {
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	cartOperations.WithLabelValues(op, string(StatusNoop)).Inc()
	return Result{Status: StatusNoop, Cart: snapshot}
}

// commitLocked persists the new state, releases the mutex, notifies
// observers, and returns an applied result. Persistence failures are logged,
// never surfaced: the in-memory state is authoritative.
func (m *Manager) commitLocked(ctx context.Context, op string, attrs ...any) Result {
	snapshot := m.snapshotLocked()
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	cartLines.Set(float64(len(m.items)))
	m.mu.Unlock()

	if err := m.persist(ctx, snapshot); err != nil {
		m.logger.ErrorContext(ctx, "failed to persist cart, in-memory state remains authoritative",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}

	for _, fn := range observers {
		fn(snapshot.Clone())
	}

	m.logger.InfoContext(ctx, "cart "+op,
		append(attrs,
			slog.Int("lines", len(snapshot.Items)),
			slog.Int("units", snapshot.Count()),
		)...,
	)

	return Result{Status: StatusApplied, Cart: snapshot}
}

func (m *Manager) persist(ctx context.Context, snapshot domain.Cart) error {
	data, err := store.EncodeCart(snapshot.Items)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, store.KeyCart, data); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

func stockReason(stock int) string {
	if stock <= 0 {
		return "out of stock"
	}
	return fmt.Sprintf("only %d left in stock", stock)
}
