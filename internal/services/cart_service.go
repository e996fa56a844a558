package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"gostore/internal/models"
	"gostore/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProductResolver resolves a product ID into a live price/stock snapshot.
// Implemented by ProductService.
type ProductResolver interface {
	Resolve(productID string) (*models.ProductSnapshot, error)
}

// EventPublisher publishes cart activity events. Implemented by the RabbitMQ
// client; may be nil, in which case events are skipped.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// conflictRetries is how many times a mutation is re-run after losing a
// version race before ErrConflict is surfaced to the caller.
const conflictRetries = 1

// CartService is the cart mutation engine and projection. Every mutation is
// a read-modify-write of the user's whole cart document: resolve the product,
// load the cart, apply the change, save the full document back. Mutations for
// the same user are serialized by a per-user lock; the store's version check
// catches lost updates from other processes.
type CartService struct {
	carts    repositories.CartRepository
	resolver ProductResolver
	events   EventPublisher

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewCartService creates a new CartService. events may be nil.
func NewCartService(carts repositories.CartRepository, resolver ProductResolver, events EventPublisher) *CartService {
	return &CartService{
		carts:     carts,
		resolver:  resolver,
		events:    events,
		userLocks: make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing mutations for one user. Mutations
// for different users never contend.
func (s *CartService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// mutate runs fn against a freshly loaded cart and saves the result. A save
// that loses a version race is retried once with a reloaded cart; a second
// loss surfaces as ErrConflict. fn returning an error aborts without writing.
func (s *CartService) mutate(userID string, fn func(cart *models.Cart) error) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; ; attempt++ {
		cart, err := s.carts.Get(userID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}

		if err := fn(cart); err != nil {
			return err
		}

		err = s.carts.Save(cart)
		if err == nil {
			return nil
		}
		if errors.Is(err, repositories.ErrVersionMismatch) {
			if attempt < conflictRetries {
				continue
			}
			return fmt.Errorf("cart for user %s: %w", userID, ErrConflict)
		}
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
}

// AddItem adds quantity of a product to the user's cart. A repeated add for
// the same product increments the existing line instead of duplicating it.
// The merged quantity is validated against the product's live stock; on
// failure no partial increment is applied.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.CartView, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity %d: %w", quantity, ErrInvalidQuantity)
	}

	err := s.mutate(userID, func(cart *models.Cart) error {
		snapshot, err := s.resolver.Resolve(productID)
		if err != nil {
			return err
		}

		newQty := quantity
		if line := cart.Line(productID); line != nil {
			newQty = line.Quantity + quantity
		}
		if newQty > snapshot.Stock {
			return fmt.Errorf("product %s: requested %d of %d in stock: %w",
				productID, newQty, snapshot.Stock, ErrInsufficientStock)
		}

		cart.Upsert(productID, newQty)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, "item_added", productID)
	return s.ProjectCart(userID)
}

// UpdateItem sets the quantity of an existing line to an absolute value.
// A quantity of zero or less removes the line. Stock is re-resolved here
// rather than trusted from add time, since availability may have shrunk.
func (s *CartService) UpdateItem(userID, productID string, quantity int) (*models.CartView, error) {
	err := s.mutate(userID, func(cart *models.Cart) error {
		if cart.Line(productID) == nil {
			return fmt.Errorf("product %s: %w", productID, ErrLineNotFound)
		}

		if quantity <= 0 {
			cart.Remove(productID)
			return nil
		}

		snapshot, err := s.resolver.Resolve(productID)
		if err != nil {
			return err
		}
		if quantity > snapshot.Stock {
			return fmt.Errorf("product %s: requested %d of %d in stock: %w",
				productID, quantity, snapshot.Stock, ErrInsufficientStock)
		}

		cart.Upsert(productID, quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, "item_updated", productID)
	return s.ProjectCart(userID)
}

// RemoveItem removes the line for a product. Removing an absent line is a
// successful no-op.
func (s *CartService) RemoveItem(userID, productID string) (*models.CartView, error) {
	err := s.mutate(userID, func(cart *models.Cart) error {
		cart.Remove(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, "item_removed", productID)
	return s.ProjectCart(userID)
}

// ClearCart removes all lines from the user's cart. Idempotent.
func (s *CartService) ClearCart(userID string) (*models.CartView, error) {
	lock := s.userLock(userID)
	lock.Lock()
	err := s.carts.Clear(userID)
	lock.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	s.publishEvent(userID, "cleared", "")
	return s.ProjectCart(userID)
}

// ProjectCart computes the client-visible view of the user's cart: each line
// with its resolved product, line subtotals, item count and total. Lines
// whose product no longer exists are dropped from the view rather than
// surfaced as errors. Pure read, safe to call repeatedly.
func (s *CartService) ProjectCart(userID string) (*models.CartView, error) {
	cart, err := s.carts.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	view := &models.CartView{Items: []models.CartViewLine{}}
	total := decimal.Zero

	for _, line := range cart.Lines {
		snapshot, err := s.resolver.Resolve(line.ProductID)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				// Product deleted after being added to the cart: the line
				// is stale and omitted from the view.
				continue
			}
			return nil, err
		}

		subtotal := decimal.NewFromFloat(snapshot.Price).Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Items = append(view.Items, models.CartViewLine{
			Product:  *snapshot,
			Quantity: line.Quantity,
			Subtotal: subtotal.InexactFloat64(),
		})
		view.ItemCount += line.Quantity
		total = total.Add(subtotal)
	}

	view.Total = total.InexactFloat64()
	return view, nil
}

// publishEvent emits a cart activity event. Event delivery is best effort and
// never fails the mutation that triggered it.
func (s *CartService) publishEvent(userID, action, productID string) {
	if s.events == nil {
		return
	}

	body, err := json.Marshal(map[string]string{
		"user_id":    userID,
		"action":     action,
		"product_id": productID,
	})
	if err != nil {
		log.Printf("Failed to marshal cart event: %v", err)
		return
	}
	if err := s.events.Publish("", "cart_events", body); err != nil {
		log.Printf("Warning: failed to publish cart event for user %s: %v", userID, err)
	}
}
