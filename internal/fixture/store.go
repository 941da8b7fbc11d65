package fixture

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/simplecom/storefront-smoke/internal/rules"
)

// Product is one inventory item.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       string
}

// Catalog is the demo inventory, in display order.
var Catalog = []Product{
	{
		ID:          "sauce-labs-backpack",
		Name:        "Sauce Labs Backpack",
		Description: "carry.allTheThings() with the sleek, streamlined Sly Pack.",
		Price:       "$29.99",
	},
	{
		ID:          "sauce-labs-bike-light",
		Name:        "Sauce Labs Bike Light",
		Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night.",
		Price:       "$9.99",
	},
	{
		ID:          "sauce-labs-bolt-t-shirt",
		Name:        "Sauce Labs Bolt T-Shirt",
		Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt.",
		Price:       "$15.99",
	},
}

// Accounts maps the usernames the demo accepts to their passwords.
var Accounts = map[string]string{
	"standard_user":    "secret_sauce",
	"performance_user": "secret_sauce",
}

// Domain errors
var (
	ErrInvalidCredentials = errors.New("username and password do not match any user")
	ErrUnknownProduct     = errors.New("product does not exist")
	ErrUnknownSession     = errors.New("session does not exist")
)

// Cart holds the product IDs a shopper added, in insertion order, at most
// once each.
type Cart struct {
	items []string
}

// Add puts the product in the cart; adding it twice is a no-op.
func (c *Cart) Add(productID string) error {
	if _, ok := findProduct(productID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	for _, id := range c.items {
		if id == productID {
			return nil
		}
	}
	c.items = append(c.items, productID)
	return nil
}

// Count returns the number of distinct products in the cart.
func (c *Cart) Count() int {
	return len(c.items)
}

// Products returns the cart contents in insertion order.
func (c *Cart) Products() []Product {
	products := make([]Product, 0, len(c.items))
	for _, id := range c.items {
		if p, ok := findProduct(id); ok {
			products = append(products, p)
		}
	}
	return products
}

func findProduct(id string) (Product, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Store keeps signed-in shoppers and their carts in memory.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*shopper
}

type shopper struct {
	username string
	cart     Cart
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*shopper)}
}

// SignIn checks the credentials and opens a session, returning its ID.
func (s *Store) SignIn(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if !rules.IsValidLogin(username, password) {
		return "", ErrInvalidCredentials
	}
	if want, ok := Accounts[username]; !ok || want != password {
		return "", ErrInvalidCredentials
	}

	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &shopper{username: username}
	return id, nil
}

// AddToCart adds a product to the session's cart and returns the new count.
func (s *Store) AddToCart(sessionID, productID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrUnknownSession
	}
	if err := sh.cart.Add(productID); err != nil {
		return 0, err
	}
	return sh.cart.Count(), nil
}

// Cart returns a copy of the session's cart.
func (s *Store) Cart(sessionID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.sessions[sessionID]
	if !ok {
		return Cart{}, ErrUnknownSession
	}
	return Cart{items: append([]string(nil), sh.cart.items...)}, nil
}

// SignedIn reports whether the session exists.
func (s *Store) SignedIn(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	return ok
}
