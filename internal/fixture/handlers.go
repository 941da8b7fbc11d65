// Package fixture serves a local copy of the demo storefront and of the
// users API, so both suites can run without the public services.
package fixture

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// SessionCookie names the cookie carrying the shopper's session ID.
const SessionCookie = "session-id"

// parsePage parses a page with the shared partials. The page file comes
// first so it is the template Execute runs.
func parsePage(name string) (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/"+name, "templates/header.html")
}

// LoginHandler renders the login form on GET / and signs the shopper in on
// POST /.
type LoginHandler struct {
	template *template.Template
	store    *Store
}

// LoginData represents the data for the login template
type LoginData struct {
	Username string
	Error    string
}

func NewLoginHandler(store *Store) (*LoginHandler, error) {
	tmpl, err := parsePage("login.html")
	if err != nil {
		return nil, err
	}
	return &LoginHandler{template: tmpl, store: store}, nil
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.render(w, http.StatusOK, LoginData{})
	case http.MethodPost:
		username := r.FormValue("user-name")
		id, err := h.store.SignIn(username, r.FormValue("password"))
		if err != nil {
			h.render(w, http.StatusUnauthorized, LoginData{Username: username, Error: err.Error()})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: id, Path: "/", HttpOnly: true})
		http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LoginHandler) render(w http.ResponseWriter, status int, data LoginData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.template.Execute(w, data); err != nil {
		log.Printf("Error rendering login page: %v", err)
	}
}

// PageData represents the data for the inventory and cart templates
type PageData struct {
	CartCount int
	Products  []Product
}

// InventoryHandler renders the product list for a signed-in shopper.
type InventoryHandler struct {
	template *template.Template
	store    *Store
}

func NewInventoryHandler(store *Store) (*InventoryHandler, error) {
	tmpl, err := parsePage("inventory.html")
	if err != nil {
		return nil, err
	}
	return &InventoryHandler{template: tmpl, store: store}, nil
}

func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cart, ok := cartFor(w, r, h.store)
	if !ok {
		return
	}
	renderPage(w, h.template, PageData{CartCount: cart.Count(), Products: Catalog})
}

// CartHandler renders the shopper's cart.
type CartHandler struct {
	template *template.Template
	store    *Store
}

func NewCartHandler(store *Store) (*CartHandler, error) {
	tmpl, err := parsePage("cart.html")
	if err != nil {
		return nil, err
	}
	return &CartHandler{template: tmpl, store: store}, nil
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cart, ok := cartFor(w, r, h.store)
	if !ok {
		return
	}
	renderPage(w, h.template, PageData{CartCount: cart.Count(), Products: cart.Products()})
}

// AddToCartHandler handles POST /cart/add with the product ID in the form
// and sends the shopper back to the inventory.
type AddToCartHandler struct {
	store *Store
}

func NewAddToCartHandler(store *Store) *AddToCartHandler {
	return &AddToCartHandler{store: store}
}

func (h *AddToCartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := h.store.AddToCart(sessionID(r), r.FormValue("id"))
	switch {
	case errors.Is(err, ErrUnknownSession):
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, ErrUnknownProduct):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		log.Printf("Error adding to cart: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Printf("Cart now holds %d item(s)", count)
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// cartFor returns the signed-in shopper's cart, redirecting to the login
// page when there is none.
func cartFor(w http.ResponseWriter, r *http.Request, store *Store) (Cart, bool) {
	cart, err := store.Cart(sessionID(r))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return Cart{}, false
	}
	return cart, true
}

func renderPage(w http.ResponseWriter, tmpl *template.Template, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Error rendering template: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
