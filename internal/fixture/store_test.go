package fixture

import (
	"errors"
	"testing"
)

func TestStore_SignIn(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "standard user", username: "standard_user", password: "secret_sauce"},
		{name: "username is trimmed", username: "  standard_user ", password: "secret_sauce"},
		{name: "wrong password", username: "standard_user", password: "secret", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "locked_out_user", password: "secret_sauce", wantErr: ErrInvalidCredentials},
		{name: "blank username", username: " ", password: "secret_sauce", wantErr: ErrInvalidCredentials},
		{name: "short password", username: "standard_user", password: "abc", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			store := NewStore()

			// WHEN
			id, err := store.SignIn(tt.username, tt.password)

			// THEN
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && !store.SignedIn(id) {
				t.Errorf("expected session %q to be signed in", id)
			}
			if tt.wantErr != nil && id != "" {
				t.Errorf("expected no session ID, got %q", id)
			}
		})
	}
}

func TestStore_AddToCart(t *testing.T) {
	// GIVEN
	store := NewStore()
	id, err := store.SignIn("standard_user", "secret_sauce")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	// WHEN
	first, err := store.AddToCart(id, "sauce-labs-backpack")
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	again, err := store.AddToCart(id, "sauce-labs-backpack")
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	second, err := store.AddToCart(id, "sauce-labs-bike-light")
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}

	// THEN
	if first != 1 || again != 1 || second != 2 {
		t.Errorf("expected counts 1, 1, 2, got %d, %d, %d", first, again, second)
	}
	cart, err := store.Cart(id)
	if err != nil {
		t.Fatalf("Cart failed: %v", err)
	}
	products := cart.Products()
	if len(products) != 2 || products[0].Name != "Sauce Labs Backpack" {
		t.Errorf("unexpected cart contents: %+v", products)
	}
}

func TestStore_AddToCartErrors(t *testing.T) {
	store := NewStore()
	id, _ := store.SignIn("standard_user", "secret_sauce")

	if _, err := store.AddToCart("missing", "sauce-labs-backpack"); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("expected ErrUnknownSession, got %v", err)
	}
	if _, err := store.AddToCart(id, "sauce-labs-onesie-xl"); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("expected ErrUnknownProduct, got %v", err)
	}
	if _, err := store.Cart("missing"); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("expected ErrUnknownSession, got %v", err)
	}
}

func TestStore_CartIsACopy(t *testing.T) {
	store := NewStore()
	id, _ := store.SignIn("standard_user", "secret_sauce")
	cart, _ := store.Cart(id)

	if err := cart.Add("sauce-labs-backpack"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	stored, _ := store.Cart(id)
	if stored.Count() != 0 {
		t.Errorf("expected stored cart to be unchanged, got %d item(s)", stored.Count())
	}
}

func TestListUsers(t *testing.T) {
	tests := []struct {
		page      int
		wantPage  int
		wantFirst int
		wantLen   int
	}{
		{page: 1, wantPage: 1, wantFirst: 1, wantLen: PerPage},
		{page: 2, wantPage: 2, wantFirst: 7, wantLen: PerPage},
		{page: 3, wantPage: 3, wantLen: 0},
		{page: 0, wantPage: 1, wantFirst: 1, wantLen: PerPage},
	}

	for _, tt := range tests {
		got := ListUsers(tt.page)

		if got.Page != tt.wantPage || len(got.Data) != tt.wantLen {
			t.Errorf("page %d: expected page %d with %d users, got page %d with %d", tt.page, tt.wantPage, tt.wantLen, got.Page, len(got.Data))
			continue
		}
		if tt.wantLen > 0 && got.Data[0].ID != tt.wantFirst {
			t.Errorf("page %d: expected first ID %d, got %d", tt.page, tt.wantFirst, got.Data[0].ID)
		}
		if got.Total != 12 || got.TotalPages != 2 || got.PerPage != PerPage {
			t.Errorf("page %d: unexpected totals %+v", tt.page, got)
		}
	}
}
