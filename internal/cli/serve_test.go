package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/simplecom/storefront-smoke/internal/config"
)

// mockHandler creates a simple test handler
func mockHandler(response string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(response))
	})
}

// createTestDeps creates ServerDependencies with mock handlers for testing
func createTestDeps(port string) ServerDependencies {
	return ServerDependencies{
		ServerConfig:     config.ServerConfig{Port: port},
		LoginHandler:     mockHandler("login"),
		InventoryHandler: mockHandler("inventory"),
		AddToCartHandler: mockHandler("add"),
		CartHandler:      mockHandler("cart"),
		UsersHandler:     mockHandler("users"),
		UnknownHandler:   mockHandler("unknown"),
	}
}

// startTestServer starts a server with the given dependencies and returns listener, server, and port
func startTestServer(t *testing.T, deps ServerDependencies) (net.Listener, *http.Server, int) {
	t.Helper()
	listener, server, err := StartServer(deps)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	return listener, server, port
}

// httpGet makes an HTTP GET request and returns response body and status
func httpGet(t *testing.T, url string) (string, int) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("Failed to make request to %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return string(body), resp.StatusCode
}

func TestStartServer_AllRoutesWork(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	baseURL := fmt.Sprintf("http://localhost:%d", port)
	time.Sleep(50 * time.Millisecond)

	// THEN
	testCases := []struct {
		path     string
		expected string
	}{
		{"/", "login"},
		{"/inventory.html", "inventory"},
		{"/cart/add", "add"},
		{"/cart.html", "cart"},
		{"/api/users?page=2", "users"},
		{"/api/unknown/23", "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			body, status := httpGet(t, baseURL+tc.path)
			if status != http.StatusOK {
				t.Errorf("Expected status 200, got %d", status)
			}
			if body != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestStartServer_InvalidPort(t *testing.T) {
	// GIVEN
	deps := createTestDeps("99999")

	// WHEN
	listener, server, err := StartServer(deps)

	// THEN
	if err == nil {
		listener.Close()
		server.Close()
		t.Error("Expected error for invalid port, got nil")
	}
}

func TestStartServer_PortAlreadyInUse(t *testing.T) {
	// GIVEN
	existingListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create test listener: %v", err)
	}
	defer existingListener.Close()
	port := existingListener.Addr().(*net.TCPAddr).Port

	// WHEN
	listener, server, err := StartServer(createTestDeps(fmt.Sprintf("%d", port)))

	// THEN
	if err == nil {
		listener.Close()
		server.Close()
		t.Error("Expected error for port already in use, got nil")
	}
}

func TestStartServer_ShutdownWithActiveConnections(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")
	deps.InventoryHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("slow"))
	})

	listener, server, port := startTestServer(t, deps)
	defer listener.Close()

	time.Sleep(50 * time.Millisecond)
	responseCh := make(chan error, 1)
	go func() {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/inventory.html", port))
		if err == nil {
			resp.Body.Close()
		}
		responseCh <- err
	}()
	time.Sleep(50 * time.Millisecond)

	// WHEN
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}

	// THEN
	select {
	case err := <-responseCh:
		if err != nil {
			t.Logf("Request error (acceptable): %v", err)
		}
	case <-time.After(1 * time.Second):
		t.Error("Request did not complete in time")
	}
}

func TestWaitForShutdown_Signals(t *testing.T) {
	for _, sig := range []os.Signal{syscall.SIGTERM, syscall.SIGINT} {
		t.Run(sig.String(), func(t *testing.T) {
			// GIVEN
			listener, server, _ := startTestServer(t, createTestDeps("0"))
			defer listener.Close()
			shutdown := make(chan os.Signal, 1)

			// WHEN
			errCh := make(chan error, 1)
			go func() {
				errCh <- WaitForShutdown(server, shutdown)
			}()
			time.Sleep(50 * time.Millisecond)
			shutdown <- sig

			// THEN
			select {
			case err := <-errCh:
				if err != nil {
					t.Errorf("Expected nil error, got: %v", err)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("WaitForShutdown did not complete")
			}
		})
	}
}

func TestWaitForShutdown_ShutdownTimeoutFallsBackToClose(t *testing.T) {
	// GIVEN a request that outlives the shutdown budget
	deps := createTestDeps("0")
	deps.CartHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	})
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()

	go func() {
		if resp, err := http.Get(fmt.Sprintf("http://localhost:%d/cart.html", port)); err == nil {
			resp.Body.Close()
		}
	}()
	time.Sleep(100 * time.Millisecond)

	shutdown := make(chan os.Signal, 1)
	errCh := make(chan error, 1)

	// WHEN
	go func() {
		errCh <- WaitForShutdownWithTimeout(server, shutdown, time.Nanosecond)
	}()
	shutdown <- syscall.SIGTERM

	// THEN
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Expected Close to succeed after Shutdown timed out, got: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForShutdown did not complete")
	}
}

func TestRunServe_StartupFailure(t *testing.T) {
	// GIVEN
	deps := createTestDeps("99999")

	// WHEN
	err := RunServe(deps)

	// THEN
	if err == nil {
		t.Error("Expected error for invalid port, got nil")
	}
}

func TestBuildServerDependencies_ShoppingOverHTTP(t *testing.T) {
	// GIVEN the real fixture handlers
	deps, err := BuildServerDependencies(config.ServerConfig{Port: "0"})
	if err != nil {
		t.Fatalf("BuildServerDependencies failed: %v", err)
	}
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}
	base := fmt.Sprintf("http://localhost:%d", port)
	time.Sleep(50 * time.Millisecond)

	// WHEN the shopper signs in and adds the backpack
	resp, err := client.PostForm(base+"/", url.Values{"user-name": {"standard_user"}, "password": {"secret_sauce"}})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	resp.Body.Close()
	if !strings.HasSuffix(resp.Request.URL.Path, "/inventory.html") {
		t.Fatalf("expected to land on the inventory, got %s", resp.Request.URL)
	}

	resp, err = client.PostForm(base+"/cart/add", url.Values{"id": {"sauce-labs-backpack"}})
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	resp.Body.Close()

	// THEN the cart page lists it
	resp, err = client.Get(base + "/cart.html")
	if err != nil {
		t.Fatalf("cart failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Sauce Labs Backpack") {
		t.Errorf("expected the backpack in the cart, got %s", body)
	}
}
