package cli

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/fixture"
)

// ServerDependencies holds all dependencies needed for the fixture server
type ServerDependencies struct {
	ServerConfig     config.ServerConfig
	LoginHandler     http.Handler
	InventoryHandler http.Handler
	AddToCartHandler http.Handler
	CartHandler      http.Handler
	UsersHandler     http.Handler
	UnknownHandler   http.Handler
}

// BuildServerDependencies wires the fixture storefront around one in-memory
// store.
func BuildServerDependencies(cfg config.ServerConfig) (ServerDependencies, error) {
	deps := ServerDependencies{ServerConfig: cfg}
	store := fixture.NewStore()

	loginHandler, err := fixture.NewLoginHandler(store)
	if err != nil {
		return deps, fmt.Errorf("failed to create login handler: %w", err)
	}
	deps.LoginHandler = loginHandler

	inventoryHandler, err := fixture.NewInventoryHandler(store)
	if err != nil {
		return deps, fmt.Errorf("failed to create inventory handler: %w", err)
	}
	deps.InventoryHandler = inventoryHandler

	cartHandler, err := fixture.NewCartHandler(store)
	if err != nil {
		return deps, fmt.Errorf("failed to create cart handler: %w", err)
	}
	deps.CartHandler = cartHandler

	deps.AddToCartHandler = fixture.NewAddToCartHandler(store)
	deps.UsersHandler = fixture.UsersHandler{}
	deps.UnknownHandler = fixture.UnknownHandler{}
	return deps, nil
}

// RunServe starts the fixture server and blocks until SIGINT or SIGTERM
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/", deps.LoginHandler)
	mux.Handle("/inventory.html", deps.InventoryHandler)
	mux.Handle("/cart/add", deps.AddToCartHandler)
	mux.Handle("/cart.html", deps.CartHandler)
	mux.Handle("/api/users", deps.UsersHandler)
	mux.Handle("/api/unknown/", deps.UnknownHandler)

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Fixture storefront listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil, a channel is created and registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	log.Printf("Received signal: %v, shutting down server...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not report listener close errors, so this
		// only fails if the server was never usable.
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
