package main

import (
	"net/http"

	"github.com/bmizerany/pat"
)

// Literal routes are registered before their ":id" siblings; pat matches in
// registration order.
func (app *application) routes() http.Handler {
	mux := pat.New()

	mux.Get("/health", http.HandlerFunc(app.healthcheck))

	// auth + user management
	mux.Post("/api/auth/register", http.HandlerFunc(app.register))
	mux.Post("/api/auth/login", http.HandlerFunc(app.login))
	mux.Get("/api/auth/users", app.requireRole("admin", app.listUsers))
	mux.Post("/api/auth/users", app.requireRole("admin", app.createUser))
	mux.Put("/api/auth/users/:id", app.requireRole("admin", app.updateUser))
	mux.Del("/api/auth/users/:id", app.requireRole("admin", app.deleteUser))

	// products
	mux.Get("/api/products", http.HandlerFunc(app.listProducts))
	mux.Get("/api/products/admin/all", app.requireRole("admin", app.listAllProducts))
	mux.Put("/api/products/admin/:id/visibility", app.requireRole("admin", app.toggleProductVisibility))
	mux.Get("/api/products/supplier/products", app.requireRole("supplier", app.listSupplierProducts))
	mux.Get("/api/products/category/:category", http.HandlerFunc(app.listProductsByCategory))
	mux.Get("/api/products/:id", http.HandlerFunc(app.getProduct))
	mux.Post("/api/products", app.requireRole("supplier", app.createProduct))
	mux.Put("/api/products/:id/quantity", app.requireRole("supplier", app.updateProductQuantity))
	mux.Put("/api/products/:id", app.requireRole("supplier", app.updateProduct))
	mux.Del("/api/products/:id", app.requireRole("supplier", app.deleteProduct))

	// orders
	mux.Post("/api/orders", app.requireAuth(app.createOrder))
	mux.Get("/api/orders/supplier/orders", app.requireRole("supplier", app.listSupplierOrders))
	mux.Put("/api/orders/:id/status", app.requireRole("admin", app.updateOrderStatus))
	mux.Get("/api/orders", app.requireAuth(app.listOrders))

	// payments
	mux.Post("/api/payments/create-intent", app.requireAuth(app.createPaymentIntent))
	mux.Get("/api/payments", app.requireRole("admin", app.listPayments))
	mux.Put("/api/payments/:id/status", app.requireRole("admin", app.updatePaymentStatus))

	return app.logRequest(app.recoverPanic(app.measureRequest(mux)))
}
