package routes

import (
	"net/http"

	carthandler "storefront/internal/handlers/cart"
	cataloghandler "storefront/internal/handlers/catalog"
	checkouthandler "storefront/internal/handlers/checkout"
	dashboardhandler "storefront/internal/handlers/dashboard"
	orderhandler "storefront/internal/handlers/orders"
	userhandler "storefront/internal/handlers/users"
	"storefront/internal/middleware/auth"
	"storefront/pkg/lib/httputil"
)

type Routes struct {
	auth      *auth.Middleware
	catalog   *cataloghandler.Handler
	cart      *carthandler.Handler
	checkout  *checkouthandler.Handler
	orders    *orderhandler.Handler
	users     *userhandler.Handler
	dashboard *dashboardhandler.Handler
}

func New(
	authMiddleware *auth.Middleware,
	catalog *cataloghandler.Handler,
	cart *carthandler.Handler,
	checkout *checkouthandler.Handler,
	orders *orderhandler.Handler,
	users *userhandler.Handler,
	dashboard *dashboardhandler.Handler,
) *Routes {
	return &Routes{
		auth:      authMiddleware,
		catalog:   catalog,
		cart:      cart,
		checkout:  checkout,
		orders:    orders,
		users:     users,
		dashboard: dashboard,
	}
}

func (r *Routes) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		_ = httputil.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// storefront
	mux.HandleFunc("POST /users", r.users.Register)
	mux.HandleFunc("GET /products", r.catalog.ListProducts)
	mux.HandleFunc("GET /products/{productId}", func(w http.ResponseWriter, req *http.Request) {
		r.catalog.GetProduct(w, req, req.PathValue("productId"))
	})

	// signed-in customer
	mux.Handle("GET /me", r.user(r.users.Me))
	mux.Handle("GET /me/cart", r.user(r.cart.ViewCart))
	mux.Handle("DELETE /me/cart", r.user(r.cart.ClearCart))
	mux.Handle("POST /me/cart/items", r.user(r.cart.AddToCart))
	mux.Handle("POST /me/cart/items/bulk", r.user(r.cart.AddBulkToCart))
	mux.Handle("DELETE /me/cart/items/{itemId}", r.user(func(w http.ResponseWriter, req *http.Request) {
		r.cart.RemoveFromCart(w, req, req.PathValue("itemId"))
	}))
	mux.Handle("POST /me/checkout", r.user(r.checkout.Checkout))
	mux.Handle("GET /me/orders", r.user(r.orders.ListMyOrders))

	// admin panel
	mux.Handle("GET /admin/stats", r.admin(r.dashboard.Stats))
	mux.Handle("GET /admin/products", r.admin(r.catalog.ListProducts))
	mux.Handle("POST /admin/products", r.admin(r.catalog.CreateProduct))
	mux.Handle("PUT /admin/products/{productId}", r.admin(func(w http.ResponseWriter, req *http.Request) {
		r.catalog.UpdateProduct(w, req, req.PathValue("productId"))
	}))
	mux.Handle("DELETE /admin/products/{productId}", r.admin(func(w http.ResponseWriter, req *http.Request) {
		r.catalog.DeleteProduct(w, req, req.PathValue("productId"))
	}))
	mux.Handle("GET /admin/orders", r.admin(r.orders.ListOrders))
	mux.Handle("PATCH /admin/orders/{orderId}/status", r.admin(func(w http.ResponseWriter, req *http.Request) {
		r.orders.UpdateOrderStatus(w, req, req.PathValue("orderId"))
	}))
	mux.Handle("GET /admin/users", r.admin(r.users.ListUsers))
	mux.Handle("PATCH /admin/users/{userId}/role", r.admin(func(w http.ResponseWriter, req *http.Request) {
		r.users.UpdateUserRole(w, req, req.PathValue("userId"))
	}))
}

func (r *Routes) user(h http.HandlerFunc) http.Handler {
	return r.auth.Authenticate(h)
}

func (r *Routes) admin(h http.HandlerFunc) http.Handler {
	return r.auth.Authenticate(r.auth.RequireAdmin(h))
}
