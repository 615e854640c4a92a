package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vogelpark/storefront/api/controllers"
	"github.com/vogelpark/storefront/api/middleware"
	authsvc "github.com/vogelpark/storefront/internal/auth"
	"github.com/vogelpark/storefront/internal/blog"
	"github.com/vogelpark/storefront/internal/cart"
	"github.com/vogelpark/storefront/internal/contacts"
	"github.com/vogelpark/storefront/internal/donations"
	"github.com/vogelpark/storefront/internal/mapitems"
	orderssvc "github.com/vogelpark/storefront/internal/orders"
	"github.com/vogelpark/storefront/internal/patients"
	"github.com/vogelpark/storefront/internal/products"
	"github.com/vogelpark/storefront/internal/users"
	"github.com/vogelpark/storefront/pkg/auth/session"
	"github.com/vogelpark/storefront/pkg/config"
	"github.com/vogelpark/storefront/pkg/db"
	"github.com/vogelpark/storefront/pkg/logger"
	"github.com/vogelpark/storefront/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB    db.Pinger
	Redis *redis.Client

	Sessions    session.Checker
	AuthService authsvc.Service
	Orders      orderssvc.Service

	Users     *users.Repository
	Products  *products.Repository
	Cart      *cart.Repository
	Blog      *blog.Repository
	Donations *donations.Repository
	Contacts  *contacts.Repository
	Patients  *patients.Repository
	MapItems  *mapitems.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewRateLimitPolicy("login", cfg.RateLimit.LoginWindow, cfg.RateLimit.LoginLimit)
	registerPolicy := middleware.NewRateLimitPolicy("register", cfg.RateLimit.RegisterWindow, cfg.RateLimit.RegisterLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.RateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(middleware.RateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))

		r.Get("/products", controllers.ProductsList(deps.Products, logg))
		r.Get("/category", controllers.ProductsCategories(deps.Products, logg))
		r.Get("/blog", controllers.BlogList(deps.Blog, logg))
		r.Get("/blog/latest", controllers.BlogLatest(deps.Blog, logg))
		r.Get("/donations/top10", controllers.DonationsTop(deps.Donations, logg))
		r.Post("/donations", controllers.DonationsCreate(deps.Donations, logg))
		r.Post("/contact", controllers.ContactsCreate(deps.Contacts, logg))
		r.Get("/map-items", controllers.MapItemsList(deps.MapItems, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
			r.Get("/profile", controllers.Profile(deps.Users, logg))

			r.Get("/cart", controllers.CartFetch(deps.Cart, logg))
			r.Post("/cart", controllers.CartReplace(deps.Cart, logg))

			r.Post("/order", controllers.OrdersCheckout(deps.Orders, logg))
			r.Get("/orders", controllers.OrdersList(deps.Orders, logg))

			r.Get("/donations", controllers.DonationsList(deps.Donations, logg))
			r.Get("/contacts", controllers.ContactsList(deps.Contacts, logg))

			r.Get("/patients", controllers.PatientsList(deps.Patients, logg))
			r.Post("/patients", controllers.PatientsCreate(deps.Patients, logg))
			r.Put("/patients/{patientId}", controllers.PatientsUpdate(deps.Patients, logg))

			r.Put("/products/{productId}", controllers.ProductsUpdate(deps.Products, logg))
			r.Put("/map-items/{itemId}", controllers.MapItemsUpdate(deps.MapItems, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireStaff(logg))

				r.Post("/blog", controllers.BlogCreate(deps.Blog, logg))
				r.Put("/blog/{postId}", controllers.BlogUpdate(deps.Blog, logg))
				r.Delete("/blog/{postId}", controllers.BlogDelete(deps.Blog, logg))

				r.Post("/order-status", controllers.OrdersSetStatus(deps.Orders, logg))

				r.Put("/contacts/{contactId}", controllers.ContactsUpdateStatus(deps.Contacts, logg))
				r.Delete("/contacts/{contactId}", controllers.ContactsDelete(deps.Contacts, logg))

				r.Post("/map-items", controllers.MapItemsCreate(deps.MapItems, logg))
				r.Delete("/map-items/{itemId}", controllers.MapItemsDelete(deps.MapItems, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))

				r.Post("/products", controllers.ProductsCreate(deps.Products, logg))
				r.Delete("/products/{productId}", controllers.ProductsDelete(deps.Products, logg))
			})
		})
	})

	return r
}
