package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bizbookhq/bizbook-backend/api/controllers"
	"github.com/bizbookhq/bizbook-backend/api/middleware"
	"github.com/bizbookhq/bizbook-backend/internal/invoices"
	"github.com/bizbookhq/bizbook-backend/internal/items"
	"github.com/bizbookhq/bizbook-backend/internal/parties"
	"github.com/bizbookhq/bizbook-backend/internal/payments"
	"github.com/bizbookhq/bizbook-backend/pkg/config"
	"github.com/bizbookhq/bizbook-backend/pkg/db"
	"github.com/bizbookhq/bizbook-backend/pkg/logger"
	"github.com/bizbookhq/bizbook-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	m *metrics.MutationMetrics,
	itemService items.Service,
	partyService parties.Service,
	invoiceService invoices.Service,
	paymentService payments.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.CreateItem(itemService, logg))
			r.Get("/", controllers.ListItems(itemService, logg))
			r.Get("/low-stock", controllers.ListLowStockItems(itemService, logg))
			r.Get("/{id}", controllers.GetItem(itemService, logg))
			r.Put("/{id}", controllers.UpdateItem(itemService, logg))
			r.Delete("/{id}", controllers.DeleteItem(itemService, logg))
		})

		r.Route("/parties", func(r chi.Router) {
			r.Post("/", controllers.CreateParty(partyService, logg))
			r.Get("/", controllers.ListParties(partyService, logg))
			r.Get("/{id}", controllers.GetParty(partyService, logg))
			r.Put("/{id}", controllers.UpdateParty(partyService, logg))
			r.Delete("/{id}", controllers.DeleteParty(partyService, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", controllers.CreateInvoice(invoiceService, logg))
			r.Get("/", controllers.ListInvoices(invoiceService, logg))
			r.Get("/{id}", controllers.GetInvoice(invoiceService, logg))
			r.Put("/{id}", controllers.UpdateInvoice(invoiceService, logg))
			r.Delete("/{id}", controllers.DeleteInvoice(invoiceService, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", controllers.CreatePayment(paymentService, logg))
			r.Get("/", controllers.ListPayments(paymentService, logg))
			r.Get("/{id}", controllers.GetPayment(paymentService, logg))
			r.Put("/{id}", controllers.UpdatePayment(paymentService, logg))
			r.Delete("/{id}", controllers.DeletePayment(paymentService, logg))
		})
	})

	return r
}
