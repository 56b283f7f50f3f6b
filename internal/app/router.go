package app

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	customerhandler "github.com/koyif/invoicedash/internal/handler/customer"
	invoicehandler "github.com/koyif/invoicedash/internal/handler/invoice"
	"github.com/koyif/invoicedash/internal/handler/middleware"
	userhandler "github.com/koyif/invoicedash/internal/handler/user"
	"github.com/koyif/invoicedash/internal/postgres"
	"github.com/koyif/invoicedash/internal/service"
)

func (app App) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.WithAuth(app.Config))

	p := postgres.New(app.DB)

	userService := service.NewUserService(p, app.Config)
	userHandler := userhandler.New(userService, app.Config.SessionTTL)

	invoiceService := service.NewInvoiceService(p, app.Views)
	invoiceHandler := invoicehandler.New(invoiceService, app.Views)

	customerService := service.NewCustomerService(p)
	customerHandler := customerhandler.New(customerService)

	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)

	r.Route("/dashboard", func(r chi.Router) {
		r.Post("/logout", userHandler.Logout)
		r.Get("/customers", customerHandler.ListCustomers)

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", invoiceHandler.ListInvoices)
			r.Post("/", invoiceHandler.CreateInvoice)
			r.Post("/{id}", invoiceHandler.UpdateInvoice)
			r.Delete("/{id}", invoiceHandler.DeleteInvoice)
		})
	})

	return r
}
