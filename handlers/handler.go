package handlers

import (
	tenantRepo "groomify/database/repository/tenant"
	"groomify/services/booking"
	"groomify/services/catalog"
	"groomify/services/payment"
)

// HandlerBundle groups the HTTP handlers and the repositories the route
// middleware needs, so route registration takes a single dependency.
type HandlerBundle struct {
	Booking *BookingHandler
	Payment *PaymentHandler
	Catalog *CatalogHandler
	Tenant  *TenantHandler

	TenantRepo tenantRepo.TenantRepository
}

func NewHandlerBundle(
	bookingSvc booking.BookingService,
	paymentSvc payment.PaymentService,
	catalogSvc catalog.CatalogService,
	tenants tenantRepo.TenantRepository,
) *HandlerBundle {
	return &HandlerBundle{
		Booking:    NewBookingHandler(bookingSvc),
		Payment:    NewPaymentHandler(paymentSvc),
		Catalog:    NewCatalogHandler(catalogSvc),
		Tenant:     NewTenantHandler(tenants),
		TenantRepo: tenants,
	}
}
