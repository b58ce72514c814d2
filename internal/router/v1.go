package router

import (
	"net/http"

	"github.com/deppfellow/fieldservice/internal/handler"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/labstack/echo/v4"
)

func registerUserRoutes(g *echo.Group, h *handler.Handlers) {
	users := g.Group("/users")
	u := h.Users

	users.POST("", handler.Handle(u.Handler, u.Create, http.StatusCreated, &model.CreateUserRequest{}))
	users.GET("", handler.Handle(u.Handler, u.List, http.StatusOK, &model.ListUsersRequest{}))
	users.GET("/search", handler.Handle(u.Handler, u.Search, http.StatusOK, &model.SearchUsersRequest{}))
	users.GET("/:id", handler.Handle(u.Handler, u.Get, http.StatusOK, &model.IDParam{}))
	users.PUT("/:id", handler.Handle(u.Handler, u.Update, http.StatusOK, &model.UpdateUserRequest{}))
	users.DELETE("/:id", handler.HandleNoContent(u.Handler, u.Delete, http.StatusNoContent, &model.IDParam{}))
	users.PATCH("/:id/inactivate", handler.Handle(u.Handler, u.Inactivate, http.StatusOK, &model.IDParam{}))
	users.PATCH("/:id/activate", handler.Handle(u.Handler, u.Activate, http.StatusOK, &model.IDParam{}))

	a := h.Auth
	g.POST("/auth/login", handler.Handle(a.Handler, a.Login, http.StatusOK, &model.LoginRequest{}))
}

func registerClientRoutes(g *echo.Group, h *handler.Handlers) {
	clients := g.Group("/clients")
	cl := h.Clients

	clients.POST("", handler.Handle(cl.Handler, cl.Create, http.StatusCreated, &model.CreateClientRequest{}))
	clients.GET("", handler.Handle(cl.Handler, cl.List, http.StatusOK, &model.ListClientsRequest{}))
	clients.GET("/search", handler.Handle(cl.Handler, cl.Search, http.StatusOK, &model.SearchClientsRequest{}))
	clients.GET("/:id", handler.Handle(cl.Handler, cl.Get, http.StatusOK, &model.IDParam{}))
	clients.PUT("/:id", handler.Handle(cl.Handler, cl.Update, http.StatusOK, &model.UpdateClientRequest{}))
	clients.DELETE("/:id", handler.HandleNoContent(cl.Handler, cl.Delete, http.StatusNoContent, &model.IDParam{}))
	clients.PATCH("/:id/inactivate", handler.Handle(cl.Handler, cl.Inactivate, http.StatusOK, &model.IDParam{}))
	clients.PATCH("/:id/activate", handler.Handle(cl.Handler, cl.Activate, http.StatusOK, &model.IDParam{}))
}

func registerTechnicianRoutes(g *echo.Group, h *handler.Handlers) {
	technicians := g.Group("/technicians")
	t := h.Technicians

	technicians.POST("", handler.Handle(t.Handler, t.Create, http.StatusCreated, &model.CreateTechnicianRequest{}))
	technicians.GET("", handler.Handle(t.Handler, t.List, http.StatusOK, &model.ListTechniciansRequest{}))
	technicians.GET("/search", handler.Handle(t.Handler, t.Search, http.StatusOK, &model.SearchTechniciansRequest{}))
	technicians.GET("/:id", handler.Handle(t.Handler, t.Get, http.StatusOK, &model.IDParam{}))
	technicians.PUT("/:id", handler.Handle(t.Handler, t.Update, http.StatusOK, &model.UpdateTechnicianRequest{}))
	technicians.DELETE("/:id", handler.HandleNoContent(t.Handler, t.Delete, http.StatusNoContent, &model.IDParam{}))
	technicians.PATCH("/:id/inactivate", handler.Handle(t.Handler, t.Inactivate, http.StatusOK, &model.IDParam{}))
	technicians.PATCH("/:id/activate", handler.Handle(t.Handler, t.Activate, http.StatusOK, &model.IDParam{}))

	technicians.GET("/:id/regions", handler.Handle(t.Handler, t.Regions, http.StatusOK, &model.IDParam{}))
	technicians.POST("/:id/regions", handler.Handle(t.Handler, t.AddRegion, http.StatusCreated, &model.AddTechnicianRegionRequest{}))
	technicians.DELETE("/:id/regions/:regionId", handler.HandleNoContent(t.Handler, t.RemoveRegion, http.StatusNoContent, &model.RemoveTechnicianRegionRequest{}))

	technicians.GET("/:id/specialties", handler.Handle(t.Handler, t.Specialties, http.StatusOK, &model.IDParam{}))
	technicians.POST("/:id/specialties", handler.Handle(t.Handler, t.AddSpecialty, http.StatusCreated, &model.AddTechnicianSpecialtyRequest{}))
	technicians.DELETE("/:id/specialties/:specialtyId", handler.HandleNoContent(t.Handler, t.RemoveSpecialty, http.StatusNoContent, &model.RemoveTechnicianSpecialtyRequest{}))
}

// registerCatalogRoutes covers regions, specialties and the service offerings
// exposed under /services.
func registerCatalogRoutes(g *echo.Group, h *handler.Handlers) {
	regions := g.Group("/regions")
	r := h.Regions

	regions.POST("", handler.Handle(r.Handler, r.Create, http.StatusCreated, &model.CreateRegionRequest{}))
	regions.GET("", handler.Handle(r.Handler, r.List, http.StatusOK, &model.ListRegionsRequest{}))
	regions.GET("/:id", handler.Handle(r.Handler, r.Get, http.StatusOK, &model.IDParam{}))
	regions.PUT("/:id", handler.Handle(r.Handler, r.Update, http.StatusOK, &model.UpdateRegionRequest{}))
	regions.DELETE("/:id", handler.HandleNoContent(r.Handler, r.Delete, http.StatusNoContent, &model.IDParam{}))
	regions.PATCH("/:id/inactivate", handler.Handle(r.Handler, r.Inactivate, http.StatusOK, &model.IDParam{}))
	regions.PATCH("/:id/activate", handler.Handle(r.Handler, r.Activate, http.StatusOK, &model.IDParam{}))

	specialties := g.Group("/specialties")
	sp := h.Specialties

	specialties.POST("", handler.Handle(sp.Handler, sp.Create, http.StatusCreated, &model.CreateSpecialtyRequest{}))
	specialties.GET("", handler.Handle(sp.Handler, sp.List, http.StatusOK, &model.ListSpecialtiesRequest{}))
	specialties.GET("/:id", handler.Handle(sp.Handler, sp.Get, http.StatusOK, &model.IDParam{}))
	specialties.PUT("/:id", handler.Handle(sp.Handler, sp.Update, http.StatusOK, &model.UpdateSpecialtyRequest{}))
	specialties.DELETE("/:id", handler.HandleNoContent(sp.Handler, sp.Delete, http.StatusNoContent, &model.IDParam{}))
	specialties.PATCH("/:id/inactivate", handler.Handle(sp.Handler, sp.Inactivate, http.StatusOK, &model.IDParam{}))
	specialties.PATCH("/:id/activate", handler.Handle(sp.Handler, sp.Activate, http.StatusOK, &model.IDParam{}))

	offerings := g.Group("/services")
	o := h.Offerings

	offerings.POST("", handler.Handle(o.Handler, o.Create, http.StatusCreated, &model.CreateOfferingRequest{}))
	offerings.GET("", handler.Handle(o.Handler, o.List, http.StatusOK, &model.ListOfferingsRequest{}))
	offerings.GET("/search", handler.Handle(o.Handler, o.Search, http.StatusOK, &model.SearchOfferingsRequest{}))
	offerings.GET("/:id", handler.Handle(o.Handler, o.Get, http.StatusOK, &model.IDParam{}))
	offerings.PUT("/:id", handler.Handle(o.Handler, o.Update, http.StatusOK, &model.UpdateOfferingRequest{}))
	offerings.DELETE("/:id", handler.HandleNoContent(o.Handler, o.Delete, http.StatusNoContent, &model.IDParam{}))
	offerings.PATCH("/:id/inactivate", handler.Handle(o.Handler, o.Inactivate, http.StatusOK, &model.IDParam{}))
	offerings.PATCH("/:id/activate", handler.Handle(o.Handler, o.Activate, http.StatusOK, &model.IDParam{}))
	offerings.GET("/:id/technicians", handler.Handle(o.Handler, o.Technicians, http.StatusOK, &model.IDParam{}))
}

func registerAppointmentRoutes(g *echo.Group, h *handler.Handlers) {
	appointments := g.Group("/appointments")
	ap := h.Appointments

	appointments.POST("", handler.Handle(ap.Handler, ap.Create, http.StatusCreated, &model.CreateAppointmentRequest{}))
	appointments.GET("", handler.Handle(ap.Handler, ap.List, http.StatusOK, &model.ListAppointmentsRequest{}))
	appointments.GET("/:id", handler.Handle(ap.Handler, ap.Get, http.StatusOK, &model.IDParam{}))
	appointments.PUT("/:id", handler.Handle(ap.Handler, ap.Update, http.StatusOK, &model.UpdateAppointmentRequest{}))
	appointments.DELETE("/:id", handler.HandleNoContent(ap.Handler, ap.Delete, http.StatusNoContent, &model.IDParam{}))
}

func registerAdminRoutes(g *echo.Group, h *handler.Handlers) {
	a := h.Admin

	g.GET("/stats", handler.Handle(a.Handler, a.Stats, http.StatusOK, &model.EmptyRequest{}))
	g.POST("/rehash-passwords", handler.Handle(a.Handler, a.RehashPasswords, http.StatusOK, &model.EmptyRequest{}))
}
