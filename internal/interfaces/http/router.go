package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/project"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC  *usecase.CustomerUseCase
	ProjectUC   *project.ProjectUseCase
	DocumentUC  *project.DocumentUseCase
	WorkOrderUC *project.WorkOrderUseCase
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	ew := errorWriter{log: deps.Log}
	api := app.Group("/api")

	// Klanten
	klanten := api.Group("/klanten")
	customerHandler := NewCustomerHandler(deps.CustomerUC, ew)
	klanten.Post("/", customerHandler.Create)
	klanten.Get("/", customerHandler.List)
	klanten.Get("/zoek", customerHandler.Search)
	klanten.Get("/:id", customerHandler.GetByID)
	klanten.Put("/:id", customerHandler.Update)
	klanten.Delete("/:id", customerHandler.Delete)

	// Projecten y sus hijos
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.WorkOrderUC, ew)
	documentHandler := NewDocumentHandler(deps.DocumentUC, ew)
	projecten := api.Group("/projecten")
	projecten.Post("/", projectHandler.Create)
	projecten.Get("/", projectHandler.List)
	projecten.Get("/:id", projectHandler.GetByID)
	projecten.Delete("/:id", projectHandler.Delete)
	projecten.Put("/:id/status", projectHandler.UpdateStatus)
	projecten.Put("/:id/installateurs", projectHandler.UpdateInstallers)
	projecten.Get("/:id/werkbon", projectHandler.WorkOrder)
	projecten.Post("/:id/taken", projectHandler.AddTask)
	projecten.Post("/:id/afspraken", projectHandler.AddAppointment)
	projecten.Post("/:id/mappen", documentHandler.CreateFolder)
	projecten.Get("/:id/mappen", documentHandler.ListFolders)

	taken := api.Group("/taken")
	taken.Put("/:id/status", projectHandler.UpdateTaskStatus)
	taken.Patch("/:id", projectHandler.UpdateTask)
	taken.Delete("/:id", projectHandler.DeleteTask)

	api.Delete("/afspraken/:id", projectHandler.DeleteAppointment)

	// Documentmappen y documenten
	mappen := api.Group("/mappen")
	mappen.Put("/:id", documentHandler.UpdateFolder)
	mappen.Delete("/:id", documentHandler.DeleteFolder)
	mappen.Get("/:id/documenten", documentHandler.ListFolderDocuments)

	documenten := api.Group("/documenten")
	documenten.Post("/", documentHandler.Create)
	documenten.Post("/upload", documentHandler.Upload)
	documenten.Get("/download/:projectID/:filename", documentHandler.Download)
	documenten.Delete("/:id", documentHandler.Delete)
}
