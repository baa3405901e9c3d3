// Package routes wires services and handlers onto an echo instance.
package routes

import (
	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/contract"
	"fostercare/cmd/internal/domain/entity"
	"fostercare/cmd/internal/guard"
	"fostercare/cmd/internal/http/handler"
	"fostercare/cmd/internal/http/middleware"
	"fostercare/cmd/internal/service"
	"fostercare/cmd/internal/view"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth     backend.Auth
	Children backend.Records[*entity.Child]
	Families backend.Records[*entity.Family]
	Staff    backend.Records[*entity.Staff]
	Notes    backend.Records[*entity.Note]
	Files    backend.FileStore
	Photos   view.PhotoUploader
	Validate *validator.Validate
	Guard    *guard.Guard

	SecureCookies bool

	// Media serves the public file URLs when the store has no endpoint of its
	// own. Nil with the aws driver.
	Media handler.ObjectReader
}

func Register(e *echo.Echo, d *Deps) {
	registerAPI(e, d)
	registerPages(e, d)

	if d.Media != nil {
		e.GET("/media/*", handler.NewMediaRoute(d.Media).Serve)
	}

	// Docker Compose healthcheck
	e.GET("/health", handler.Health)
}

func registerAPI(e *echo.Echo, d *Deps) {
	authRoutes := handler.NewAuthRoute(service.NewAuthService(d.Auth, d.Validate))
	fileRoutes := handler.NewFileRoute(service.NewFileService(d.Files))

	// Auth
	e.POST("/api/auth/signup", authRoutes.SignUp)
	e.POST("/api/auth/confirm", authRoutes.ConfirmSignup)
	e.POST("/api/auth/confirm/resend", authRoutes.ResendConfirmation)
	e.POST("/api/auth/login", authRoutes.Login)
	e.POST("/api/auth/logout", authRoutes.Logout)
	e.GET("/api/auth/session", authRoutes.GetSession)
	e.GET("/api/auth/user", authRoutes.GetUser)

	api := e.Group("/api", middleware.NewSessionMiddleware(&middleware.SessionMiddlewareConfig{Auth: d.Auth}))

	// Records
	children := service.NewRecordService("child", d.Children, d.Validate, service.ChildMapper)
	families := service.NewRecordService("family", d.Families, d.Validate, service.FamilyMapper)
	staff := service.NewRecordService("staff member", d.Staff, d.Validate, service.StaffMapper)
	notes := service.NewRecordService("note", d.Notes, d.Validate, service.NoteMapper)

	handler.NewRecordRoute[contract.ChildRequest, contract.ChildResponse](children, "children").Register(api)
	handler.NewRecordRoute[contract.FamilyRequest, contract.FamilyResponse](families, "families").Register(api)
	handler.NewRecordRoute[contract.StaffRequest, contract.StaffResponse](staff, "staff").Register(api)
	handler.NewRecordRoute[contract.NoteRequest, contract.NoteResponse](notes, "notes").Register(api)

	// Files
	api.GET("/files", fileRoutes.GetFiles)
	api.POST("/files", fileRoutes.UploadFile)
	api.DELETE("/files/:name", fileRoutes.DeleteFile)
	api.GET("/files/:name/url", fileRoutes.GetFileURL)
}

func registerPages(e *echo.Echo, d *Deps) {
	pages := handler.NewPageRoute(
		service.NewAuthService(d.Auth, d.Validate),
		d.Files,
		d.Guard,
		d.SecureCookies,
		handler.NewRecordSection("children", func() *view.ListView[*entity.Child] {
			return view.NewChildrenView(d.Children, d.Photos)
		}, handler.ChildRow),
		handler.NewRecordSection("families", func() *view.ListView[*entity.Family] {
			return view.NewFamiliesView(d.Families, d.Photos)
		}, handler.FamilyRow),
		handler.NewRecordSection("staff", func() *view.ListView[*entity.Staff] {
			return view.NewStaffView(d.Staff, d.Photos)
		}, handler.StaffRow),
		handler.NewRecordSection("notes", func() *view.ListView[*entity.Note] {
			return view.NewNotesView(d.Notes)
		}, handler.NoteRow),
	)

	e.GET("/", pages.Index)
	e.GET("/auth/login", pages.LoginPage)
	e.POST("/auth/login", pages.Login)
	e.GET("/auth/signup", pages.SignupPage)
	e.POST("/auth/signup", pages.Signup)
	e.GET("/auth/confirm-email", pages.ConfirmPage)
	e.POST("/auth/confirm-email", pages.Confirm)
	e.POST("/auth/confirm-email/resend", pages.ResendConfirmation)
	e.POST("/auth/logout", pages.Logout)

	dash := e.Group("/dashboard", middleware.NewSessionMiddleware(&middleware.SessionMiddlewareConfig{
		Auth:            d.Auth,
		RedirectToLogin: true,
	}))

	dash.GET("", pages.Dashboard)

	// Files, registered before the record routes so the static segment wins.
	dash.POST("/files", pages.UploadFile)
	dash.POST("/files/:name/delete", pages.DeleteFile)
	dash.GET("/files/:name/view", pages.ViewFile)

	dash.GET("/:tab/new", pages.NewRecord)
	dash.GET("/:tab/:id/edit", pages.EditRecord)
	dash.POST("/:tab", pages.CreateRecord)
	dash.POST("/:tab/:id", pages.UpdateRecord)
	dash.POST("/:tab/:id/delete", pages.DeleteRecord)
}
