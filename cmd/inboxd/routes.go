package main

import (
	"github.com/inmoflow/inbox/cmd/inboxd/controllers"
	"github.com/inmoflow/inbox/cmd/inboxd/server"
)

// AddRoutes defines all API routes for the application
func AddRoutes(app *server.App) {
	app.AddRoute(&server.Route{
		Route:   "GET /status",
		Handler: controllers.GetStatusController,
	})
	app.AddRoute(&server.Route{
		Route:   "GET /recent",
		Handler: controllers.GetRecentController,
	})
	app.AddRoute(&server.Route{
		Route:   "GET /log",
		Handler: controllers.GetLogController,
	})
	app.AddRoute(&server.Route{
		Route:   "POST /login",
		Handler: controllers.PostLoginController,
	})
	app.AddRoute(&server.Route{
		Route:   "POST /logout",
		Handler: controllers.PostLogoutController,
	})
}
