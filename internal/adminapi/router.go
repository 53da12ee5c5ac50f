package adminapi

// InitRouter registers all kiosk API routes on the webserver.
func InitRouter() {
	registerStaffRoutes()
	registerProductRoutes()
	registerComboMealRoutes()
	registerOrderRoutes()
}
