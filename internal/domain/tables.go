package domain

var Tables = []interface{}{
	// Staff
	&StaffMember{},
	// Catalog
	&Product{},
	&ComboMeal{},
	// Orders
	&Order{},
	&OrderItem{},
}
