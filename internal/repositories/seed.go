package repositories

import "tsehay_admin/internal/models"

// SeedMenuItems returns the menu the mock data service starts with.
func SeedMenuItems() []models.MenuItem {
	return []models.MenuItem{
		{ID: "m1", Name: "Special Kitfo", Description: "Minced prime beef seasoned with mitmita and niter kibbeh, served with ayib and gomen.", Price: 18.99, Image: "/static/img/kitfo.jpg", Category: "Main"},
		{ID: "m2", Name: "Leb Leb Kitfo", Description: "Lightly warmed kitfo for those who prefer it rare rather than raw.", Price: 17.99, Image: "/static/img/leb-leb.jpg", Category: "Main"},
		{ID: "m3", Name: "Doro Wat", Description: "Chicken slow-simmered in berbere sauce with a hard-boiled egg.", Price: 16.5, Image: "/static/img/doro-wat.jpg", Category: "Main"},
		{ID: "m4", Name: "Beyaynetu", Description: "Vegetarian platter of misir, kik alicha, shiro and seasonal greens.", Price: 14.25, Image: "/static/img/beyaynetu.jpg", Category: "Vegetarian"},
		{ID: "m5", Name: "Sambusa", Description: "Crisp pastry filled with spiced lentils.", Price: 5.5, Image: "/static/img/sambusa.jpg", Category: "Starter"},
		{ID: "m6", Name: "Buna", Description: "Traditional Ethiopian coffee ceremony for two.", Price: 6, Image: "/static/img/buna.jpg", Category: "Drinks"},
	}
}

// SeedTables returns the dining room layout the mock data service starts with.
func SeedTables() []models.TableAvailability {
	return []models.TableAvailability{
		{ID: "t1", TableNumber: 1, Capacity: 2, IsAvailable: true},
		{ID: "t2", TableNumber: 2, Capacity: 2, IsAvailable: true},
		{ID: "t3", TableNumber: 3, Capacity: 4, IsAvailable: false},
		{ID: "t4", TableNumber: 4, Capacity: 4, IsAvailable: true},
		{ID: "t5", TableNumber: 5, Capacity: 6, IsAvailable: true},
		{ID: "t6", TableNumber: 6, Capacity: 1, IsAvailable: false},
	}
}
