package persistence

import (
	"github.com/google/uuid"

	"github.com/nexttoyou/nexttoyou/internal/catalog/domain"
	"github.com/nexttoyou/nexttoyou/internal/geo"
)

// DemoCatalog returns the built-in demo store set: supermarkets, pharmacies
// and hardware stores around central Tel Aviv. Used when no database is
// configured and by the CLI demo mode.
func DemoCatalog() []domain.Store {
	return []domain.Store{
		{
			ID:       uuid.MustParse("7a1d2f30-0001-4a7e-9b1c-0d9e51c00001"),
			Name:     "Super Yuda",
			Category: "Supermarket",
			Location: geo.NewCoordinate(32.0850, 34.7810),
			Inventory: []domain.InventoryEntry{
				{Name: "Milk 3% 1L", Price: 6.90, Brand: "Tnuva"},
				{Name: "Sliced Bread", Price: 8.50},
				{Name: "Eggs L 12pk", Price: 14.90},
				{Name: "Yellow Cheese 200g", Price: 22.00},
				{Name: "Apple Pink Lady", Price: 9.90},
			},
		},
		{
			ID:       uuid.MustParse("7a1d2f30-0002-4a7e-9b1c-0d9e51c00002"),
			Name:     "AM:PM",
			Category: "Supermarket",
			Location: geo.NewCoordinate(32.0880, 34.7830),
			Inventory: []domain.InventoryEntry{
				{Name: "Milk 3% 1L", Price: 8.50, Brand: "Tara"},
				{Name: "Whole Wheat Bread", Price: 9.90},
				{Name: "Eggs M 12pk", Price: 16.90},
				{Name: "Cola 1.5L", Price: 8.00},
				{Name: "Potato Chips", Price: 12.00},
			},
		},
		{
			ID:       uuid.MustParse("7a1d2f30-0003-4a7e-9b1c-0d9e51c00003"),
			Name:     "Shufersal Deal",
			Category: "Supermarket",
			Location: geo.NewCoordinate(32.0830, 34.7800),
			Inventory: []domain.InventoryEntry{
				{Name: "Milk 3% 1L", Price: 5.90, Brand: "Tnuva"},
				{Name: "Sliced Bread", Price: 6.50},
				{Name: "Eggs L 12pk", Price: 11.90},
				{Name: "Chicken Breast 1kg", Price: 35.00},
				{Name: "Basmati Rice 1kg", Price: 7.90},
			},
		},
		{
			ID:       uuid.MustParse("7a1d2f30-0004-4a7e-9b1c-0d9e51c00004"),
			Name:     "Super-Pharm",
			Category: "Pharmacy",
			Location: geo.NewCoordinate(32.0860, 34.7820),
			Inventory: []domain.InventoryEntry{
				{Name: "Advil 200mg", Price: 35.00},
				{Name: "Shampoo 700ml", Price: 22.00},
				{Name: "Toothpaste", Price: 15.00},
				{Name: "Diapers Size 4", Price: 55.00},
				{Name: "Multivitamins", Price: 80.00},
			},
		},
		{
			ID:       uuid.MustParse("7a1d2f30-0005-4a7e-9b1c-0d9e51c00005"),
			Name:     "Be Pharmacy",
			Category: "Pharmacy",
			Location: geo.NewCoordinate(32.0875, 34.7840),
			Inventory: []domain.InventoryEntry{
				{Name: "Advil 200mg", Price: 32.00},
				{Name: "Shampoo 700ml", Price: 19.90},
				{Name: "Toothpaste", Price: 12.00},
				{Name: "Face Mask 50pk", Price: 10.00},
			},
		},
		{
			ID:       uuid.MustParse("7a1d2f30-0006-4a7e-9b1c-0d9e51c00006"),
			Name:     "Tambour Hardware",
			Category: "Hardware",
			Location: geo.NewCoordinate(32.0855, 34.7815),
			Inventory: []domain.InventoryEntry{
				{Name: "Claw Hammer", Price: 45.00},
				{Name: "Wall Paint 5L", Price: 85.00},
				{Name: "Screws Assortment", Price: 15.00},
				{Name: "Power Drill", Price: 250.00},
				{Name: "LED Lightbulb", Price: 12.00},
			},
		},
		{
			ID:       uuid.MustParse("7a1d2f30-0007-4a7e-9b1c-0d9e51c00007"),
			Name:     "Ace Hardware",
			Category: "Hardware",
			Location: geo.NewCoordinate(32.0820, 34.7790),
			Inventory: []domain.InventoryEntry{
				{Name: "Claw Hammer", Price: 39.00},
				{Name: "Wall Paint 5L", Price: 90.00},
				{Name: "Step Ladder", Price: 150.00},
				{Name: "Wood Glue", Price: 20.00},
			},
		},
	}
}
