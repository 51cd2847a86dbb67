package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sweetcrumb/cakeshop-backend/config"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Seeds the cake catalog. With no arguments the built-in starter
// catalog is loaded; with an xlsx path the catalog is imported from
// the spreadsheet (columns: name, description, price, image, category,
// rating).
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	var products []model.Product
	if len(os.Args) > 1 {
		filePath := os.Args[1]
		fmt.Printf("Reading XLSX file: %s\n", filePath)
		products, err = readProductsFromXLSX(filePath)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
	} else {
		products = starterCatalog()
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	if err := db.GetDB().CreateInBatches(products, 100).Error; err != nil {
		log.Fatal("Failed to create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func starterCatalog() []model.Product {
	return []model.Product{
		{Name: "Chocolate Dream", Description: "Rich chocolate sponge with dark ganache layers", Price: 45, Category: "chocolate", Rating: 4.8},
		{Name: "Vanilla Wedding", Description: "Three-tier vanilla cake with buttercream roses", Price: 120, Category: "wedding", Rating: 4.9},
		{Name: "Red Velvet Classic", Description: "Southern red velvet with cream cheese frosting", Price: 38, Category: "classic", Rating: 4.7},
		{Name: "Rainbow Celebration", Description: "Six colorful layers under white frosting", Price: 52, Category: "birthday", Rating: 4.6},
		{Name: "Blueberry Cheesecake", Description: "Baked cheesecake topped with blueberry compote", Price: 42, Category: "cheesecake", Rating: 4.8},
		{Name: "Chocolate Lava", Description: "Warm-centered chocolate cake for sharing", Price: 28, Category: "chocolate", Rating: 4.5},
		{Name: "Strawberry Shortcake", Description: "Light sponge with fresh strawberries and cream", Price: 35, Category: "classic", Rating: 4.7},
		{Name: "Tiramisu Delight", Description: "Espresso-soaked layers with mascarpone", Price: 48, Category: "specialty", Rating: 4.9},
		{Name: "Lemon Sunshine", Description: "Zesty lemon cake with citrus glaze", Price: 32, Category: "classic", Rating: 4.4},
		{Name: "Carrot Garden", Description: "Spiced carrot cake with walnuts and cream cheese", Price: 40, Category: "classic", Rating: 4.6},
	}
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			// Header row
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 3 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" || seen[name] {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil || price < 0 {
			skipped++
			continue
		}

		product := model.Product{
			Name:        name,
			Description: strings.TrimSpace(row[1]),
			Price:       price,
		}
		if len(row) > 3 {
			product.Image = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			product.Category = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			if rating, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64); err == nil {
				product.Rating = rating
			}
		}

		seen[name] = true
		products = append(products, product)
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d invalid or duplicate rows\n", skipped)
	}

	return products, nil
}
