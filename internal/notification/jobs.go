package notification

import (
	"fmt"
	"strings"

	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
)

type jobKind string

const (
	jobProductCreated jobKind = "product_created"
	jobProductUpdated jobKind = "product_updated"
)

type job struct {
	Kind      jobKind
	ProductID int64
}

func productEmail(kind jobKind, product *catalogdomain.Product, categoryName string) (subject, body string) {
	var b strings.Builder
	switch kind {
	case jobProductCreated:
		subject = fmt.Sprintf("New Product Added: %s", product.Name)
		b.WriteString("A new product has been added to our catalog:\n\n")
	case jobProductUpdated:
		subject = fmt.Sprintf("Product Updated: %s", product.Name)
		b.WriteString("A product has been updated in our catalog:\n\n")
	}

	b.WriteString("Product Details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", product.Name)
	fmt.Fprintf(&b, "- SKU: %s\n", product.SKU)
	fmt.Fprintf(&b, "- Price: $%.2f\n", product.Price)
	fmt.Fprintf(&b, "- Category: %s\n", categoryName)
	fmt.Fprintf(&b, "- Stock: %d units\n", product.StockQuantity)
	if product.Description != nil && *product.Description != "" {
		b.WriteString("\nProduct Description:\n")
		b.WriteString(*product.Description)
		b.WriteString("\n")
	}
	b.WriteString("\nBest regards,\nSellApp Team\n")
	return subject, b.String()
}

func lowStockEmail(products []catalogdomain.Product) (subject, body string) {
	var b strings.Builder
	b.WriteString("The following products have low stock:\n\n")
	for i := range products {
		fmt.Fprintf(&b, "- %s (SKU: %s): %d units\n", products[i].Name, products[i].SKU, products[i].StockQuantity)
	}
	b.WriteString("\nPlease restock these products soon.\n")
	return "Low Stock Alert", b.String()
}
