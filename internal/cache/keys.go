package cache

import "fmt"

// Entity kinds used to build cache keys. The list key uses the plural
// collection name, matching what the read side caches under.
const (
	KindProduct   = "product"
	KindCategory  = "category"
	KindNews      = "news"
	KindPromotion = "promotion"
	KindComment   = "comment"
)

var listNames = map[string]string{
	KindProduct:   "products",
	KindCategory:  "categories",
	KindNews:      "news",
	KindPromotion: "promotions",
	KindComment:   "comments",
}

// EntityKey returns the per-entity cache key, e.g. "product_42".
func EntityKey(kind string, id int64) string {
	return fmt.Sprintf("%s_%d", kind, id)
}

// ListKey returns the collection cache key, e.g. "products_list".
func ListKey(kind string) string {
	name, ok := listNames[kind]
	if !ok {
		name = kind + "s"
	}
	return name + "_list"
}

// TargetKeys returns the aggregate keys affected by a comment on the given
// target, e.g. "product_7_comments" and "product_7_rating".
func TargetKeys(targetType string, targetID int64) []string {
	return []string{
		fmt.Sprintf("%s_%d_comments", targetType, targetID),
		fmt.Sprintf("%s_%d_rating", targetType, targetID),
	}
}
