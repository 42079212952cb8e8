package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityKey(t *testing.T) {
	assert.Equal(t, "product_42", EntityKey(KindProduct, 42))
	assert.Equal(t, "category_7", EntityKey(KindCategory, 7))
	assert.Equal(t, "comment_1", EntityKey(KindComment, 1))
}

func TestListKeyPlurals(t *testing.T) {
	assert.Equal(t, "products_list", ListKey(KindProduct))
	assert.Equal(t, "categories_list", ListKey(KindCategory))
	assert.Equal(t, "news_list", ListKey(KindNews))
	assert.Equal(t, "promotions_list", ListKey(KindPromotion))
	assert.Equal(t, "comments_list", ListKey(KindComment))
}

func TestTargetKeys(t *testing.T) {
	keys := TargetKeys("product", 7)
	assert.Equal(t, []string{"product_7_comments", "product_7_rating"}, keys)
}
