package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_TablesInDependencyOrder(t *testing.T) {
	sql := render()

	prev := -1
	for _, name := range []string{"categories", "users", "products", "cart_items", "orders", "order_items", "reviews", "wishlists"} {
		i := strings.Index(sql, "CREATE TABLE IF NOT EXISTS "+name+" ")
		if i < 0 {
			i = strings.Index(sql, "CREATE TABLE IF NOT EXISTS "+name+"(")
		}
		if !assert.GreaterOrEqual(t, i, 0, name) {
			continue
		}
		assert.Greater(t, i, prev, name)
		prev = i
	}
}
