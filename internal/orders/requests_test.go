package orders_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-shop-backend/internal/orders"
)

func TestPOSItemList_ArrayForm(t *testing.T) {
	payload := `[{"product_id":1,"qty":2,"price":10},{"product_id":2,"qty":1,"price":5}]`

	var items orders.POSItemList
	assert.NoError(t, json.Unmarshal([]byte(payload), &items))
	assert.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, uint(2), items[1].ProductID)
}

func TestPOSItemList_MapFormNormalizedInIndexOrder(t *testing.T) {
	// Form encoders send {"10":{...},"2":{...},"0":{...}}; the sequence
	// must come out in numeric index order, not lexical.
	payload := `{"10":{"product_id":11},"2":{"product_id":3},"0":{"product_id":1}}`

	var items orders.POSItemList
	assert.NoError(t, json.Unmarshal([]byte(payload), &items))
	assert.Len(t, items, 3)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, uint(3), items[1].ProductID)
	assert.Equal(t, uint(11), items[2].ProductID)
}

func TestPOSItemList_RejectsOtherShapes(t *testing.T) {
	var items orders.POSItemList
	assert.Error(t, json.Unmarshal([]byte(`"not items"`), &items))
}
