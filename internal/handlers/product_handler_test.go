package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantSyncListArrayForm(t *testing.T) {
	payload := `[{"sku":"S","quantity":3},{"sku":"M","quantity":5}]`

	var list VariantSyncList
	require.NoError(t, json.Unmarshal([]byte(payload), &list))

	require.Len(t, list, 2)
	assert.Equal(t, "S", list[0].Sku)
	assert.Equal(t, 5, list[1].Quantity)
}

func TestVariantSyncListMapFormOrdersNumerically(t *testing.T) {
	payload := `{"10":{"sku":"XL"},"2":{"sku":"M"},"0":{"sku":"S"}}`

	var list VariantSyncList
	require.NoError(t, json.Unmarshal([]byte(payload), &list))

	require.Len(t, list, 3)
	assert.Equal(t, "S", list[0].Sku)
	assert.Equal(t, "M", list[1].Sku)
	assert.Equal(t, "XL", list[2].Sku)
}

func TestVariantSyncListRejectsScalar(t *testing.T) {
	var list VariantSyncList
	assert.Error(t, json.Unmarshal([]byte(`"not a list"`), &list))
}
