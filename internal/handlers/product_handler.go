package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"go-shop-backend/internal/database"
	"go-shop-backend/internal/inventory"
	"go-shop-backend/internal/models"
	"go-shop-backend/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	CategoryID  uint            `json:"category_id"`
	BrandID     uint            `json:"brand_id"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Discount    decimal.Decimal `json:"discount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
}

// --- POST: Create a new product (starts as draft) ---
func CreateProduct(c *gin.Context) {
	var input ProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	product := models.Product{
		Name:        input.Name,
		CategoryID:  input.CategoryID,
		BrandID:     input.BrandID,
		BasePrice:   input.BasePrice,
		Discount:    input.Discount,
		Description: input.Description,
		Status:      models.ProductStatusDraft,
	}

	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "Product created",
		"data":    gin.H{"product_id": product.ID, "slug": product.Slug},
	})
}

// --- PUT: Update product fields ---
func UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid Product ID"})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Product not found"})
		return
	}

	var input ProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
		"brand_id":    input.BrandID,
		"base_price":  input.BasePrice,
		"discount":    input.Discount,
		"description": input.Description,
	}
	if input.Status == models.ProductStatusDraft || input.Status == models.ProductStatusPublished {
		updates["status"] = input.Status
	}

	if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Product updated successfully",
		"data":    gin.H{"product_id": product.ID},
	})
}

// --- PUT: Publish a draft ---
func PublishProduct(c *gin.Context) {
	var product models.Product
	if err := database.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Product not found"})
		return
	}

	if product.Status == models.ProductStatusPublished {
		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Product already published"})
		return
	}

	if err := database.DB.Model(&product).Update("status", models.ProductStatusPublished).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Product published successfully"})
}

// --- GET: Paginated product listing with name search ---
func ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	search := c.Query("search")
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	q := database.DB.Model(&models.Product{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch products"})
		return
	}

	var products []models.Product
	err := q.Preload("Category").Preload("Brand").
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"data":   products,
		"pagination": gin.H{
			"total":      total,
			"page":       page,
			"perPage":    perPage,
			"totalPages": (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

// --- GET: Full product detail with variants, tax and SEO meta ---
func GetProduct(c *gin.Context) {
	var product models.Product
	err := database.DB.
		Preload("Category").
		Preload("Brand").
		Preload("Tax").
		Preload("Variants").
		First(&product, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Product not found"})
		return
	}

	var meta models.ProductSeoMeta
	if err := database.DB.Where("product_id = ?", product.ID).First(&meta).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"status": true, "data": gin.H{"product": product, "meta": meta}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": gin.H{"product": product}})
}

// --- GET: Storefront product by slug (published only) ---
func GetProductBySlug(c *gin.Context) {
	var product models.Product
	err := database.DB.
		Where("slug = ? AND status = ?", c.Param("slug"), models.ProductStatusPublished).
		Preload("Category").
		Preload("Brand").
		Preload("Tax").
		Preload("Variants").
		First(&product).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Product not found"})
		return
	}

	// Display prices are computed server-side: effective base plus the
	// per-variant line price, GST applied per the tax affinity.
	tax := pricing.TaxFromAffinity(product.Tax)
	display := gin.H{
		"product": product,
		"price":   pricing.Round2(pricing.LinePrice(product.BasePrice, decimal.Zero, product.Discount, tax)),
	}

	variantPrices := make(map[uint]decimal.Decimal, len(product.Variants))
	for _, v := range product.Variants {
		variantPrices[v.ID] = pricing.Round2(pricing.LinePrice(product.BasePrice, v.ExtraPrice, product.Discount, tax))
	}
	display["variant_prices"] = variantPrices

	c.JSON(http.StatusOK, gin.H{"status": true, "data": display})
}

// VariantSyncInput is one variant row in a sync payload.
type VariantSyncInput struct {
	ID          *uint           `json:"id"` // nil = create
	Sku         string          `json:"sku"`
	ExtraPrice  decimal.Decimal `json:"extra_price"`
	Quantity    int             `json:"quantity"`
	LowQuantity int             `json:"low_quantity"`
}

// VariantSyncList accepts an array or an index-keyed map (the form-encoder
// shape) and normalizes to one ordered sequence before any business logic
// runs.
type VariantSyncList []VariantSyncInput

func (l *VariantSyncList) UnmarshalJSON(data []byte) error {
	var arr []VariantSyncInput
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}

	var byIndex map[string]VariantSyncInput
	if err := json.Unmarshal(data, &byIndex); err != nil {
		return err
	}

	keys := make([]string, 0, len(byIndex))
	for k := range byIndex {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})

	items := make([]VariantSyncInput, 0, len(keys))
	for _, k := range keys {
		items = append(items, byIndex[k])
	}
	*l = items
	return nil
}

type variantSyncResult struct {
	Index     int    `json:"index"`
	VariantID uint   `json:"variant_id,omitempty"`
	Ok        bool   `json:"ok"`
	Message   string `json:"message,omitempty"`
}

// --- POST: Create/update a product's variants in one batch ---
// Every item gets an explicit per-item result; nothing is silently
// skipped.
func SyncVariants(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid Product ID"})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Product not found"})
		return
	}

	var body struct {
		Variants VariantSyncList `json:"variants"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid variants payload"})
		return
	}

	results := make([]variantSyncResult, 0, len(body.Variants))
	allOk := true

	for i, v := range body.Variants {
		res := variantSyncResult{Index: i, Ok: true}

		if v.ID != nil {
			var existing models.Variant
			if err := database.DB.First(&existing, *v.ID).Error; err != nil {
				res.Ok = false
				res.Message = "Variant not found"
				allOk = false
				results = append(results, res)
				continue
			}

			updates := map[string]interface{}{
				"sku":          v.Sku,
				"extra_price":  v.ExtraPrice,
				"low_quantity": v.LowQuantity,
			}
			if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
				res.Ok = false
				res.Message = "Update failed"
				allOk = false
				results = append(results, res)
				continue
			}
			// Stock corrections go through the ledger, under the same
			// row lock a sale takes.
			err := database.DB.Transaction(func(tx *gorm.DB) error {
				return inventory.SetQuantity(tx, existing.ID, v.Quantity)
			})
			if err != nil {
				res.Ok = false
				res.Message = "Stock update failed"
				allOk = false
			}
			res.VariantID = existing.ID
		} else {
			variant := models.Variant{
				ProductID:   uint(productID),
				Sku:         v.Sku,
				ExtraPrice:  v.ExtraPrice,
				Quantity:    v.Quantity,
				LowQuantity: v.LowQuantity,
			}
			if err := database.DB.Create(&variant).Error; err != nil {
				res.Ok = false
				res.Message = "Create failed"
				allOk = false
			} else {
				res.VariantID = variant.ID
			}
		}

		results = append(results, res)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  allOk,
		"message": "Variants synced",
		"results": results,
	})
}

// --- PUT: Update one variant ---
func UpdateVariant(c *gin.Context) {
	var variant models.Variant
	if err := database.DB.First(&variant, c.Param("variantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Variant not found"})
		return
	}

	var input VariantSyncInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	updates := map[string]interface{}{
		"sku":          input.Sku,
		"extra_price":  input.ExtraPrice,
		"low_quantity": input.LowQuantity,
	}
	if err := database.DB.Model(&variant).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return inventory.SetQuantity(tx, variant.ID, input.Quantity)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Stock update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Variant updated successfully"})
}

type TaxRequest struct {
	GstEnabled      bool            `json:"gst_enabled"`
	GstType         string          `json:"gst_type"`
	GstPercent      decimal.Decimal `json:"gst_percent"`
	AffinityEnabled bool            `json:"affinity_enabled"`
	AffinityPercent decimal.Decimal `json:"affinity_percent"`
}

// --- PUT: Upsert the product's GST configuration ---
func UpdateProductTax(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid Product ID"})
		return
	}

	var input TaxRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	if input.GstType != models.GstTypeInclusive && input.GstType != models.GstTypeExclusive {
		input.GstType = models.GstTypeExclusive
	}
	// Percent resets when disabled
	if !input.GstEnabled {
		input.GstPercent = decimal.Zero
	}
	if !input.AffinityEnabled {
		input.AffinityPercent = decimal.Zero
	}

	var tax models.ProductTaxAffinity
	err = database.DB.Where("product_id = ?", productID).First(&tax).Error
	if err != nil {
		tax = models.ProductTaxAffinity{ProductID: uint(productID)}
	}

	tax.GstEnabled = input.GstEnabled
	tax.GstType = input.GstType
	tax.GstPercent = input.GstPercent
	tax.AffinityEnabled = input.AffinityEnabled
	tax.AffinityPercent = input.AffinityPercent

	if err := database.DB.Save(&tax).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Tax updated successfully"})
}

type SeoMetaRequest struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaTags        string `json:"meta_tags"`
}

// --- PUT: Upsert the product's SEO meta row ---
func UpdateProductMeta(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Product ID is required"})
		return
	}

	var input SeoMetaRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	var meta models.ProductSeoMeta
	err = database.DB.Where("product_id = ?", productID).First(&meta).Error
	if err != nil {
		meta = models.ProductSeoMeta{ProductID: uint(productID)}
	}

	meta.MetaTitle = input.MetaTitle
	meta.MetaDescription = input.MetaDescription
	meta.MetaTags = input.MetaTags

	if err := database.DB.Save(&meta).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "SEO meta updated successfully"})
}

// --- GET: POS terminal product palette (published, effective price) ---
func GetPOSProducts(c *gin.Context) {
	q := database.DB.Model(&models.Product{}).Where("status = ?", models.ProductStatusPublished)

	if cat := c.DefaultQuery("category", "all"); cat != "all" {
		q = q.Where("category_id = ?", cat)
	}
	if brand := c.DefaultQuery("brand", "all"); brand != "all" {
		q = q.Where("brand_id = ?", brand)
	}

	var products []models.Product
	if err := q.Preload("Variants").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	data := make([]gin.H, 0, len(products))
	for i := range products {
		p := &products[i]
		data = append(data, gin.H{
			"id":       p.ID,
			"name":     p.Name,
			"price":    pricing.Round2(pricing.EffectivePrice(p)),
			"category": p.CategoryID,
			"brand":    p.BrandID,
			"variants": p.Variants,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

// --- GET: POS category filter strip ---
func GetPOSCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	data := []gin.H{{"id": "all", "name": "All"}}
	for _, cat := range categories {
		data = append(data, gin.H{"id": cat.ID, "name": cat.Name})
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

// --- GET: POS brand filter strip ---
func GetPOSBrands(c *gin.Context) {
	var brands []models.Brand
	if err := database.DB.Find(&brands).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	data := []gin.H{{"id": "all", "name": "All"}}
	for _, b := range brands {
		data = append(data, gin.H{"id": b.ID, "name": b.Name})
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}
