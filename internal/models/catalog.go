package models

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product publication states
const (
	ProductStatusDraft     = "draft"
	ProductStatusPublished = "published"
)

// GST types for ProductTaxAffinity
const (
	GstTypeInclusive = "inclusive"
	GstTypeExclusive = "exclusive"
)

// Category - top level catalog grouping
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:120" json:"slug"`
	Image     string    `gorm:"size:255" json:"image"`
	Status    string    `gorm:"size:20;default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Brand - manufacturer / label
type Brand struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:120" json:"slug"`
	Image     string    `gorm:"size:255" json:"image"`
	Status    string    `gorm:"size:20;default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product - the catalog entry. Orders never join back to this for pricing;
// order lines carry their own snapshot price.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Slug        string          `gorm:"uniqueIndex;size:280" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	CategoryID  uint            `gorm:"index" json:"category_id"`
	BrandID     uint            `gorm:"index" json:"brand_id"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"base_price"`
	Discount    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount"`
	Status      string          `gorm:"size:20;default:draft" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Category *Category          `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *Brand             `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Tax      *ProductTaxAffinity `gorm:"foreignKey:ProductID" json:"tax,omitempty"`
	Variants []Variant          `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// ProductTaxAffinity - per-product GST configuration
type ProductTaxAffinity struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ProductID       uint            `gorm:"uniqueIndex;not null" json:"product_id"`
	GstEnabled      bool            `gorm:"default:false" json:"gst_enabled"`
	GstType         string          `gorm:"size:20;default:exclusive" json:"gst_type"`
	GstPercent      decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"gst_percent"`
	AffinityEnabled bool            `gorm:"default:false" json:"affinity_enabled"`
	AffinityPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"affinity_percent"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductSeoMeta - one row per product, upserted from the dashboard
type ProductSeoMeta struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ProductID       uint      `gorm:"uniqueIndex;not null" json:"product_id"`
	MetaTitle       string    `gorm:"size:255" json:"meta_title"`
	MetaDescription string    `gorm:"size:500" json:"meta_description"`
	MetaTags        string    `gorm:"size:500" json:"meta_tags"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Variant - a purchasable SKU combination of a product. Quantity is only
// ever mutated through the inventory ledger under a row lock.
type Variant struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProductID   uint            `gorm:"index;not null" json:"product_id"`
	Sku         string          `gorm:"size:100" json:"sku"`
	ExtraPrice  decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"extra_price"`
	Quantity    int             `gorm:"default:0" json:"quantity"`
	LowQuantity int             `gorm:"default:0" json:"low_quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Variant) TableName() string { return "product_variants" }

// uniqueSlug derives a slug from name and resolves collisions with a
// numeric suffix (shirt, shirt-2, shirt-3, ...).
func uniqueSlug(tx *gorm.DB, table, name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var n int64
		if err := tx.Table(table).Where("slug = ?", candidate).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Slug != "" || c.Name == "" {
		return nil
	}
	s, err := uniqueSlug(tx, "categories", c.Name)
	if err != nil {
		return err
	}
	c.Slug = s
	return nil
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.Slug != "" || b.Name == "" {
		return nil
	}
	s, err := uniqueSlug(tx, "brands", b.Name)
	if err != nil {
		return err
	}
	b.Slug = s
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Slug != "" || p.Name == "" {
		return nil
	}
	s, err := uniqueSlug(tx, "products", p.Name)
	if err != nil {
		return err
	}
	p.Slug = s
	return nil
}
