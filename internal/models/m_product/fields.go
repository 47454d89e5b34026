package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID      = "product_id"
	ColName           = "name"
	ColPrice          = "price"
	ColDescription    = "description"
	ColExpirationDate = "expiration_date"
	ColCategory       = "category"
	ColImage          = "image"
	ColCreatedAt      = "created_at"
	ColUpdatedAt      = "updated_at"
)

// ReadColumns is the column order used when reading full product rows.
var ReadColumns = []string{
	ColProductID,
	ColName,
	ColPrice,
	ColDescription,
	ColExpirationDate,
	ColCategory,
	ColImage,
	ColCreatedAt,
}
