package m_product

import (
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for a product using a map of values.
// Expected keys are the column names declared in fields.go.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return spanner.InsertMap(TableName, values)
}

// UpdateMutation builds a spanner.Update mutation for a product.
// The values map should NOT include the product_id key; it is added here as
// the primary key.
func UpdateMutation(productID string, values map[string]interface{}) *spanner.Mutation {
	row := make(map[string]interface{}, len(values)+1)
	for col, v := range values {
		row[col] = v
	}
	row[ColProductID] = productID
	return spanner.UpdateMap(TableName, row)
}

// DeleteMutation removes the product row with the given id.
func DeleteMutation(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}

// BuildInsertMap prepares the canonical fields for insertion.
// Optional columns (description, expiration_date, image) are NULL when empty.
func BuildInsertMap(productID, name string, price float64, description string,
	expiration time.Time, category, image string, createdAt, updatedAt time.Time) map[string]interface{} {

	return map[string]interface{}{
		ColProductID:      productID,
		ColName:           name,
		ColPrice:          price,
		ColDescription:    NullableString(description),
		ColExpirationDate: NullableDate(expiration),
		ColCategory:       category,
		ColImage:          NullableString(image),
		ColCreatedAt:      createdAt.UTC(),
		ColUpdatedAt:      updatedAt.UTC(),
	}
}

// NullableString maps "" to a NULL STRING.
func NullableString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

// NullableDate maps the zero time to a NULL DATE.
func NullableDate(t time.Time) spanner.NullDate {
	if t.IsZero() {
		return spanner.NullDate{}
	}
	return spanner.NullDate{Date: civil.DateOf(t), Valid: true}
}
