package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }
func dateRef(d Date) *Date { return &d }

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("p1", Draft{
		Name:           "  Milk ",
		Price:          2.5,
		Description:    " whole ",
		ExpirationDate: NewDate(2024, time.April, 1),
		Category:       "dairy ",
	}, now.In(time.FixedZone("X", 3600)))
	require.NoError(t, err)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Milk", p.Name)
	assert.Equal(t, "whole", p.Description)
	assert.Equal(t, "dairy", p.Category)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, time.UTC, p.CreatedAt.Location())
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name string
		id   string
		d    Draft
		want error
	}{
		{"empty id", " ", Draft{Name: "x"}, ErrEmptyProductID},
		{"empty name", "p1", Draft{Name: "   "}, ErrEmptyProductName},
		{"long name", "p1", Draft{Name: strings.Repeat("a", 256)}, ErrProductNameTooLong},
		{"negative price", "p1", Draft{Name: "x", Price: -0.01}, ErrNegativePrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.id, tt.d, now)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidationError(err))
		})
	}

	_, err := NewProduct("p1", Draft{Name: "x", Price: 0}, now)
	assert.NoError(t, err)
}

func TestApply_OnlyPatchedFieldsChange(t *testing.T) {
	p, err := NewProduct("p1", Draft{Name: "Apple", Price: 10, Category: "fruit", Image: "a.png"}, now)
	require.NoError(t, err)

	updated, changes, err := p.Apply(Patch{Price: floatPtr(9.99)})
	require.NoError(t, err)

	want := p
	want.Price = 9.99
	assert.Equal(t, want, updated)
	assert.Equal(t, []string{FieldPrice}, changes.DirtyFields())
	assert.Equal(t, 10.0, p.Price, "receiver must not change")
}

func TestApply_SameValueIsNotAChange(t *testing.T) {
	p, err := NewProduct("p1", Draft{Name: "Apple", Price: 10}, now)
	require.NoError(t, err)

	_, changes, err := p.Apply(Patch{Name: strPtr(" Apple "), Price: floatPtr(10)})
	require.NoError(t, err)
	assert.False(t, changes.HasChanges())
}

func TestApply_ClearsExpiration(t *testing.T) {
	p, err := NewProduct("p1", Draft{Name: "Milk", ExpirationDate: NewDate(2024, 1, 2)}, now)
	require.NoError(t, err)

	cleared, changes, err := p.Apply(Patch{ExpirationDate: &Date{}})
	require.NoError(t, err)
	assert.True(t, cleared.ExpirationDate.IsZero())
	assert.True(t, changes.Dirty(FieldExpirationDate))
}

func TestApply_InvalidPatch(t *testing.T) {
	p, err := NewProduct("p1", Draft{Name: "Apple", Price: 10}, now)
	require.NoError(t, err)

	_, _, err = p.Apply(Patch{Name: strPtr("")})
	assert.ErrorIs(t, err, ErrEmptyProductName)

	_, _, err = p.Apply(Patch{Name: strPtr("ok"), Price: floatPtr(-1)})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestDiff(t *testing.T) {
	a, err := NewProduct("p1", Draft{Name: "Apple", Price: 10}, now)
	require.NoError(t, err)
	b := a
	b.Price = 11
	b.Image = "x.png"

	assert.Equal(t, []string{FieldPrice, FieldImage}, Diff(a, b).DirtyFields())
	assert.False(t, Diff(a, a).HasChanges())
	assert.Equal(t, map[string]interface{}{FieldPrice: 11.0, FieldImage: "x.png"}, b.FieldValues(Diff(a, b).DirtyFields()))
}

func TestPatch_JSON(t *testing.T) {
	var patch Patch
	require.NoError(t, json.Unmarshal([]byte(`{"price": 3, "expiration_date": "2024-12-31"}`), &patch))

	require.NotNil(t, patch.Price)
	assert.Equal(t, 3.0, *patch.Price)
	require.NotNil(t, patch.ExpirationDate)
	assert.Equal(t, "2024-12-31", patch.ExpirationDate.String())
	assert.Nil(t, patch.Name)
	assert.False(t, patch.IsEmpty())
	assert.True(t, Patch{}.IsEmpty())
}

func TestPatch_JSONKeepsExplicitDateClear(t *testing.T) {
	b, err := json.Marshal(Patch{ExpirationDate: &Date{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"expiration_date": ""}`, string(b))

	var back Patch
	require.NoError(t, json.Unmarshal(b, &back))
	require.NotNil(t, back.ExpirationDate)
	assert.True(t, back.ExpirationDate.IsZero())
	assert.False(t, back.IsEmpty())

	var fromNull Patch
	require.NoError(t, json.Unmarshal([]byte(`{"expiration_date": null}`), &fromNull))
	require.NotNil(t, fromNull.ExpirationDate)
	assert.True(t, fromNull.ExpirationDate.IsZero())

	var absent Patch
	require.NoError(t, json.Unmarshal([]byte(`{"name": "x"}`), &absent))
	assert.Nil(t, absent.ExpirationDate)

	b, err = json.Marshal(Patch{ExpirationDate: dateRef(NewDate(2024, time.May, 2))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"expiration_date": "2024-05-02"}`, string(b))

	var bad Patch
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"expiration_date": "soon"}`), &bad), ErrInvalidDate)
}

func TestNewProduct_RejectsNonFinitePrice(t *testing.T) {
	for _, price := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewProduct("p1", Draft{Name: "Apple", Price: price}, now)
		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.True(t, IsValidationError(err))
	}
}

func TestProduct_JSONShape(t *testing.T) {
	p, err := NewProduct("p1", Draft{Name: "Apple", Price: 1.5, Category: "fruit"}, now)
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "p1",
		"name": "Apple",
		"price": 1.5,
		"description": "",
		"expiration_date": null,
		"category": "fruit",
		"image": "",
		"created_at": "2024-03-01T12:00:00Z"
	}`, string(b))
}
