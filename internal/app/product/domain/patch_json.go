package domain

import (
	"bytes"
	"encoding/json"
)

// patchWire is the JSON shape of a Patch. expiration_date is kept raw so an
// explicit clear ("" or null) can be told apart from an absent key.
type patchWire struct {
	Name           *string         `json:"name,omitempty"`
	Price          *float64        `json:"price,omitempty"`
	Description    *string         `json:"description,omitempty"`
	ExpirationDate json.RawMessage `json:"expiration_date,omitempty"`
	Category       *string         `json:"category,omitempty"`
	Image          *string         `json:"image,omitempty"`
}

var emptyDate = []byte(`""`)

func (pt Patch) MarshalJSON() ([]byte, error) {
	w := patchWire{
		Name:        pt.Name,
		Price:       pt.Price,
		Description: pt.Description,
		Category:    pt.Category,
		Image:       pt.Image,
	}
	if pt.ExpirationDate != nil {
		if pt.ExpirationDate.IsZero() {
			w.ExpirationDate = emptyDate
		} else {
			raw, err := json.Marshal(pt.ExpirationDate.String())
			if err != nil {
				return nil, err
			}
			w.ExpirationDate = raw
		}
	}
	return json.Marshal(w)
}

func (pt *Patch) UnmarshalJSON(b []byte) error {
	var w patchWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*pt = Patch{
		Name:        w.Name,
		Price:       w.Price,
		Description: w.Description,
		Category:    w.Category,
		Image:       w.Image,
	}
	if len(w.ExpirationDate) == 0 {
		return nil
	}

	var d Date
	if !bytes.Equal(w.ExpirationDate, []byte("null")) {
		if err := d.UnmarshalJSON(w.ExpirationDate); err != nil {
			return err
		}
	}
	pt.ExpirationDate = &d
	return nil
}
