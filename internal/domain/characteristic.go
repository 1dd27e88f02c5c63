package domain

// CharacteristicValue is one reviewer's score for a named rating dimension
// of a product. The earliest stored value for a (product, characteristic)
// pair also defines the dimension's canonical name.
type CharacteristicValue struct {
	ProductID        int64   `json:"product_id"`
	CharacteristicID int64   `json:"characteristic_id"`
	Name             string  `json:"name"`
	ReviewID         string  `json:"review_id"`
	Value            float64 `json:"value"`
}

// Sequence is a named monotonic counter. The table is provisioned but no
// operation reads or advances it.
type Sequence struct {
	ID    string `json:"id"`
	Value int64  `json:"value"`
}
