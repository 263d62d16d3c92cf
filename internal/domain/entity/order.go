package entity

// OrderDraft is the record a single conversation accumulates field by field.
// It is owned by exactly one Session and handed to the order store read-only
// on confirmation.
type OrderDraft struct {
	FullName string
	Contact  string
	Model    string
	Storage  string
	Color    string
	Charger  bool
	Delivery string
}

// Reset clears every collected field.
func (d *OrderDraft) Reset() {
	*d = OrderDraft{}
}

// ClearProduct drops the product selection but keeps the customer fields.
// Used when the chosen model turns out to be out of stock.
func (d *OrderDraft) ClearProduct() {
	d.Model = ""
	d.Storage = ""
	d.Color = ""
	d.Charger = false
}

// ChargerLabel renders the charger flag the way the order sheet expects it.
func (d OrderDraft) ChargerLabel() string {
	if d.Charger {
		return "Да"
	}
	return "Нет"
}
