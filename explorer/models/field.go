package models

// Field is a single name/value pair of a flattened record, kept in display order
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
