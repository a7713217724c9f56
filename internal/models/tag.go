package models

// Tag is a free-standing document used only for enumeration.
type Tag struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}
