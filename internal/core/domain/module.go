package domain

// Module is a unit of course content. Course carries the owning course id.
type Module struct {
	ID          string `json:"_id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Course      string `json:"course" bson:"course"`
}
