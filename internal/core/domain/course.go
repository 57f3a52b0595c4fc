package domain

// Course is a catalog entry owned by its authoring user. Modules are a
// read-side expansion of the modules collection; they are never written
// through the course document. Enrolled is set only by the enrollment join
// query.
type Course struct {
	ID          string   `json:"_id" bson:"_id"`
	Title       string   `json:"title" bson:"title"`
	Number      string   `json:"number,omitempty" bson:"number,omitempty"`
	StartDate   string   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Department  string   `json:"department,omitempty" bson:"department,omitempty"`
	Credits     int      `json:"credits,omitempty" bson:"credits,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Author      string   `json:"author,omitempty" bson:"author,omitempty"`
	Modules     []Module `json:"modules,omitempty" bson:"modules,omitempty"`
	Enrolled    bool     `json:"enrolled,omitempty" bson:"enrolled,omitempty"`
}
