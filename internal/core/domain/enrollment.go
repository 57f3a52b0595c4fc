package domain

// Enrollment links a user to a course. Pairs are not deduplicated; callers
// must not assume at most one enrollment per (user, course).
type Enrollment struct {
	ID     string `json:"_id" bson:"_id"`
	User   string `json:"user" bson:"user"`
	Course string `json:"course" bson:"course"`
}
