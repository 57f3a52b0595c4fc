package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

const collectionEnrollments = "enrollments"

// EnrollmentRepository provides typed access to the enrollments collection.
type EnrollmentRepository struct {
	col *mongo.Collection
}

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{col: db.Collection(collectionEnrollments)}
}

// Enroll inserts an enrollment row for (userID, courseID). Pairs are not
// deduplicated; repeated calls insert repeated rows.
func (r *EnrollmentRepository) Enroll(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	e := &domain.Enrollment{
		ID:     uuid.NewString(),
		User:   userID,
		Course: courseID,
	}
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return nil, &domain.StoreError{Op: "insert enrollment", Err: err}
	}
	return e, nil
}
