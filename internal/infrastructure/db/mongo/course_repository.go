package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kambaz/kambaz-api/internal/core/domain"
	"github.com/kambaz/kambaz-api/internal/core/ports"
)

const collectionCourses = "courses"

// CourseRepository provides typed access to the courses collection. Reads
// populate modules through a $lookup against the modules collection.
type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

// Create inserts a new course. The store always assigns identity; any id on
// c is overwritten.
func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.ID = uuid.NewString()
	c.Modules = nil

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return nil, &domain.StoreError{Op: "insert course", Err: err}
	}
	return c, nil
}

// modulesLookup expands the stored course's module references on read.
var modulesLookup = bson.D{{Key: "$lookup", Value: bson.D{
	{Key: "from", Value: collectionModules},
	{Key: "localField", Value: "_id"},
	{Key: "foreignField", Value: "course"},
	{Key: "as", Value: "modules"},
}}}

func (r *CourseRepository) FindAll(ctx context.Context) ([]domain.Course, error) {
	return r.aggregate(ctx, mongo.Pipeline{modulesLookup})
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	courses, err := r.aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
		modulesLookup,
	})
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, domain.ErrCourseNotFound
	}
	return &courses[0], nil
}

// FindForEnrolledUser joins courses against enrollments: a course is
// retained when at least one enrollment row matches (userID, course id),
// and every retained course is annotated enrolled: true.
func (r *CourseRepository) FindForEnrolledUser(ctx context.Context, userID string) ([]domain.Course, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionEnrollments},
			{Key: "let", Value: bson.M{"courseId": "$_id"}},
			{Key: "pipeline", Value: bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$user", userID}},
					bson.M{"$eq": bson.A{"$course", "$$courseId"}},
				}}}},
			}},
			{Key: "as", Value: "enrollment"},
		}}},
		bson.D{{Key: "$match", Value: bson.M{"enrollment": bson.M{"$ne": bson.A{}}}}},
		bson.D{{Key: "$addFields", Value: bson.M{"enrolled": true}}},
		bson.D{{Key: "$project", Value: bson.M{"enrollment": 0}}},
	}
	return r.aggregate(ctx, pipeline)
}

func (r *CourseRepository) Update(ctx context.Context, id string, patch ports.CoursePatch) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := coursePatchToSet(patch)
	if len(set) == 0 {
		return 0, nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, &domain.StoreError{Op: "update course", Err: err}
	}
	return res.MatchedCount, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, &domain.StoreError{Op: "delete course", Err: err}
	}
	return res.DeletedCount, nil
}

func (r *CourseRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, &domain.StoreError{Op: "aggregate courses", Err: err}
	}
	defer cur.Close(ctx)

	courses := []domain.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, &domain.StoreError{Op: "decode courses", Err: err}
	}
	return courses, nil
}

func coursePatchToSet(patch ports.CoursePatch) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Number != nil {
		set["number"] = *patch.Number
	}
	if patch.StartDate != nil {
		set["startDate"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["endDate"] = *patch.EndDate
	}
	if patch.Department != nil {
		set["department"] = *patch.Department
	}
	if patch.Credits != nil {
		set["credits"] = *patch.Credits
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Author != nil {
		set["author"] = *patch.Author
	}
	return set
}
