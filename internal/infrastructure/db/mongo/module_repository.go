package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kambaz/kambaz-api/internal/core/domain"
	"github.com/kambaz/kambaz-api/internal/core/ports"
)

const collectionModules = "modules"

// ModuleRepository provides typed access to the modules collection.
type ModuleRepository struct {
	col *mongo.Collection
}

func NewModuleRepository(db *mongo.Database) *ModuleRepository {
	return &ModuleRepository{col: db.Collection(collectionModules)}
}

// Create inserts a new module. The store always assigns identity.
func (r *ModuleRepository) Create(ctx context.Context, m *domain.Module) (*domain.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m.ID = uuid.NewString()

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return nil, &domain.StoreError{Op: "insert module", Err: err}
	}
	return m, nil
}

func (r *ModuleRepository) FindForCourse(ctx context.Context, courseID string) ([]domain.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"course": courseID})
	if err != nil {
		return nil, &domain.StoreError{Op: "find modules", Err: err}
	}
	defer cur.Close(ctx)

	modules := []domain.Module{}
	if err := cur.All(ctx, &modules); err != nil {
		return nil, &domain.StoreError{Op: "decode modules", Err: err}
	}
	return modules, nil
}

func (r *ModuleRepository) Update(ctx context.Context, id string, patch ports.ModulePatch) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Course != nil {
		set["course"] = *patch.Course
	}
	if len(set) == 0 {
		return 0, nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, &domain.StoreError{Op: "update module", Err: err}
	}
	return res.MatchedCount, nil
}

func (r *ModuleRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, &domain.StoreError{Op: "delete module", Err: err}
	}
	return res.DeletedCount, nil
}
