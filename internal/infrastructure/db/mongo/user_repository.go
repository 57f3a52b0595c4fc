package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kambaz/kambaz-api/internal/core/domain"
	"github.com/kambaz/kambaz-api/internal/core/ports"
)

const collectionUsers = "users"

// UserRepository provides typed access to the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// Create inserts a new user document. Missing ids are store-assigned.
// Duplicate-key violations are mapped to the conflict errors so the
// check-then-insert race in signup collapses to the same failure mode as
// the pre-check.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "username") {
				return nil, domain.ErrUsernameTaken
			}
			return nil, domain.ErrUserIDExists
		}
		return nil, &domain.StoreError{Op: "insert user", Err: err}
	}
	return u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.find(ctx, bson.M{"role": role})
}

// FindByPartialName matches the substring case-insensitively against first
// or last name.
func (r *UserRepository) FindByPartialName(ctx context.Context, part string) ([]domain.User, error) {
	regex := bson.M{"$regex": part, "$options": "i"}
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"firstName": regex},
		bson.M{"lastName": regex},
	}})
}

// Update applies patch as a $set by id and returns the matched count.
func (r *UserRepository) Update(ctx context.Context, id string, patch ports.UserPatch) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := userPatchToSet(patch)
	if len(set) == 0 {
		return 0, nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, &domain.StoreError{Op: "update user", Err: err}
	}
	return res.MatchedCount, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, &domain.StoreError{Op: "delete user", Err: err}
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the unique username index backing the signup
// uniqueness invariant.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, &domain.StoreError{Op: "find user", Err: err}
	}
	return &u, nil
}

func (r *UserRepository) find(ctx context.Context, filter bson.M) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, &domain.StoreError{Op: "find users", Err: err}
	}
	defer cur.Close(ctx)

	users := []domain.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, &domain.StoreError{Op: "decode users", Err: err}
	}
	return users, nil
}

func userPatchToSet(patch ports.UserPatch) bson.M {
	set := bson.M{}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.LoginID != nil {
		set["loginId"] = *patch.LoginID
	}
	if patch.Section != nil {
		set["section"] = *patch.Section
	}
	if patch.LastActivity != nil {
		set["lastActivity"] = *patch.LastActivity
	}
	if patch.TotalActivity != nil {
		set["totalActivity"] = *patch.TotalActivity
	}
	return set
}
