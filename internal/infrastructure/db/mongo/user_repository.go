package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ireserve/ireserve-api/internal/core/domain"
	"github.com/ireserve/ireserve-api/internal/core/ports"
)

const userCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

type userDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	IDNumber      string             `bson:"id_number"`
	Firstname     string             `bson:"firstname"`
	MiddleInitial string             `bson:"middle_initial,omitempty"`
	Lastname      string             `bson:"lastname"`
	ProgramCourse string             `bson:"program_course,omitempty"`
	Email         string             `bson:"email"`
	Password      string             `bson:"password"`
	UserType      string             `bson:"user_type"`
	RemainingTime *string            `bson:"remaining_time"`
	IsDeleted     bool               `bson:"isDeleted"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:            d.ID.Hex(),
		IDNumber:      d.IDNumber,
		Firstname:     d.Firstname,
		MiddleInitial: d.MiddleInitial,
		Lastname:      d.Lastname,
		ProgramCourse: d.ProgramCourse,
		Email:         d.Email,
		PasswordHash:  d.Password,
		UserType:      domain.UserType(d.UserType),
		RemainingTime: d.RemainingTime,
		IsDeleted:     d.IsDeleted,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		IDNumber:      user.IDNumber,
		Firstname:     user.Firstname,
		MiddleInitial: user.MiddleInitial,
		Lastname:      user.Lastname,
		ProgramCourse: user.ProgramCourse,
		Email:         user.Email,
		Password:      user.PasswordHash,
		UserType:      string(user.UserType),
		RemainingTime: user.RemainingTime,
		IsDeleted:     user.IsDeleted,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// FindActiveByIDNumber excludes soft-deleted records at the query level, so
// a deleted account is indistinguishable from a missing one.
func (r *UserRepository) FindActiveByIDNumber(ctx context.Context, idNumber string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"id_number": idNumber, "isDeleted": false}

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"id_number": idNumber})
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"isDeleted": false})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, *docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.IDNumber != nil {
		set["id_number"] = *update.IDNumber
	}
	if update.Firstname != nil {
		set["firstname"] = *update.Firstname
	}
	if update.MiddleInitial != nil {
		set["middle_initial"] = *update.MiddleInitial
	}
	if update.Lastname != nil {
		set["lastname"] = *update.Lastname
	}
	if update.ProgramCourse != nil {
		set["program_course"] = *update.ProgramCourse
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.PasswordHash != nil {
		set["password"] = *update.PasswordHash
	}
	if update.UserType != nil {
		set["user_type"] = string(*update.UserType)
	}
	if update.RemainingTime != nil {
		set["remaining_time"] = *update.RemainingTime
	}

	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": set})
}

func (r *UserRepository) SoftDelete(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"isDeleted": true, "updated_at": time.Now().UTC()}
	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": set})
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique indexes backing identity-field uniqueness.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isDeleted", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
