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

const adminCollection = "admins"

type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(adminCollection)}
}

type adminDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ProfilePicture string             `bson:"profile_picture,omitempty"`
	Firstname      string             `bson:"firstname"`
	MiddleInitial  string             `bson:"middle_initial,omitempty"`
	Lastname       string             `bson:"lastname"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	Password       string             `bson:"password"`
	IsSuperAdmin   bool               `bson:"isSuperAdmin"`
	Status         string             `bson:"status"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d *adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:             d.ID.Hex(),
		ProfilePicture: d.ProfilePicture,
		Firstname:      d.Firstname,
		MiddleInitial:  d.MiddleInitial,
		Lastname:       d.Lastname,
		Username:       d.Username,
		Email:          d.Email,
		PasswordHash:   d.Password,
		IsSuperAdmin:   d.IsSuperAdmin,
		Status:         domain.AdminStatus(d.Status),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := adminDoc{
		ProfilePicture: admin.ProfilePicture,
		Firstname:      admin.Firstname,
		MiddleInitial:  admin.MiddleInitial,
		Lastname:       admin.Lastname,
		Username:       admin.Username,
		Email:          admin.Email,
		Password:       admin.PasswordHash,
		IsSuperAdmin:   admin.IsSuperAdmin,
		Status:         string(admin.Status),
		CreatedAt:      admin.CreatedAt,
		UpdatedAt:      admin.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	created := *admin
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []adminDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode admins: %w", err)
	}

	admins := make([]domain.Admin, 0, len(docs))
	for i := range docs {
		admins = append(admins, *docs[i].toDomain())
	}
	return admins, nil
}

func (r *AdminRepository) Update(ctx context.Context, id string, update ports.AdminUpdate) (*domain.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.ProfilePicture != nil {
		set["profile_picture"] = *update.ProfilePicture
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
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.PasswordHash != nil {
		set["password"] = *update.PasswordHash
	}
	if update.IsSuperAdmin != nil {
		set["isSuperAdmin"] = *update.IsSuperAdmin
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}

	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": set})
}

func (r *AdminRepository) Deactivate(ctx context.Context, id string) (*domain.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}

	set := bson.M{
		"status":     string(domain.AdminInactive),
		"updated_at": time.Now().UTC(),
	}
	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": set})
}

func (r *AdminRepository) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update bson.M) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc adminDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("update admin: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique indexes backing identity-field uniqueness.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
