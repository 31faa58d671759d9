package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrNoRecord           = errors.New("user not found")
)

type UserRepository struct {
	Collection *mongo.Collection
}

// Insert creates a user with a bcrypt password hash. userType defaults to
// customer when empty.
func (m *UserRepository) Insert(ctx context.Context, u models.User, password string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := m.Collection.FindOne(ctx, bson.M{"email": u.Email}).Err()
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	u.ID = primitive.NewObjectID()
	u.PasswordHash = string(hashed)
	if u.UserType == "" {
		u.UserType = models.RoleCustomer
	}
	u.CreatedAt = time.Now()

	if _, err := m.Collection.InsertOne(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *UserRepository) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := m.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return &user, nil
}

func (m *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoRecord
	}
	return &user, err
}

func (m *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	cur, err := m.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	users := []*models.User{}
	err = cur.All(ctx, &users)
	return users, err
}

// Update replaces the mutable profile fields. Empty fields are left as-is.
func (m *UserRepository) Update(ctx context.Context, id primitive.ObjectID, u models.User) error {
	set := bson.M{}
	if u.FirstName != "" {
		set["first_name"] = u.FirstName
	}
	if u.LastName != "" {
		set["last_name"] = u.LastName
	}
	if u.Email != "" {
		set["email"] = u.Email
	}
	if u.UserType != "" {
		set["user_type"] = u.UserType
	}
	if u.Phone != "" {
		set["phone"] = u.Phone
	}
	if u.Address != "" {
		set["address"] = u.Address
	}
	if len(set) == 0 {
		return nil
	}
	res, err := m.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

func (m *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoRecord
	}
	return nil
}
