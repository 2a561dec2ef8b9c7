package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
)

const usersCollection = "users"

// UserStore persists user records in a MongoDB collection. A unique index on
// username makes Insert an atomic check-and-insert: a racing duplicate fails
// with a duplicate-key error, which maps to domain.ErrUserExists.
type UserStore struct {
	coll *mongo.Collection
}

type mongoUser struct {
	Username     string `bson:"username"`
	FullName     string `bson:"full_name"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
}

// NewUserStore builds the store and ensures the unique username index exists.
func NewUserStore(ctx context.Context, db *mongo.Database) (*UserStore, error) {
	coll := db.Collection(usersCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create username index: %w", err)
	}
	return &UserStore{coll: coll}, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var mu mongoUser
	if err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(mu), nil
}

func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	doc := mongoUser{
		Username:     user.Username,
		FullName:     user.FullName,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) All(ctx context.Context) ([]domain.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *toDomain(mu))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func toDomain(mu mongoUser) *domain.User {
	return &domain.User{
		Username:     mu.Username,
		FullName:     mu.FullName,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
	}
}
