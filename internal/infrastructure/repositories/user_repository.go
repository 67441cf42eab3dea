package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/you/healthportal/domain"
	"github.com/you/healthportal/internal/infrastructure/database"
)

// UserRepositoryImpl implements domain.UserRepository on MongoDB. The unique
// index on email makes the store the owner of the one-record-per-email
// guarantee, and the conditional update in ConsumeResetCode makes a reset
// code usable at most once under concurrent verification.
type UserRepositoryImpl struct {
	coll *mongo.Collection
}

// dbUser is the persisted shape of a credential record.
type dbUser struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	Name            string        `bson:"name"`
	Email           string        `bson:"email"`
	PasswordHash    string        `bson:"password"`
	Role            string        `bson:"role"`
	ResetCode       string        `bson:"resetCode,omitempty"`
	ResetCodeExpiry *time.Time    `bson:"resetCodeExpiry,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt"`

	FirstName         string `bson:"firstName,omitempty"`
	LastName          string `bson:"lastName,omitempty"`
	Phone             string `bson:"phone,omitempty"`
	Address           string `bson:"address,omitempty"`
	DateOfBirth       string `bson:"dateOfBirth,omitempty"`
	Gender            string `bson:"gender,omitempty"`
	PolicyNumber      string `bson:"policyNumber,omitempty"`
	InsuranceProvider string `bson:"insuranceProvider,omitempty"`
	City              string `bson:"city,omitempty"`
	State             string `bson:"state,omitempty"`
	ZipCode           string `bson:"zipCode,omitempty"`
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &UserRepositoryImpl{coll: db.Collection(database.UsersCollection)}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	doc := domainToDB(user)
	doc.ID = bson.NewObjectID()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt
	user.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository. Emails are stored lowercased
// and trimmed, so the lookup is an exact match on the normalized form.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc dbUser
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return dbToDomain(&doc), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	var doc dbUser
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return dbToDomain(&doc), nil
}

// Update implements domain.UserRepository. It rewrites the identity and
// profile fields only; the password hash and reset state have dedicated
// operations so a generic save can never hash or clear anything by accident.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	oid, err := bson.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":              user.Name,
		"email":             user.Email,
		"firstName":         user.FirstName,
		"lastName":          user.LastName,
		"phone":             user.Phone,
		"address":           user.Address,
		"dateOfBirth":       user.DateOfBirth,
		"gender":            user.Gender,
		"policyNumber":      user.PolicyNumber,
		"insuranceProvider": user.InsuranceProvider,
		"city":              user.City,
		"state":             user.State,
		"zipCode":           user.ZipCode,
		"updatedAt":         time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"password": passwordHash, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetResetCode implements domain.UserRepository. A new request overwrites
// any pending code, so there is never more than one code in flight.
func (r *UserRepositoryImpl) SetResetCode(ctx context.Context, id, code string, expiry time.Time) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"resetCode": code, "resetCodeExpiry": expiry, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeResetCode implements domain.UserRepository. The filter includes the
// stored code, so when two verifications race only the first write matches;
// the loser observes ErrNoResetRequested.
func (r *UserRepositoryImpl) ConsumeResetCode(ctx context.Context, id, code, passwordHash string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "resetCode": code},
		bson.M{
			"$set":   bson.M{"password": passwordHash, "updatedAt": time.Now()},
			"$unset": bson.M{"resetCode": "", "resetCodeExpiry": ""},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoResetRequested
	}
	return nil
}

func domainToDB(user *domain.User) *dbUser {
	doc := &dbUser{
		Name:              user.Name,
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		Role:              user.Role,
		ResetCode:         user.ResetCode,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Phone:             user.Phone,
		Address:           user.Address,
		DateOfBirth:       user.DateOfBirth,
		Gender:            user.Gender,
		PolicyNumber:      user.PolicyNumber,
		InsuranceProvider: user.InsuranceProvider,
		City:              user.City,
		State:             user.State,
		ZipCode:           user.ZipCode,
	}
	if !user.ResetCodeExpiry.IsZero() {
		expiry := user.ResetCodeExpiry
		doc.ResetCodeExpiry = &expiry
	}
	return doc
}

func dbToDomain(doc *dbUser) *domain.User {
	user := &domain.User{
		ID:                doc.ID.Hex(),
		Name:              doc.Name,
		Email:             doc.Email,
		PasswordHash:      doc.PasswordHash,
		Role:              doc.Role,
		ResetCode:         doc.ResetCode,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
		FirstName:         doc.FirstName,
		LastName:          doc.LastName,
		Phone:             doc.Phone,
		Address:           doc.Address,
		DateOfBirth:       doc.DateOfBirth,
		Gender:            doc.Gender,
		PolicyNumber:      doc.PolicyNumber,
		InsuranceProvider: doc.InsuranceProvider,
		City:              doc.City,
		State:             doc.State,
		ZipCode:           doc.ZipCode,
	}
	if doc.ResetCodeExpiry != nil {
		user.ResetCodeExpiry = *doc.ResetCodeExpiry
	}
	return user
}
