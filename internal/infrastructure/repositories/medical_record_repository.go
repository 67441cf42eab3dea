package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you/healthportal/domain"
	"github.com/you/healthportal/internal/infrastructure/database"
)

// MedicalRecordRepositoryImpl implements domain.MedicalRecordRepository on MongoDB.
type MedicalRecordRepositoryImpl struct {
	coll *mongo.Collection
}

type dbMedicalRecord struct {
	ID          bson.ObjectID       `bson:"_id,omitempty"`
	UserID      bson.ObjectID       `bson:"userId"`
	Type        string              `bson:"type"`
	Date        time.Time           `bson:"date"`
	Provider    domain.Prescriber   `bson:"provider"`
	Description string              `bson:"description,omitempty"`
	Attachments []domain.Attachment `bson:"attachments,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
}

// NewMedicalRecordRepository creates a new medical-record repository
func NewMedicalRecordRepository(db *mongo.Database) domain.MedicalRecordRepository {
	return &MedicalRecordRepositoryImpl{coll: db.Collection(database.MedicalRecordsCollection)}
}

// Create implements domain.MedicalRecordRepository
func (r *MedicalRecordRepositoryImpl) Create(ctx context.Context, rec *domain.MedicalRecord) error {
	uid, err := bson.ObjectIDFromHex(rec.UserID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	doc := &dbMedicalRecord{
		ID:          bson.NewObjectID(),
		UserID:      uid,
		Type:        rec.Type,
		Date:        rec.Date,
		Provider:    rec.Provider,
		Description: rec.Description,
		Attachments: rec.Attachments,
		CreatedAt:   time.Now(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	rec.ID = doc.ID.Hex()
	rec.CreatedAt = doc.CreatedAt
	return nil
}

// FindByUser implements domain.MedicalRecordRepository, most recent first.
func (r *MedicalRecordRepositoryImpl) FindByUser(ctx context.Context, userID string) ([]*domain.MedicalRecord, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": uid},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []dbMedicalRecord
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.MedicalRecord, 0, len(docs))
	for i := range docs {
		out = append(out, &domain.MedicalRecord{
			ID:          docs[i].ID.Hex(),
			UserID:      docs[i].UserID.Hex(),
			Type:        docs[i].Type,
			Date:        docs[i].Date,
			Provider:    docs[i].Provider,
			Description: docs[i].Description,
			Attachments: docs[i].Attachments,
			CreatedAt:   docs[i].CreatedAt,
		})
	}
	return out, nil
}
