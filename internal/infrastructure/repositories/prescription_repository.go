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

// PrescriptionRepositoryImpl implements domain.PrescriptionRepository on MongoDB.
type PrescriptionRepositoryImpl struct {
	coll *mongo.Collection
}

type dbPrescription struct {
	ID           bson.ObjectID     `bson:"_id,omitempty"`
	UserID       bson.ObjectID     `bson:"userId"`
	Medication   domain.Medication `bson:"medication"`
	PrescribedBy domain.Prescriber `bson:"prescribedBy"`
	StartDate    time.Time         `bson:"startDate"`
	EndDate      time.Time         `bson:"endDate"`
	Refills      domain.Refills    `bson:"refills"`
	Status       string            `bson:"status"`
	Pharmacy     domain.Pharmacy   `bson:"pharmacy"`
	Notes        string            `bson:"notes,omitempty"`
	CreatedAt    time.Time         `bson:"createdAt"`
}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository(db *mongo.Database) domain.PrescriptionRepository {
	return &PrescriptionRepositoryImpl{coll: db.Collection(database.PrescriptionsCollection)}
}

// Create implements domain.PrescriptionRepository
func (r *PrescriptionRepositoryImpl) Create(ctx context.Context, p *domain.Prescription) error {
	uid, err := bson.ObjectIDFromHex(p.UserID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	doc := &dbPrescription{
		ID:           bson.NewObjectID(),
		UserID:       uid,
		Medication:   p.Medication,
		PrescribedBy: p.PrescribedBy,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Refills:      p.Refills,
		Status:       p.Status,
		Pharmacy:     p.Pharmacy,
		Notes:        p.Notes,
		CreatedAt:    time.Now(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	p.ID = doc.ID.Hex()
	p.CreatedAt = doc.CreatedAt
	return nil
}

// FindByUser implements domain.PrescriptionRepository, newest first.
func (r *PrescriptionRepositoryImpl) FindByUser(ctx context.Context, userID string) ([]*domain.Prescription, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": uid},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []dbPrescription
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Prescription, 0, len(docs))
	for i := range docs {
		out = append(out, prescriptionToDomain(&docs[i]))
	}
	return out, nil
}

func prescriptionToDomain(doc *dbPrescription) *domain.Prescription {
	return &domain.Prescription{
		ID:           doc.ID.Hex(),
		UserID:       doc.UserID.Hex(),
		Medication:   doc.Medication,
		PrescribedBy: doc.PrescribedBy,
		StartDate:    doc.StartDate,
		EndDate:      doc.EndDate,
		Refills:      doc.Refills,
		Status:       doc.Status,
		Pharmacy:     doc.Pharmacy,
		Notes:        doc.Notes,
		CreatedAt:    doc.CreatedAt,
	}
}
