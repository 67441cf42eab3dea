package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you/healthportal/domain"
	"github.com/you/healthportal/internal/infrastructure/database"
)

// AppointmentRepositoryImpl implements domain.AppointmentRepository on MongoDB.
type AppointmentRepositoryImpl struct {
	coll *mongo.Collection
}

type dbAppointment struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	UserID     bson.ObjectID `bson:"userId"`
	DoctorName string        `bson:"doctorName"`
	Specialty  string        `bson:"specialty,omitempty"`
	Date       time.Time     `bson:"date"`
	Time       string        `bson:"time"`
	Location   string        `bson:"location,omitempty"`
	Phone      string        `bson:"phone,omitempty"`
	Status     string        `bson:"status"`
	Reason     string        `bson:"reason,omitempty"`
	Notes      string        `bson:"notes,omitempty"`
	CreatedAt  time.Time     `bson:"createdAt"`
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *mongo.Database) domain.AppointmentRepository {
	return &AppointmentRepositoryImpl{coll: db.Collection(database.AppointmentsCollection)}
}

// Create implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) Create(ctx context.Context, appt *domain.Appointment) error {
	uid, err := bson.ObjectIDFromHex(appt.UserID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	doc := &dbAppointment{
		ID:         bson.NewObjectID(),
		UserID:     uid,
		DoctorName: appt.DoctorName,
		Specialty:  appt.Specialty,
		Date:       appt.Date,
		Time:       appt.Time,
		Location:   appt.Location,
		Phone:      appt.Phone,
		Status:     appt.Status,
		Reason:     appt.Reason,
		Notes:      appt.Notes,
		CreatedAt:  time.Now(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	appt.ID = doc.ID.Hex()
	appt.CreatedAt = doc.CreatedAt
	return nil
}

// FindByUser implements domain.AppointmentRepository, sorted by date ascending.
func (r *AppointmentRepositoryImpl) FindByUser(ctx context.Context, userID string) ([]*domain.Appointment, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": uid},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []dbAppointment
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	appts := make([]*domain.Appointment, 0, len(docs))
	for i := range docs {
		appts = append(appts, apptToDomain(&docs[i]))
	}
	return appts, nil
}

// FindByID implements domain.AppointmentRepository, scoped to the owner.
func (r *AppointmentRepositoryImpl) FindByID(ctx context.Context, id, userID string) (*domain.Appointment, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}
	var doc dbAppointment
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "userId": uid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return apptToDomain(&doc), nil
}

// HasConflict implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) HasConflict(ctx context.Context, userID string, date time.Time, timeSlot string) (bool, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return false, domain.ErrUserNotFound
	}
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"userId": uid,
		"date":   date,
		"time":   timeSlot,
		"status": bson.M{"$ne": domain.AppointmentCancelled},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) UpdateStatus(ctx context.Context, id, userID, status string) (*domain.Appointment, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	var doc dbAppointment
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "userId": uid},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return apptToDomain(&doc), nil
}

func apptToDomain(doc *dbAppointment) *domain.Appointment {
	return &domain.Appointment{
		ID:         doc.ID.Hex(),
		UserID:     doc.UserID.Hex(),
		DoctorName: doc.DoctorName,
		Specialty:  doc.Specialty,
		Date:       doc.Date,
		Time:       doc.Time,
		Location:   doc.Location,
		Phone:      doc.Phone,
		Status:     doc.Status,
		Reason:     doc.Reason,
		Notes:      doc.Notes,
		CreatedAt:  doc.CreatedAt,
	}
}
