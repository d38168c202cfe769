package appointments

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAppointments),
	}
}

// ExistsBetween reports whether any appointment links the doctor and the
// patient, regardless of its status or date.
func (r *AppointmentMongoRepository) ExistsBetween(ctx context.Context, doctorID, patientID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"doctorId":  doctorID,
		"patientId": patientID,
	}
	count, err := r.Collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count > 0, nil
}
