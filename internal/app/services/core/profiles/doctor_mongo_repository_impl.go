package profiles

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Database) contracts.DoctorRepository {
	return &DoctorMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionDoctors),
	}
}

func (r *DoctorMongoRepository) FindByID(ctx context.Context, doctorID primitive.ObjectID) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"_id": doctorID})
}

func (r *DoctorMongoRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *DoctorMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.Collection.FindOne(ctx, filter).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}
