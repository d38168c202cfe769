package assignments

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssignmentAuditMongoRepository struct {
	Collection *mongo.Collection
}

func NewAssignmentAuditMongoRepository(db *mongo.Database) contracts.AssignmentAuditRepository {
	return &AssignmentAuditMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionLabTestAssignments),
	}
}

func (r *AssignmentAuditMongoRepository) CreateAssignmentAudit(ctx context.Context, audit *models.AssignmentAudit) error {
	result, err := r.Collection.InsertOne(ctx, audit)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	audit.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AssignmentAuditMongoRepository) FindByLabTestID(ctx context.Context, labTestID primitive.ObjectID) ([]models.AssignmentAudit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "assignedAt", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"labTestId": labTestID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	audits := make([]models.AssignmentAudit, 0)
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return audits, nil
}
