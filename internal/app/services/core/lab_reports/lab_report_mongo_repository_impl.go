package labReports

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

type LabReportMongoRepository struct {
	Collection *mongo.Collection
}

func NewLabReportMongoRepository(db *mongo.Database) contracts.LabReportRepository {
	return &LabReportMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionLabReports),
	}
}

// CreateLabReport relies on the unique labTestId index to reject a second
// report for the same test.
func (r *LabReportMongoRepository) CreateLabReport(ctx context.Context, report *models.LabReport) (*models.LabReport, error) {
	report.SetCreatedAtUpdatedAt()
	result, err := r.Collection.InsertOne(ctx, report)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrLabReportAlreadyExists(err, report.LabTestID.Hex())
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	report.ID = result.InsertedID.(primitive.ObjectID)
	return report, nil
}

func (r *LabReportMongoRepository) FindByLabTestID(ctx context.Context, labTestID primitive.ObjectID) (*models.LabReport, error) {
	var report models.LabReport
	err := r.Collection.FindOne(ctx, bson.M{"labTestId": labTestID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &report, nil
}

// SetDocumentObjectName records where the rendered document lives. It only
// writes when no document is recorded yet.
func (r *LabReportMongoRepository) SetDocumentObjectName(ctx context.Context, reportID primitive.ObjectID, objectName string) error {
	filter, update := buildSetDocumentObjectName(reportID, objectName)
	_, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// buildSetDocumentObjectName leaves the report timestamps untouched; the
// report content is immutable once submitted.
func buildSetDocumentObjectName(reportID primitive.ObjectID, objectName string) (filter, update bson.M) {
	filter = bson.M{
		"_id":                reportID,
		"documentObjectName": bson.M{"$exists": false},
	}
	update = bson.M{"$set": bson.M{"documentObjectName": objectName}}
	return filter, update
}
