package profiles

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LabTechMongoRepository struct {
	Collection *mongo.Collection
}

func NewLabTechMongoRepository(db *mongo.Database) contracts.LabTechRepository {
	return &LabTechMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionLabTechs),
	}
}

func (r *LabTechMongoRepository) FindByID(ctx context.Context, technicianID primitive.ObjectID) (*models.LabTech, error) {
	return r.findOne(ctx, bson.M{"_id": technicianID})
}

func (r *LabTechMongoRepository) FindByUserID(ctx context.Context, userID string) (*models.LabTech, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *LabTechMongoRepository) FindActive(ctx context.Context, department, testType string) ([]models.LabTech, error) {
	cursor, err := r.Collection.Find(ctx, buildActiveLabTechFilter(department, testType), options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	labTechs := make([]models.LabTech, 0)
	if err := cursor.All(ctx, &labTechs); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return labTechs, nil
}

func (r *LabTechMongoRepository) FindIDsByDepartment(ctx context.Context, department string) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.Collection.Find(ctx, bson.M{"department": department}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// IncrementCompletion bumps testsConducted and folds qualityScore into the
// accuracyRate running mean in one pipeline update, so concurrent
// completions by the same technician never lose a count.
func (r *LabTechMongoRepository) IncrementCompletion(ctx context.Context, technicianID primitive.ObjectID, qualityScore float64) error {
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": technicianID}, buildIncrementCompletionPipeline(qualityScore))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrLabTechNotFound(nil)
	}
	return nil
}

func (r *LabTechMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.LabTech, error) {
	var labTech models.LabTech
	err := r.Collection.FindOne(ctx, filter).Decode(&labTech)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &labTech, nil
}

func buildActiveLabTechFilter(department, testType string) bson.M {
	filter := bson.M{"isActive": true}
	if department != "" {
		filter["department"] = department
	}
	if testType != "" {
		filter["certifiedTests"] = bson.M{
			"$regex":   regexp.QuoteMeta(testType),
			"$options": "i",
		}
	}
	return filter
}

func buildIncrementCompletionPipeline(qualityScore float64) mongo.Pipeline {
	conducted := bson.M{"$ifNull": bson.A{"$testsConducted", 0}}
	accuracy := bson.M{"$ifNull": bson.A{"$accuracyRate", 0}}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "accuracyRate", Value: bson.M{
				"$divide": bson.A{
					bson.M{"$add": bson.A{bson.M{"$multiply": bson.A{accuracy, conducted}}, qualityScore}},
					bson.M{"$add": bson.A{conducted, 1}},
				},
			}},
			{Key: "testsConducted", Value: bson.M{"$add": bson.A{conducted, 1}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}
}
