package labTests

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LabTestMongoRepository struct {
	Collection *mongo.Collection
}

func NewLabTestMongoRepository(db *mongo.Database) contracts.LabTestRepository {
	return &LabTestMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionLabTests),
	}
}

func (r *LabTestMongoRepository) CreateLabTest(ctx context.Context, labTest *models.LabTest) (*models.LabTest, error) {
	labTest.SetCreatedAtUpdatedAt()
	result, err := r.Collection.InsertOne(ctx, labTest)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	labTest.ID = result.InsertedID.(primitive.ObjectID)
	return labTest, nil
}

func (r *LabTestMongoRepository) FindByID(ctx context.Context, labTestID primitive.ObjectID) (*models.LabTest, error) {
	var labTest models.LabTest
	err := r.Collection.FindOne(ctx, bson.M{"_id": labTestID}).Decode(&labTest)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &labTest, nil
}

func (r *LabTestMongoRepository) FindAll(ctx context.Context, query models.LabTestQuery) ([]models.LabTest, int, error) {
	filter := buildLabTestListFilter(query)

	totalCount, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(query.Skip)
	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	labTests := make([]models.LabTest, 0)
	if err := cursor.All(ctx, &labTests); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return labTests, int(totalCount), nil
}

func (r *LabTestMongoRepository) FindCompletedByTechnician(ctx context.Context, query models.PerformanceQuery) ([]models.LabTest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	cursor, err := r.Collection.Find(ctx, buildCompletedByTechnicianFilter(query), opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	labTests := make([]models.LabTest, 0)
	if err := cursor.All(ctx, &labTests); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return labTests, nil
}

// CountProcessingByTechnicians returns the Processing load per technician in a
// single aggregation. Technicians without load are absent from the map.
func (r *LabTestMongoRepository) CountProcessingByTechnicians(ctx context.Context, technicianIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	counts := make(map[primitive.ObjectID]int, len(technicianIDs))
	if len(technicianIDs) == 0 {
		return counts, nil
	}

	cursor, err := r.Collection.Aggregate(ctx, buildProcessingLoadPipeline(technicianIDs))
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TechnicianID primitive.ObjectID `bson:"_id"`
		Count        int                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	for _, row := range rows {
		counts[row.TechnicianID] = row.Count
	}
	return counts, nil
}

func (r *LabTestMongoRepository) MarkAssigned(ctx context.Context, labTestID, technicianID primitive.ObjectID, at time.Time) (*models.LabTest, error) {
	filter, update := buildAssignTransition(labTestID, technicianID, at)
	return r.transition(ctx, filter, update)
}

// MarkStarted claims a Requested test for the technician. Tests already in
// Processing are left to the caller.
func (r *LabTestMongoRepository) MarkStarted(ctx context.Context, labTestID, technicianID primitive.ObjectID, at time.Time) (*models.LabTest, error) {
	filter, update := buildStartTransition(labTestID, technicianID, at)
	return r.transition(ctx, filter, update)
}

func (r *LabTestMongoRepository) MarkCompleted(ctx context.Context, labTestID, technicianID primitive.ObjectID, at time.Time) (*models.LabTest, error) {
	filter, update := buildCompleteTransition(labTestID, technicianID, at)
	return r.transition(ctx, filter, update)
}

func (r *LabTestMongoRepository) transition(ctx context.Context, filter, update bson.M) (*models.LabTest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var labTest models.LabTest
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&labTest)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &labTest, nil
}

func buildLabTestListFilter(query models.LabTestQuery) bson.M {
	filter := bson.M{}
	clauses := bson.A{}

	if query.OrderingDoctorID != nil {
		filter["orderingDoctorId"] = *query.OrderingDoctorID
	}
	if query.PatientID != nil {
		filter["patientId"] = *query.PatientID
	}
	if query.Status != "" {
		filter["status"] = query.Status
	}
	if query.Priority != "" {
		filter["priority"] = query.Priority
	}
	if query.VisibleToTechnician != nil {
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"assignedTechnicianId": *query.VisibleToTechnician},
			bson.M{
				"status":               constvars.LabTestStatusRequested,
				"assignedTechnicianId": bson.M{"$exists": false},
			},
		}})
	}
	if query.FilterByTechs {
		ids := query.TechnicianIDs
		if ids == nil {
			ids = []primitive.ObjectID{}
		}
		clauses = append(clauses, bson.M{"assignedTechnicianId": bson.M{"$in": ids}})
	}

	if len(clauses) > 0 {
		filter["$and"] = clauses
	}
	return filter
}

func buildCompletedByTechnicianFilter(query models.PerformanceQuery) bson.M {
	filter := bson.M{
		"assignedTechnicianId": query.TechnicianID,
		"status":               constvars.LabTestStatusCompleted,
	}
	if query.OrderingDoctorID != nil {
		filter["orderingDoctorId"] = *query.OrderingDoctorID
	}

	completedAt := bson.M{}
	if query.CompletedFrom != nil {
		completedAt["$gte"] = *query.CompletedFrom
	}
	if query.CompletedTo != nil {
		completedAt["$lte"] = *query.CompletedTo
	}
	if len(completedAt) > 0 {
		filter["completedAt"] = completedAt
	}
	return filter
}

func buildProcessingLoadPipeline(technicianIDs []primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":               constvars.LabTestStatusProcessing,
			"assignedTechnicianId": bson.M{"$in": technicianIDs},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$assignedTechnicianId",
			"count": bson.M{"$sum": 1},
		}}},
	}
}

func buildAssignTransition(labTestID, technicianID primitive.ObjectID, at time.Time) (filter, update bson.M) {
	filter = bson.M{
		"_id":                  labTestID,
		"status":               constvars.LabTestStatusRequested,
		"assignedTechnicianId": bson.M{"$exists": false},
	}
	update = bson.M{"$set": bson.M{
		"status":               constvars.LabTestStatusProcessing,
		"assignedTechnicianId": technicianID,
		"assignedAt":           at,
		"updatedAt":            at,
	}}
	return filter, update
}

// buildStartTransition matches a Requested test that is unassigned or
// already assigned to the technician.
func buildStartTransition(labTestID, technicianID primitive.ObjectID, at time.Time) (filter, update bson.M) {
	filter = bson.M{
		"_id":    labTestID,
		"status": constvars.LabTestStatusRequested,
		"$or": bson.A{
			bson.M{"assignedTechnicianId": bson.M{"$exists": false}},
			bson.M{"assignedTechnicianId": technicianID},
		},
	}
	update = bson.M{"$set": bson.M{
		"status":               constvars.LabTestStatusProcessing,
		"assignedTechnicianId": technicianID,
		"assignedAt":           at,
		"updatedAt":            at,
	}}
	return filter, update
}

func buildCompleteTransition(labTestID, technicianID primitive.ObjectID, at time.Time) (filter, update bson.M) {
	filter = bson.M{
		"_id":                  labTestID,
		"status":               constvars.LabTestStatusProcessing,
		"assignedTechnicianId": technicianID,
	}
	update = bson.M{"$set": bson.M{
		"status":      constvars.LabTestStatusCompleted,
		"completedAt": at,
		"updatedAt":   at,
	}}
	return filter, update
}
