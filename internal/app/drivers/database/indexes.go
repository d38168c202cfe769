package database

import (
	"context"
	"hospital-lab-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionIndexes lists the indexes this service relies on. The unique
// lab_reports.labTestId index backs the one report per lab test rule.
func CollectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		constvars.MongoCollectionLabReports: {
			{
				Keys:    bson.D{{Key: "labTestId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_lab_test"),
			},
		},
		constvars.MongoCollectionLabTests: {
			{Keys: bson.D{{Key: "orderingDoctorId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "assignedTechnicianId", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		constvars.MongoCollectionAppointments: {
			{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "patientId", Value: 1}}},
		},
		constvars.MongoCollectionLabTechs: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "department", Value: 1}}},
		},
		constvars.MongoCollectionDoctors: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		constvars.MongoCollectionPatients: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		constvars.MongoCollectionLabTestAssignments: {
			{Keys: bson.D{{Key: "labTestId", Value: 1}, {Key: "assignedAt", Value: -1}}},
		},
	}
}

// EnsureIndexes creates every index in CollectionIndexes and returns the
// created index names per collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) (map[string][]string, error) {
	created := make(map[string][]string)
	for collection, models := range CollectionIndexes() {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return created, err
		}
		created[collection] = names
	}
	return created, nil
}
