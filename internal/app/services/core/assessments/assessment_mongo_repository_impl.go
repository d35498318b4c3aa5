package assessments

import (
	"context"

	"mindhub-service/internal/app/contracts"
	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/constvars"
	"mindhub-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssessmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAssessmentMongoRepository(db *mongo.Client, dbName string) contracts.AssessmentRepository {
	return &AssessmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAssessments),
	}
}

func (r *AssessmentMongoRepository) CreateAssessment(ctx context.Context, assessment *models.Assessment) (string, error) {
	result, err := r.Collection.InsertOne(ctx, assessment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(string), nil
}

func (r *AssessmentMongoRepository) FindAssessmentByID(ctx context.Context, assessmentID string) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.Collection.FindOne(ctx, bson.M{"_id": assessmentID}).Decode(&assessment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &assessment, nil
}

func (r *AssessmentMongoRepository) FindAssessmentsBySubject(ctx context.Context, subjectReference string) ([]models.Assessment, error) {
	filter := bson.M{"subjectReference": subjectReference}
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "administeredAt", Value: -1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var assessments []models.Assessment
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return assessments, nil
}

func (r *AssessmentMongoRepository) UpdateAssessment(ctx context.Context, assessment *models.Assessment) error {
	filter := bson.M{"_id": assessment.ID}
	update := bson.M{"$set": assessment}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AssessmentMongoRepository) DeleteAssessmentByID(ctx context.Context, assessmentID string) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": assessmentID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
