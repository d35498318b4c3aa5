package instruments

import (
	"context"

	"mindhub-service/internal/app/contracts"
	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/constvars"
	"mindhub-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InstrumentMongoRepository struct {
	Collection *mongo.Collection
}

func NewInstrumentMongoRepository(db *mongo.Client, dbName string) contracts.InstrumentRepository {
	return &InstrumentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionInstruments),
	}
}

func (r *InstrumentMongoRepository) CreateInstrument(ctx context.Context, instrument *models.InstrumentDefinition) (string, error) {
	result, err := r.Collection.InsertOne(ctx, instrument)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *InstrumentMongoRepository) FindAll(ctx context.Context) ([]models.InstrumentDefinition, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{
		{Key: "instrumentId", Value: 1},
		{Key: "version", Value: 1},
	}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var instruments []models.InstrumentDefinition
	if err := cursor.All(ctx, &instruments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return instruments, nil
}

func (r *InstrumentMongoRepository) FindByIDAndVersion(ctx context.Context, instrumentID, version string) (*models.InstrumentDefinition, error) {
	var instrument models.InstrumentDefinition
	filter := bson.M{"instrumentId": instrumentID, "version": version}
	err := r.Collection.FindOne(ctx, filter).Decode(&instrument)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &instrument, nil
}

func (r *InstrumentMongoRepository) UpdateInstrument(ctx context.Context, instrument *models.InstrumentDefinition) error {
	filter := bson.M{"instrumentId": instrument.ID, "version": instrument.Version}
	update := bson.M{"$set": instrument}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *InstrumentMongoRepository) DeleteByIDAndVersion(ctx context.Context, instrumentID, version string) error {
	filter := bson.M{"instrumentId": instrumentID, "version": version}
	_, err := r.Collection.DeleteOne(ctx, filter)
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
