package market

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no record matches the requested ID.
var ErrNotFound = errors.New("record not found")

// Repository is the persistence contract the handlers consume.
type Repository interface {
	CreateFarmer(ctx context.Context, f *Farmer) error
	ListFarmers(ctx context.Context) ([]Farmer, error)
	GetFarmer(ctx context.Context, id string) (*Farmer, error)
	UpdateFarmer(ctx context.Context, id string, f *Farmer) (*Farmer, error)
	DeleteFarmer(ctx context.Context, id string) error

	CreateSeller(ctx context.Context, s *Seller) error
	ListSellers(ctx context.Context) ([]Seller, error)
	GetSeller(ctx context.Context, id string) (*Seller, error)
	UpdateSeller(ctx context.Context, id string, s *Seller) (*Seller, error)
	DeleteSeller(ctx context.Context, id string) error
}

// mongoRepository implements Repository on two MongoDB collections.
type mongoRepository struct {
	farmers *mongo.Collection
	sellers *mongo.Collection
}

// NewMongoRepository returns a Repository over the given database.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		farmers: db.Collection("farmers"),
		sellers: db.Collection("sellers"),
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed ID can never match a record.
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func (r *mongoRepository) CreateFarmer(ctx context.Context, f *Farmer) error {
	res, err := r.farmers.InsertOne(ctx, f)
	if err != nil {
		return err
	}
	f.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) ListFarmers(ctx context.Context) ([]Farmer, error) {
	cur, err := r.farmers.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Farmer
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRepository) GetFarmer(ctx context.Context, id string) (*Farmer, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var f Farmer
	err = r.farmers.FindOne(ctx, bson.M{"_id": oid}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *mongoRepository) UpdateFarmer(ctx context.Context, id string, f *Farmer) (*Farmer, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	f.ID = oid
	res, err := r.farmers.ReplaceOne(ctx, bson.M{"_id": oid}, f)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return f, nil
}

func (r *mongoRepository) DeleteFarmer(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	_, err = r.farmers.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *mongoRepository) CreateSeller(ctx context.Context, s *Seller) error {
	res, err := r.sellers.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) ListSellers(ctx context.Context) ([]Seller, error) {
	cur, err := r.sellers.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Seller
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRepository) GetSeller(ctx context.Context, id string) (*Seller, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var s Seller
	err = r.sellers.FindOne(ctx, bson.M{"_id": oid}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *mongoRepository) UpdateSeller(ctx context.Context, id string, s *Seller) (*Seller, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.ID = oid
	res, err := r.sellers.ReplaceOne(ctx, bson.M{"_id": oid}, s)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *mongoRepository) DeleteSeller(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	_, err = r.sellers.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
