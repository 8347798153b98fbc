// Package market is the farmer/seller record backend: generic CRUD over
// HTTP with JSON bodies, backed by MongoDB. It is a standalone service; the
// listing manager does not depend on it.
package market

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Farmer is a registered farmer profile.
type Farmer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string             `bson:"name" json:"name" binding:"required"`
	Area           string             `bson:"area" json:"area" binding:"required"`
	LandArea       float64            `bson:"landArea" json:"landArea" binding:"required"`
	Phone          string             `bson:"phone" json:"phone" binding:"required"`
	FarmingHistory []CropSeason       `bson:"farmingHistory" json:"farmingHistory"`
}

// CropSeason is one entry of a farmer's cultivation history.
type CropSeason struct {
	CropName        string    `bson:"cropName" json:"cropName"`
	CostIncurred    float64   `bson:"costIncurred" json:"costIncurred"`
	ProfitEarned    float64   `bson:"profitEarned" json:"profitEarned"`
	CultivationDate time.Time `bson:"cultivationDate" json:"cultivationDate"`
}

// Seller is a registered produce seller profile.
type Seller struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name" binding:"required"`
	BusinessName string             `bson:"businessName" json:"businessName" binding:"required"`
	Location     string             `bson:"location" json:"location" binding:"required"`
	Phone        string             `bson:"phone" json:"phone" binding:"required"`
	Products     []string           `bson:"products" json:"products"`
}
