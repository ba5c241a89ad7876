package spots

import (
	"time"

	"github.com/memodb-io/rentspot/internal/store/reviews"
)

type Image struct {
	ID      int64  `json:"id"`
	SpotID  int64  `json:"spotId,omitempty"`
	URL     string `json:"url"`
	Preview bool   `json:"preview"`
}

type Spot struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"ownerId,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `json:"country,omitempty"`
	Lat          float64   `json:"lat,omitempty"`
	Lng          float64   `json:"lng,omitempty"`
	Name         string    `json:"name,omitempty"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	AvgRating    *float64  `json:"avgRating,omitempty"`
	NumReviews   int       `json:"numReviews,omitempty"`
	PreviewImage string    `json:"previewImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	SpotImages   []Image   `json:"SpotImages,omitempty"`

	// Reviews is filled client-side from review fetches; the API never sends it
	// on a spot.
	Reviews []reviews.Review `json:"Reviews,omitempty"`
}

func (s Spot) EntityID() int64 { return s.ID }

// Payload is the body of a create request.
type Payload struct {
	Address     string  `json:"address,omitempty"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country,omitempty"`
	Lat         float64 `json:"lat,omitempty"`
	Lng         float64 `json:"lng,omitempty"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// Patch is the body of an update request; nil fields are left untouched server-side.
type Patch struct {
	Address     *string  `json:"address,omitempty"`
	City        *string  `json:"city,omitempty"`
	State       *string  `json:"state,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// ImagePayload is the body of an add-image request.
type ImagePayload struct {
	URL     string `json:"url"`
	Preview bool   `json:"preview"`
}

// ListQuery narrows a FetchAll call. Zero fields fall back to server defaults.
type ListQuery struct {
	Page     int
	Size     int
	MinPrice *float64
	MaxPrice *float64
}
