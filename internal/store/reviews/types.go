package reviews

import "time"

type Image struct {
	ID       int64  `json:"id"`
	ReviewID int64  `json:"reviewId,omitempty"`
	URL      string `json:"url"`
}

type Review struct {
	ID           int64     `json:"id"`
	SpotID       int64     `json:"spotId"`
	Review       string    `json:"review"`
	Stars        int       `json:"stars"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ReviewImages []Image   `json:"ReviewImages,omitempty"`
}

func (r Review) EntityID() int64 { return r.ID }

// Payload is the body of a create request.
type Payload struct {
	Review string `json:"review"`
	Stars  int    `json:"stars"`
}

// Patch is the body of an update request; nil fields are left untouched server-side.
type Patch struct {
	Review *string `json:"review,omitempty"`
	Stars  *int    `json:"stars,omitempty"`
}
