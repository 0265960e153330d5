package domain

// DefaultRating is used when no group member has rated an item.
const DefaultRating = 5.0

type RatingRecord struct {
	UserID UserID  `json:"user_id"`
	ItemID ItemID  `json:"item_id"`
	Rating float64 `json:"rating"`
}
