// Package weights tracks body weight measurements, one point per
// calendar day. Weighing in twice on the same day overwrites the
// earlier value.
package weights

import "time"

const DateLayout = "2006-01-02"

type WeightPoint struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
}
