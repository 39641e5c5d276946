package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Tour is the canonical tour record. The backend has shipped several shapes
// for the owner and image fields over time, so both resolve through an
// ordered fallback lookup instead of a single JSON key:
//
//	owner id:  user.user_id, userId, user_id, guide_id
//	image ref: imageUrl, image_url, image
type Tour struct {
	ID          int64      `json:"tour_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Location    string     `json:"location,omitempty"`
	Date        string     `json:"date,omitempty"`
	Status      TourStatus `json:"status"`
	User        *User      `json:"user,omitempty"`

	ownerID  int64
	imageRef string
}

// priceValue accepts both encodings the backend has used for price: a JSON
// number and a quoted decimal string.
type priceValue float64

func (p *priceValue) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*p = priceValue(f)
	return nil
}

type tourJSON struct {
	ID          int64      `json:"tour_id"`
	Title       string     `json:"title"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       priceValue `json:"price"`
	Location    string      `json:"location"`
	Date        string      `json:"date"`
	Status      TourStatus  `json:"status"`
	User        *User       `json:"user"`

	UserIDCamel int64 `json:"userId"`
	UserIDSnake int64 `json:"user_id"`
	GuideID     int64 `json:"guide_id"`

	ImageURLCamel string `json:"imageUrl"`
	ImageURLSnake string `json:"image_url"`
	Image         string `json:"image"`
}

func (t *Tour) UnmarshalJSON(data []byte) error {
	var raw tourJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.ID = raw.ID
	t.Title = raw.Title
	if t.Title == "" {
		t.Title = raw.Name
	}
	t.Description = raw.Description
	t.Price = float64(raw.Price)
	t.Location = raw.Location
	t.Date = raw.Date
	t.Status = raw.Status
	t.User = raw.User

	t.ownerID = firstNonZero(raw.UserIDCamel, raw.UserIDSnake, raw.GuideID)
	t.imageRef = firstNonEmpty(raw.ImageURLCamel, raw.ImageURLSnake, raw.Image)
	return nil
}

// OwnerID resolves the owning guide's id, preferring the nested user object
// and falling back through the documented key priority. Zero means unknown.
func (t *Tour) OwnerID() int64 {
	if t.User != nil && t.User.ID != 0 {
		return t.User.ID
	}
	return t.ownerID
}

// ImageRef returns the raw image reference as stored by the backend, empty
// when the tour has no image.
func (t *Tour) ImageRef() string {
	return t.imageRef
}

// SetOwnerID sets the fallback owner id for tours built locally (tests,
// fixtures) rather than decoded from the wire.
func (t *Tour) SetOwnerID(id int64) { t.ownerID = id }

func (t *Tour) SetImageRef(ref string) { t.imageRef = ref }

func firstNonZero(vals ...int64) int64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
