package address

// DefaultTitle is used when the form leaves the recipient name empty.
const DefaultTitle = "Địa chỉ mới"

type Address struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id,omitempty"`
	Title        string `json:"title"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phone_number"`
	CityID       int    `json:"city_id,omitempty"`
	DistrictID   int    `json:"district_id,omitempty"`
	WardID       int    `json:"ward_id,omitempty"`
	CityName     string `json:"city_name,omitempty"`
	DistrictName string `json:"district_name,omitempty"`
	WardName     string `json:"ward_name,omitempty"`
	CreateAt     string `json:"create_at,omitempty"`
	UpdateAt     string `json:"update_at,omitempty"`
}

// Location is a GoShip city, district or ward.
type Location struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateInput is the body the backend expects for a new address.
type CreateInput struct {
	Title        string `json:"title" validate:"required,max=100"`
	Address      string `json:"address" validate:"required,max=500"`
	PhoneNumber  string `json:"phone_number" validate:"required,numeric,min=9,max=15"`
	CityID       int    `json:"city_id" validate:"required"`
	DistrictID   int    `json:"district_id" validate:"required"`
	WardID       int    `json:"ward_id" validate:"required"`
	CityName     string `json:"city_name"`
	DistrictName string `json:"district_name"`
	WardName     string `json:"ward_name"`
}

// UpdateInput only carries what can change once an address exists.
type UpdateInput struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,numeric,min=9,max=15"`
}

// Form is what the browser submits from the cascading pickers.
type Form struct {
	FullName   string `json:"full_name" validate:"max=100"`
	Phone      string `json:"phone" validate:"required,numeric,min=9,max=15"`
	Street     string `json:"street" validate:"required,max=300"`
	CityID     int    `json:"city_id" validate:"required"`
	DistrictID int    `json:"district_id" validate:"required"`
	WardID     int    `json:"ward_id" validate:"required"`
}
