package entities

const (
	CoffeeDatePKPrefix = "COFFEE_DATE#"
	MetadataSK         = "METADATA"

	// GSI1 partition holding every coffee date, sorted by visit date.
	CoffeeDatesGSI1PK = "COFFEE_DATES"
)

type CafeInfo struct {
	PlaceID          string      `json:"placeId" dynamodbav:"placeId"`
	Name             string      `json:"name" dynamodbav:"name" validate:"required,max=200"`
	FormattedAddress string      `json:"formattedAddress" dynamodbav:"formattedAddress"`
	Coordinates      Coordinates `json:"coordinates" dynamodbav:"coordinates"`
	Types            []string    `json:"types" dynamodbav:"types"`
}

type Coordinates struct {
	Lat float64 `json:"lat" dynamodbav:"lat"`
	Lng float64 `json:"lng" dynamodbav:"lng"`
}

type Ratings struct {
	Coffee  int  `json:"coffee" dynamodbav:"coffee" validate:"required,min=1,max=5"`
	Dessert *int `json:"dessert,omitempty" dynamodbav:"dessert,omitempty" validate:"omitempty,min=1,max=5"`
}

// CoffeeDateRecord is one row of the coffee dates table.
// PK "COFFEE_DATE#{id}" / SK "METADATA"; GSI1 "COFFEE_DATES" / visit date (RFC3339)
// so the default listing is a single descending index query.
type CoffeeDateRecord struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`

	ID             string   `dynamodbav:"id"`
	CafeInfo       CafeInfo `dynamodbav:"cafeInfo"`
	PhotoIDs       []string `dynamodbav:"photoIds"`
	PrimaryPhotoID string   `dynamodbav:"primaryPhotoId"`
	Ratings        Ratings  `dynamodbav:"ratings"`
	VisitDate      string   `dynamodbav:"visitDate"`
	CreatedAt      string   `dynamodbav:"createdAt"`
	UpdatedAt      string   `dynamodbav:"updatedAt"`
}

func CoffeeDatePK(id string) string {
	return CoffeeDatePKPrefix + id
}
