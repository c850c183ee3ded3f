package entities

const (
	PhotoPKPrefix = "PHOTO#"

	// GSI1 partition for photos not yet attached to a coffee date.
	PhotoUnassignedGSI1PK = "UNASSIGNED"
)

// PhotoRecord is one row of the photos table.
// PK "PHOTO#{id}" / SK "METADATA"; GSI1 partitions photos by owning coffee date
// ("COFFEE_DATE#{coffeeDateId}", or "UNASSIGNED" while unattached).
type PhotoRecord struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`

	ID             string `dynamodbav:"id"`
	CoffeeDateID   string `dynamodbav:"coffeeDateId"`
	S3Key          string `dynamodbav:"s3Key"`
	S3Bucket       string `dynamodbav:"s3Bucket"`
	Filename       string `dynamodbav:"filename"`
	ContentType    string `dynamodbav:"contentType"`
	Size           int64  `dynamodbav:"size"`
	ThumbnailS3Key string `dynamodbav:"thumbnailS3Key,omitempty"`
	UploadedAt     string `dynamodbav:"uploadedAt"`
}

func PhotoPK(id string) string {
	return PhotoPKPrefix + id
}

// PhotoGSI1PK is the secondary-index partition for a photo owned by the given
// coffee date. An empty id means the photo is unassigned.
func PhotoGSI1PK(coffeeDateID string) string {
	if coffeeDateID == "" {
		return PhotoUnassignedGSI1PK
	}
	return CoffeeDatePKPrefix + coffeeDateID
}
