package listing

type ListingAPI interface {
	Create(in CreateInput) (int64, error)
	GetByID(id int64, includeDeleted bool) (*Service, error)
	ListByOwner(ownerID int64, statusFilter string) ([]Service, error)
	Update(id int64, fields map[string]interface{}) error
	SetStatus(id int64, status string) error
	SoftDelete(id int64) error
	IncrementViews(id int64) error
}

// PhotoUploader stores a base64 photo and returns its reference.
type PhotoUploader interface {
	UploadListingPhoto(base64Data string, ownerID int64) (string, error)
}
