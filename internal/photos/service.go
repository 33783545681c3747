package photos

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

// uploadObjectHook and deletePrefixHook are swapped out in tests; real
// deployments hit GCS.
var (
	uploadObjectHook = uploadObjectToGCS
	deletePrefixHook = deleteGCSPrefix
)

// PhotoService stores listing photos in a GCS bucket under a per-owner
// prefix. It satisfies listing.PhotoUploader.
type PhotoService struct {
	Bucket string
}

// UploadListingPhoto decodes the base64 payload and stores it as
// listings/<ownerID>/<uuid>.jpg, returning the gs:// reference.
func (ps *PhotoService) UploadListingPhoto(base64Data string, ownerID int64) (string, error) {
	// strip "data:image/jpeg;base64," prefix
	if strings.Contains(base64Data, ",") {
		parts := strings.Split(base64Data, ",")
		base64Data = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty photo payload")
	}

	objectName := fmt.Sprintf("listings/%d/%s.jpg", ownerID, uuid.NewString())
	if err := uploadObjectHook(ps.Bucket, objectName, data); err != nil {
		return "", err
	}

	return fmt.Sprintf("gs://%s/%s", ps.Bucket, objectName), nil
}

// DeleteOwnerPhotos removes every stored photo of one owner. Used when an
// account is purged.
func (ps *PhotoService) DeleteOwnerPhotos(ownerID int64) error {
	return deletePrefixHook(ps.Bucket, fmt.Sprintf("listings/%d/", ownerID))
}

func uploadObjectToGCS(bucketName, objectName string, data []byte) error {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	w.ContentType = "image/jpeg"

	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Close()
}

func deleteGCSPrefix(bucketName, prefix string) error {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	bkt := client.Bucket(bucketName)

	it := bkt.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		obj, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		if err := bkt.Object(obj.Name).Delete(ctx); err != nil {
			return err
		}
	}
	return nil
}
