package helpers

import (
	"bytes"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

// AddFileToS3 uploads a PDF and returns its location.
func AddFileToS3(sess *session.Session, bucket string, key string, file *bytes.Buffer) (string, error) {
	if sess == nil {
		return "", errors.New("nil session s3")
	}

	uploader := s3manager.NewUploader(sess)
	result, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file.Bytes()),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed uploading %s", key)
	}

	return result.Location, nil
}
