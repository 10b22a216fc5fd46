package storage

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Error is returned by every remote operation of Client. Op is the S3 API
// operation that failed.
type Error struct {
	Op     string
	Bucket string
	Key    string
	// Code is the service error code, e.g. AccessDenied, when S3 returned one.
	Code string
	Err  error
}

func newError(op string, bucket string, key string, err error) *Error {
	e := &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		e.Code = apiErr.ErrorCode()
	}

	return e
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("s3.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}

	return fmt.Sprintf("s3.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
