package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// mockS3Client is a mock implementation of S3API. Each operation can be
// customized through its function field; unset fields succeed.
type mockS3Client struct {
	ListObjectsV2Func           func(context.Context, *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error)
	DeleteObjectFunc            func(context.Context, *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error)
	PutObjectFunc               func(context.Context, *s3.PutObjectInput) (*s3.PutObjectOutput, error)
	PutBucketWebsiteFunc        func(context.Context, *s3.PutBucketWebsiteInput) (*s3.PutBucketWebsiteOutput, error)
	PutBucketPolicyFunc         func(context.Context, *s3.PutBucketPolicyInput) (*s3.PutBucketPolicyOutput, error)
	PutPublicAccessBlockFunc    func(context.Context, *s3.PutPublicAccessBlockInput) (*s3.PutPublicAccessBlockOutput, error)
	CreateMultipartUploadFunc   func(context.Context, *s3.CreateMultipartUploadInput) (*s3.CreateMultipartUploadOutput, error)
	UploadPartFunc              func(context.Context, *s3.UploadPartInput) (*s3.UploadPartOutput, error)
	CompleteMultipartUploadFunc func(context.Context, *s3.CompleteMultipartUploadInput) (*s3.CompleteMultipartUploadOutput, error)

	calls []string
}

func (m *mockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.calls = append(m.calls, "ListObjectsV2")
	if m.ListObjectsV2Func != nil {
		return m.ListObjectsV2Func(ctx, params)
	}
	return &s3.ListObjectsV2Output{}, nil
}

func (m *mockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.calls = append(m.calls, "DeleteObject")
	if m.DeleteObjectFunc != nil {
		return m.DeleteObjectFunc(ctx, params)
	}
	return &s3.DeleteObjectOutput{}, nil
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.calls = append(m.calls, "PutObject")
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params)
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) PutBucketWebsite(ctx context.Context, params *s3.PutBucketWebsiteInput, _ ...func(*s3.Options)) (*s3.PutBucketWebsiteOutput, error) {
	m.calls = append(m.calls, "PutBucketWebsite")
	if m.PutBucketWebsiteFunc != nil {
		return m.PutBucketWebsiteFunc(ctx, params)
	}
	return &s3.PutBucketWebsiteOutput{}, nil
}

func (m *mockS3Client) PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, _ ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error) {
	m.calls = append(m.calls, "PutBucketPolicy")
	if m.PutBucketPolicyFunc != nil {
		return m.PutBucketPolicyFunc(ctx, params)
	}
	return &s3.PutBucketPolicyOutput{}, nil
}

func (m *mockS3Client) PutPublicAccessBlock(ctx context.Context, params *s3.PutPublicAccessBlockInput, _ ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error) {
	m.calls = append(m.calls, "PutPublicAccessBlock")
	if m.PutPublicAccessBlockFunc != nil {
		return m.PutPublicAccessBlockFunc(ctx, params)
	}
	return &s3.PutPublicAccessBlockOutput{}, nil
}

func (m *mockS3Client) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	m.calls = append(m.calls, "CreateMultipartUpload")
	if m.CreateMultipartUploadFunc != nil {
		return m.CreateMultipartUploadFunc(ctx, params)
	}
	return &s3.CreateMultipartUploadOutput{UploadId: stringPtr("upload-id")}, nil
}

func (m *mockS3Client) UploadPart(ctx context.Context, params *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	if m.UploadPartFunc != nil {
		return m.UploadPartFunc(ctx, params)
	}
	return &s3.UploadPartOutput{ETag: stringPtr("etag")}, nil
}

func (m *mockS3Client) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	m.calls = append(m.calls, "CompleteMultipartUpload")
	if m.CompleteMultipartUploadFunc != nil {
		return m.CompleteMultipartUploadFunc(ctx, params)
	}
	return &s3.CompleteMultipartUploadOutput{}, nil
}

func (m *mockS3Client) AbortMultipartUpload(_ context.Context, _ *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	m.calls = append(m.calls, "AbortMultipartUpload")
	return &s3.AbortMultipartUploadOutput{}, nil
}

func stringPtr(s string) *string { return &s }
