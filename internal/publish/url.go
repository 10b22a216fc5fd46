package publish

import (
	"fmt"
)

// WebsiteDomain returns the static website domain of a bucket in region.
func WebsiteDomain(region string) string {
	return fmt.Sprintf("s3-website.%s.amazonaws.com", region)
}

// WebsiteURL is the public address of prefix once the bucket serves it.
// An empty domain falls back to WebsiteDomain(region).
func WebsiteURL(bucket string, region string, domain string, prefix string) string {
	if domain == "" {
		domain = WebsiteDomain(region)
	}

	return fmt.Sprintf("http://%s.%s/%s", bucket, domain, prefix)
}
