package models

// StorageProvider holds the connection settings for a remote storage
// backend. Type selects the client implementation; s3, r2 and wasabi are
// all served by the S3-compatible client with different endpoints.
type StorageProvider struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"-"`
	SecretKey string `json:"-"`
	CDNUrl    string `json:"cdn_url"`
	BasePath  string `json:"base_path"`
}
