// Package cloudwriter streams generated artifacts (parquet event dumps,
// correction CSV exports) to object storage.
package cloudwriter

type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
