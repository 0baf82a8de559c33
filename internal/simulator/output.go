package simulator

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dkaranikas/komanda/internal/cloudwriter"
	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/simulator/producers"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

type ConsoleOutput struct{}

type CSVOutput struct {
	basePath string
	folder   string
	files    map[string]*csv.Writer
	headers  map[string][]string
}

type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

type ParquetOutput struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	writerMutexes      map[string]*sync.Mutex
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

// CloudParquetFile adapts a streaming cloud writer to the ParquetFile
// interface. Objects are write-once: reads and seek-from-end are not
// supported.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*csv.Writer),
		headers:  make(map[string][]string),
	}
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func NewParquetOutput(config *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath:      config.OutputPath,
		folder:        config.OutputFolder,
		writers:       make(map[string]*writer.ParquetWriter),
		writerMutexes: make(map[string]*sync.Mutex),
		files:         make(map[string]source.ParquetFile),
	}

	if config.OutputDestination != "local" {
		var factory cloudwriter.CloudWriterFactory
		var err error

		switch config.CloudStorage.Provider {
		case "s3":
			factory, err = cloudwriter.NewS3WriterFactory(config.CloudStorage.Region)
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}

		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}

		p.cloudWriterFactory = factory
		p.cloudBucketName = config.CloudStorage.BucketName
	}

	// clean up stale .parquet files from a previous run
	p.cleanup()

	return p, nil
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{
		cloudWriter: cloudWriter,
		offset:      0,
	}
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

// eventPartition decodes a serialized event and derives its hive-style
// partition path from the embedded unix timestamp.
func eventPartition(msg []byte) (map[string]interface{}, string, error) {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return nil, "", err
	}

	timestamp, ok := event["timestamp"].(float64)
	if !ok {
		return nil, "", fmt.Errorf("invalid timestamp")
	}

	eventTime := time.Unix(int64(timestamp), 0)
	year, month, day := eventTime.Date()
	hour := eventTime.Hour()

	partitionPath := fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", year, month, day, hour)
	return event, partitionPath, nil
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	event, partitionPath, err := eventPartition(msg)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(c.basePath, c.folder, topic, partitionPath)
	if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
		return err
	}

	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	csvWriter, ok := c.files[fileKey]
	if !ok {
		file, err := os.Create(filepath.Join(fullPath, "data.csv"))
		if err != nil {
			return err
		}
		csvWriter = csv.NewWriter(file)
		c.files[fileKey] = csvWriter

		headers := c.getHeaders(event)
		if err := csvWriter.Write(headers); err != nil {
			return err
		}
		c.headers[fileKey] = headers
	}

	row := make([]string, len(c.headers[fileKey]))
	for i, header := range c.headers[fileKey] {
		value, ok := event[header]
		if !ok {
			row[i] = ""
		} else {
			row[i] = fmt.Sprintf("%v", value)
		}
	}

	if err := csvWriter.Write(row); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func (c *CSVOutput) getHeaders(event map[string]interface{}) []string {
	var headers []string
	for key := range event {
		headers = append(headers, key)
	}
	sort.Strings(headers)
	return headers
}

func (c *CSVOutput) Close() error {
	for _, csvWriter := range c.files {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	event, partitionPath, err := eventPartition(msg)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(j.basePath, j.folder, topic, partitionPath)
	if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
		return err
	}

	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	file, ok := j.files[fileKey]
	if !ok {
		file, err = os.Create(filepath.Join(fullPath, "data.json"))
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := file.Write(jsonData); err != nil {
		return err
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	_, partitionPath, err := eventPartition(msg)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(p.basePath, p.folder, topic, partitionPath)
	if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
		return err
	}

	writerKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	p.mu.Lock()
	pw, ok := p.writers[writerKey]
	if !ok {
		pw, err = p.createNewWriter(writerKey, fullPath, partitionPath, topic)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}
	writerMutex := p.writerMutexes[writerKey]
	p.mu.Unlock()

	writerMutex.Lock()
	defer writerMutex.Unlock()

	// re-decode into the typed event so the write matches the topic schema
	event, err := decodeTopicEvent(topic, msg)
	if err != nil {
		return err
	}

	if err := pw.Write(event); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

func (p *ParquetOutput) cleanup() {
	fullPath := filepath.Join(p.basePath, p.folder)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return
	}
	err := filepath.Walk(fullPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".parquet" {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error cleaning up Parquet files: %v", err)
	}
}

func (p *ParquetOutput) createNewWriter(writerKey, fullPath, partitionPath, topic string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	var err error
	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, topic, partitionPath, "data.parquet")
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = NewCloudParquetFile(cloudWriter)
	} else {
		filePath := filepath.Join(fullPath, "data.parquet")
		fw, err = local.NewLocalFileWriter(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	sc, err := GetSchema(topic)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, nil, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.SchemaHandler = sc

	p.writers[writerKey] = pw
	p.writerMutexes[writerKey] = &sync.Mutex{}
	p.files[writerKey] = fw

	return pw, nil
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, pw := range p.writers {
		if pw == nil {
			log.Printf("Warning: nil writer found for key: %s", key)
			continue
		}
		if mutex, ok := p.writerMutexes[key]; ok {
			mutex.Lock()
			if err := pw.WriteStop(); err != nil {
				lastErr = err
				log.Printf("Error closing writer for key %s: %v", key, err)
			}
			if f, ok := p.files[key]; ok {
				if err := f.Close(); err != nil {
					lastErr = err
					log.Printf("Error closing file for key %s: %v", key, err)
				}
			}
			mutex.Unlock()
		}
	}
	return lastErr
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))

	_, err := os.Stdout.Write([]byte(output))
	if err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}

	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

func (s *Simulator) determineOutputDestination() (OutputDestination, error) {
	if s.Config.KafkaEnabled {
		producer, err := producers.NewSaramaProducer(s.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
		}
		return producer, nil
	}
	if s.Config.OutputPath != "" {
		switch s.Config.OutputFormat {
		case "parquet":
			return NewParquetOutput(s.Config)
		case "csv":
			return NewCSVOutput(s.Config.OutputPath, s.Config.OutputFolder), nil
		case "json", "":
			return NewJSONOutput(s.Config.OutputPath, s.Config.OutputFolder), nil
		default:
			return nil, fmt.Errorf("unsupported output format: %s", s.Config.OutputFormat)
		}
	}
	return &ConsoleOutput{}, nil
}
