package statistic

import (
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"puzzlestats/internal/models"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/services"
	"puzzlestats/internal/statistic/interfaces"
	"puzzlestats/internal/structures"
)

var ErrUnsupportedVersion = errors.New("unsupported storage version")

type FileManager struct {
	service    services.RecordServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	compress   bool
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, service services.RecordServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
		compress:   conf.Persistence.Compress,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	return f.WriteStorage(fileName, f.service.GetSnapshot())
}

// WriteStorage writes storage through a temp file so a crash never leaves a
// half-written store behind.
func (f *FileManager) WriteStorage(fileName string, storage *models.Storage) error {
	data, err := json.Marshal(storage)
	if err != nil {
		return err
	}
	if f.compress {
		data, err = f.compressor.Compress(data)
		if err != nil {
			return err
		}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile replaces the service data with the file's content. A missing
// file leaves the service untouched. migrated is true when the file was in
// the legacy format and still needs to be rewritten.
func (f *FileManager) LoadFromFile(fileName string) (migrated bool, err error) {
	storage, migrated, err := f.ReadStorage(fileName)
	if err != nil || storage == nil {
		return false, err
	}
	f.service.PutData(storage)
	return migrated, nil
}

func (f *FileManager) ReadStorage(fileName string) (*models.Storage, bool, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return f.Decode(data)
}

// Decode accepts the current document, compressed or not, and the legacy
// unversioned one.
func (f *FileManager) Decode(data []byte) (*models.Storage, bool, error) {
	if IsCompressed(data) {
		decompressed, err := f.compressor.Decompress(data)
		if err != nil {
			return nil, false, err
		}
		data = decompressed
	}

	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false, err
	}

	switch probe.Version {
	case models.StorageVersion:
		var storage models.Storage
		if err := json.Unmarshal(data, &storage); err != nil {
			return nil, false, err
		}
		storage.Normalize()
		return &storage, false, nil
	case 0:
		f.logger.Warnf(providers.TypeApp, "Unversioned store found, migrating from legacy format")
		var legacy models.LegacyStorage
		if err := json.Unmarshal(data, &legacy); err != nil {
			f.logger.Warnf(providers.TypeApp, "Migration failed")
			return nil, false, err
		}
		storage, report := legacy.Migrate()
		f.logger.Warnf(providers.TypeApp, "Migrated %d users (%d wordle, %d connections, %d mini), dropped %d records",
			report.Users, report.Wordle, report.Connections, report.Mini, report.DroppedRecords)
		return storage, true, nil
	default:
		return nil, false, fmt.Errorf("%w: %d", ErrUnsupportedVersion, probe.Version)
	}
}
