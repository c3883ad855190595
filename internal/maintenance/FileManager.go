package maintenance

import (
	"os"

	json "github.com/goccy/go-json"

	"futsald/internal/maintenance/interfaces"
	"futsald/internal/models"
	"futsald/internal/providers"
	"futsald/internal/store"
)

type FileManager struct {
	store      *store.Store
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, st *store.Store, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      st,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := f.store.Snapshot()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
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

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		// Early deployments wrote plain JSON. Fall back to reading the raw
		// bytes before giving up.
		f.logger.Warnf(providers.TypeApp, "Snapshot is not zstd, trying plain JSON")
		decompressed = data
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressed, &snapshot); err != nil {
		f.logger.Warnf(providers.TypeApp, "Snapshot restore failed")
		return err
	}

	f.store.Restore(&snapshot)
	return nil
}
