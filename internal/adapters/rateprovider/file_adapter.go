package rateprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/shopspring/decimal"
)

// fileRecord is one daily entry of a JSON snapshot file.
type fileRecord struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FileAdapter serves rates from local JSON snapshot files under the
// provider's address root. It holds no cache: every call re-reads and
// re-parses the file, so concurrent snapshot rewrites are picked up
// immediately.
type FileAdapter struct {
	address string
	cfg     domain.ProviderConfig
}

// NewFileAdapter validates the endpoint configuration and builds the adapter.
func NewFileAdapter(address string, cfg domain.ProviderConfig) (*FileAdapter, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &FileAdapter{address: address, cfg: cfg}, nil
}

// GetLatestRate fetches the most recent rate for a single currency pair.
func (a *FileAdapter) GetLatestRate(ctx context.Context, sourceCode, exchangedCode string) (decimal.Decimal, error) {
	record, err := a.latestRecord(sourceCode)
	if err != nil {
		return decimal.Zero, err
	}
	rate, ok := record.Rates[exchangedCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s in file", apperrors.ErrProvider, exchangedCode)
	}
	return rate, nil
}

// GetLatestRates fetches the most recent rates against several currencies.
// The file carries full rate maps per base, so the whole mapping is returned.
func (a *FileAdapter) GetLatestRates(ctx context.Context, sourceCode string, exchangedCodes []string) (map[string]decimal.Decimal, error) {
	record, err := a.latestRecord(sourceCode)
	if err != nil {
		return nil, err
	}
	return record.Rates, nil
}

// GetHistoricalRates fetches rates for one valuation date. A missing
// date+base combination is an ordinary miss, not an error.
func (a *FileAdapter) GetHistoricalRates(ctx context.Context, sourceCode string, exchangedCodes []string, valuationDate time.Time) (*domain.RateMap, error) {
	records, err := a.readRecords(a.cfg.Endpoints.Historical.Request.Path)
	if err != nil {
		return nil, err
	}

	wanted := valuationDate.Format(dateLayout)
	for _, record := range records {
		if record.Date == wanted && record.Base == sourceCode {
			return &domain.RateMap{
				Date:  valuationDate,
				Base:  sourceCode,
				Rates: record.Rates,
			}, nil
		}
	}
	return nil, nil
}

func (a *FileAdapter) latestRecord(sourceCode string) (*fileRecord, error) {
	records, err := a.readRecords(a.cfg.Endpoints.Latest.Request.Path)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Base == sourceCode {
			if len(records[i].Rates) == 0 {
				return nil, fmt.Errorf("%w: empty rate set for %s in file", apperrors.ErrProvider, sourceCode)
			}
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: source currency %s not found in file", apperrors.ErrProvider, sourceCode)
}

// readRecords accepts either an array of daily records or a single record
// object; snapshot generators have produced both shapes.
func (a *FileAdapter) readRecords(relativePath string) ([]fileRecord, error) {
	filePath := filepath.Join(a.address, relativePath)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", apperrors.ErrProvider, filePath, err)
	}

	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		var single fileRecord
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("%w: undecodable snapshot file %s: %v", apperrors.ErrProvider, filePath, err)
		}
		records = []fileRecord{single}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty snapshot file %s", apperrors.ErrProvider, filePath)
	}
	return records, nil
}
