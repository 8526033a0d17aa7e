package adapters

import (
	"slices"

	"github.com/de-tools/sheet-atlas/pkg/models/api"
	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/de-tools/sheet-atlas/pkg/models/store"
)

func MapDomainReloadToStoreRecord(result domain.ReloadResult) store.ReloadRecord {
	return store.ReloadRecord{
		ID:           result.ID,
		Location:     result.Location,
		Status:       string(result.Status),
		TablesLoaded: result.TablesLoaded,
		TableNames:   slices.Clone(result.TableNames),
		Error:        result.Error,
		StartedAt:    result.StartedAt,
		FinishedAt:   result.FinishedAt,
	}
}

func MapStoreRecordToDomainReload(record store.ReloadRecord) domain.ReloadResult {
	return domain.ReloadResult{
		ID:           record.ID,
		Location:     record.Location,
		Status:       domain.ReloadStatus(record.Status),
		TablesLoaded: record.TablesLoaded,
		TableNames:   slices.Clone(record.TableNames),
		Error:        record.Error,
		StartedAt:    record.StartedAt,
		FinishedAt:   record.FinishedAt,
	}
}

func MapReloadDomainToApi(result domain.ReloadResult) api.ReloadResponse {
	names := result.TableNames
	if names == nil {
		names = []string{}
	}
	return api.ReloadResponse{
		Message:      "Data reloaded",
		TablesLoaded: result.TablesLoaded,
		TableNames:   names,
		Location:     result.Location,
		Status:       string(result.Status),
		Error:        result.Error,
	}
}

func MapReloadHistoryDomainToApi(results []domain.ReloadResult) []api.ReloadRecord {
	records := make([]api.ReloadRecord, 0, len(results))
	for _, r := range results {
		names := r.TableNames
		if names == nil {
			names = []string{}
		}
		records = append(records, api.ReloadRecord{
			ID:           r.ID,
			Location:     r.Location,
			Status:       string(r.Status),
			TablesLoaded: r.TablesLoaded,
			TableNames:   names,
			Error:        r.Error,
			StartedAt:    r.StartedAt,
			FinishedAt:   r.FinishedAt,
		})
	}
	return records
}
