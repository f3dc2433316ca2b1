// workers/beach_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"beach-cleanup-system/metrics"
	"beach-cleanup-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BeachStatusEntry matches the JSON rows of the external cleanliness feed.
// Beach cleanliness is owned by that feed — this service only mirrors it.
type BeachStatusEntry struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Status    string   `json:"status"`
}

// BeachStatusResponse is the top-level structure of the feed response.
type BeachStatusResponse struct {
	Beaches []BeachStatusEntry `json:"beaches"`
}

type BeachSyncWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

func NewBeachSyncWorker(db *gorm.DB, feedBaseURL, serviceToken string) *BeachSyncWorker {
	return &BeachSyncWorker{
		db:           db,
		interval:     10 * time.Minute,
		baseURL:      feedBaseURL,
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *BeachSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Beach Status Sync Worker (cleanliness feed → beaches)…")
	go w.run(ctx)
}

func (w *BeachSyncWorker) run(ctx context.Context) {
	if err := w.syncBatch(ctx); err != nil {
		log.Printf("⚠️ Initial beach sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncBatch(ctx); err != nil {
				log.Printf("❌ Beach sync batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Beach Status Sync Worker stopped")
			return
		}
	}
}

// syncBatch fetches the full feed and upserts beach rows on their slug.
// Malformed entries are skipped with a log line; one bad row never aborts
// the batch.
func (w *BeachSyncWorker) syncBatch(ctx context.Context) error {
	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid beach feed URL '%s': %w", w.baseURL, err)
	}
	finalURL := base.JoinPath("/beaches").String()

	req, err := http.NewRequestWithContext(ctx, "GET", finalURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request to %s: %w", finalURL, err)
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		metrics.BeachSyncErrors.Inc()
		return fmt.Errorf("HTTP request to beach feed failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		metrics.BeachSyncErrors.Inc()
		return fmt.Errorf("beach feed non-200 response: %d — %s", resp.StatusCode, string(body))
	}

	var response BeachStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		metrics.BeachSyncErrors.Inc()
		return fmt.Errorf("failed to decode beach feed response: %w", err)
	}

	if len(response.Beaches) == 0 {
		log.Println("[BEACH_SYNC] ✅ Feed returned no beaches")
		return nil
	}

	var upsertCount, skipCount int
	for _, entry := range response.Beaches {
		if entry.Name == "" {
			skipCount++
			log.Printf("[BEACH_SYNC] ⚠️ Skipping unnamed beach entry")
			continue
		}
		status := entry.Status
		switch status {
		case models.BeachStatusClean, models.BeachStatusNeedsCleaning, models.BeachStatusCritical:
		default:
			skipCount++
			log.Printf("[BEACH_SYNC] ⚠️ Skipping beach %q: unknown status %q", entry.Name, status)
			continue
		}

		beach := models.Beach{
			ID:        uuid.NewString(),
			Name:      entry.Name,
			Slug:      slug.Make(entry.Name),
			Latitude:  entry.Latitude,
			Longitude: entry.Longitude,
			Status:    status,
		}
		if err := w.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "latitude", "longitude", "status", "updated_at",
			}),
		}).Create(&beach).Error; err != nil {
			log.Printf("[BEACH_SYNC] ⚠️ Failed to upsert beach %q: %v", entry.Name, err)
			metrics.BeachSyncErrors.Inc()
		} else {
			upsertCount++
		}
	}

	log.Printf("[BEACH_SYNC] ✅ Synced %d beach(es) (%d upserted, %d skipped)",
		len(response.Beaches), upsertCount, skipCount)
	return nil
}
