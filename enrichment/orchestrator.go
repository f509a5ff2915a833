package enrichment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"glana/classifier"
	"glana/classifier/quota"
	"glana/config"
	"glana/eventbus"
	"glana/events"
	"glana/internal/logger"
	"glana/models"
)

// ClassifyFunc matches classifier.Classify; swappable for tests.
type ClassifyFunc func(ctx context.Context, content string, themes []classifier.ThemeHint) (*classifier.Result, *classifier.RequestLog, error)

// Orchestrator coordinates ingestion and out-of-band classification.
//
// Ingestion runs synchronously up to "item created, classification
// scheduled"; the classification unit of work runs as a background task
// consumed off the event bus and never blocks or fails the caller. Task
// failures are logged and the item stays unclassified until an explicit
// re-trigger; there is no automatic retry.
type Orchestrator struct {
	items    ItemStore
	themes   ThemeStore
	aiLogs   AILogStore
	resolver *ThemeResolver
	bus      eventbus.EventBus

	// Classify defaults to classifier.Classify.
	Classify ClassifyFunc

	// Quota optionally rate-limits model calls; nil means unlimited.
	Quota *quota.Limiter
}

func NewOrchestrator(items ItemStore, themes ThemeStore, aiLogs AILogStore, bus eventbus.EventBus) *Orchestrator {
	return &Orchestrator{
		items:    items,
		themes:   themes,
		aiLogs:   aiLogs,
		resolver: NewThemeResolver(themes),
		bus:      bus,
		Classify: classifier.Classify,
	}
}

// IngestInput carries a validated capture request.
type IngestInput struct {
	ExternalID        string
	SourceURL         string
	AuthorHandle      string
	AuthorDisplayName string
	Content           string
	CapturedAt        time.Time
}

// Ingest creates the item unless its external id is already known, and
// schedules classification only for a fresh creation. The pre-existing item
// is returned unmodified on a duplicate (created=false); re-ingesting is a
// no-op by contract, not an error.
func (o *Orchestrator) Ingest(ctx context.Context, in IngestInput) (*models.Item, bool, error) {
	item := &models.Item{
		ExternalID:        in.ExternalID,
		SourceURL:         in.SourceURL,
		AuthorHandle:      in.AuthorHandle,
		AuthorDisplayName: in.AuthorDisplayName,
		Content:           in.Content,
		Tags:              []string{},
		CapturedAt:        in.CapturedAt,
	}

	saved, created, err := o.items.CreateIfAbsent(ctx, item)
	if err != nil {
		return nil, false, err
	}
	if created {
		o.ScheduleClassification(ctx, saved)
	}
	return saved, created, nil
}

// ScheduleClassification publishes the item.captured event that triggers the
// classification task. Publish failures are logged, never surfaced: the
// caller's operation has already succeeded.
func (o *Orchestrator) ScheduleClassification(ctx context.Context, item *models.Item) {
	e := events.ItemCapturedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.ItemCaptured,
			Timestamp: time.Now(),
			Source:    "api",
			Version:   "1.0",
		},
		ItemID:     item.ID,
		ExternalID: item.ExternalID,
		SourceURL:  item.SourceURL,
	}

	evt, err := eventbus.NewJSONEvent(e.BaseEvent.ID, e)
	if err != nil {
		logger.Log.Errorf("failed to build item.captured event for %s: %v", item.ID.Hex(), err)
		return
	}
	if err := o.bus.Publish(ctx, eventbus.TopicItemEvents.Base(), evt); err != nil {
		logger.Log.Errorf("failed to schedule classification for %s: %v", item.ID.Hex(), err)
	}
}

// HandleItemCaptured is the bus handler for item.captured events.
func (o *Orchestrator) HandleItemCaptured(ctx context.Context, payload events.ItemCapturedEvent, _ eventbus.Event) error {
	return o.ClassifyAndUpdate(ctx, payload.ItemID)
}

// ClassifyAndUpdate is the scheduled unit of work: load the item, skip when
// already classified, classify, resolve the theme and apply the result in a
// single field update. Safe to call twice for the same item; the classified
// guard makes the second call a no-op (double-ingest races, forced
// reclassify replays).
func (o *Orchestrator) ClassifyAndUpdate(ctx context.Context, itemID primitive.ObjectID) error {
	item, err := o.items.FindByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("load item %s: %w", itemID.Hex(), err)
	}
	if item.IsClassified {
		logger.Log.Debugf("item %s already classified, skipping", itemID.Hex())
		return nil
	}

	if o.Quota != nil {
		ok, qerr := o.Quota.WaitAndReserve(ctx)
		if qerr != nil {
			return fmt.Errorf("classifier quota wait: %w", qerr)
		}
		if !ok {
			logger.Log.Warnf("classifier daily quota exhausted, item %s left unclassified", itemID.Hex())
			return nil
		}
	}

	themes, err := o.themes.List(ctx)
	if err != nil {
		return fmt.Errorf("load themes: %w", err)
	}
	hints := make([]classifier.ThemeHint, 0, len(themes))
	for _, t := range themes {
		hints = append(hints, classifier.ThemeHint{Name: t.Name, SuggestedTags: t.SuggestedTags})
	}

	startedAt := time.Now()
	res, reqLog, cerr := o.Classify(ctx, item.Content, hints)
	o.recordAILog(ctx, itemID, startedAt, reqLog, cerr)
	if cerr != nil {
		return fmt.Errorf("classify item %s: %w", itemID.Hex(), cerr)
	}

	// Resolve the proposed theme name; last classification wins
	// unconditionally, even on reclassification of an already-themed item.
	var themeID *primitive.ObjectID
	if res.SuggestedTheme != "" {
		id, rerr := o.resolver.Resolve(ctx, res.SuggestedTheme, res.Summary)
		if rerr != nil {
			return fmt.Errorf("resolve theme %q for item %s: %w", res.SuggestedTheme, itemID.Hex(), rerr)
		}
		themeID = &id
	}

	analysis := models.AIAnalysis{
		SuggestedTheme: res.SuggestedTheme,
		SuggestedTags:  res.SuggestedTags,
		HookType:       res.HookType,
		Tone:           res.Tone,
		Summary:        res.Summary,
		ModelName:      config.GetConfig().GeminiModel,
		GeneratedAt:    time.Now(),
	}
	updates := map[string]interface{}{
		"theme_id":      themeID,
		"tags":          res.SuggestedTags,
		"ai_analysis":   analysis,
		"is_classified": true,
	}
	if err := o.items.UpdateFields(ctx, itemID, updates); err != nil {
		return fmt.Errorf("apply classification to item %s: %w", itemID.Hex(), err)
	}

	logger.Log.Infof("item %s classified, theme=%q tags=%d", itemID.Hex(), res.SuggestedTheme, len(res.SuggestedTags))
	return nil
}

// recordAILog writes one ai_logs audit row per model call, successful or not.
func (o *Orchestrator) recordAILog(ctx context.Context, itemID primitive.ObjectID, startedAt time.Time, reqLog *classifier.RequestLog, callErr error) {
	if o.aiLogs == nil {
		return
	}

	row := models.AILog{
		ItemID:      itemID,
		ModelName:   config.GetConfig().GeminiModel,
		RequestedAt: startedAt,
		CompletedAt: time.Now(),
		Success:     callErr == nil,
	}
	if reqLog != nil {
		row.ModelName = reqLog.ModelName
		row.ModelVersion = reqLog.ModelVersion
		row.InputTokens = reqLog.InputTokens
		row.OutputTokens = reqLog.OutputTokens
		row.TotalTokens = reqLog.TotalTokens
		row.DurationMs = reqLog.LatencyMs
		row.ResponseExcerpt = truncate(reqLog.Response, 200)
	} else {
		row.DurationMs = time.Since(startedAt).Milliseconds()
	}
	if callErr != nil {
		msg := callErr.Error()
		row.ErrorMessage = &msg
	}

	if _, err := o.aiLogs.Insert(ctx, row); err != nil {
		logger.Log.Errorf("failed to insert ai_log for %s: %v", itemID.Hex(), err)
	}
}

// truncate returns s truncated to max runes.
func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
