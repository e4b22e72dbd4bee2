package services

import (
	"context"
	"math"
	"time"

	"timesheet-project/backend/logging"
	"timesheet-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TimeEntryService owns the timer lifecycle and manual entry bookkeeping.
type TimeEntryService struct {
	EntriesCollection *mongo.Collection
	ShiftsCollection  *mongo.Collection
}

func NewTimeEntryService(entries, shifts *mongo.Collection) *TimeEntryService {
	return &TimeEntryService{
		EntriesCollection: entries,
		ShiftsCollection:  shifts,
	}
}

// EnsureTimeEntryIndexes creates the partial unique index that guards the
// one-running-timer-per-principal invariant at the storage layer. The
// pre-insert check alone is a check-then-act race; the index makes the
// reservation atomic.
func (s *TimeEntryService) EnsureTimeEntryIndexes(ctx context.Context) error {
	_, err := s.EntriesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "userModel", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": models.EntryInProgress}),
	})
	return err
}

// StartTimerRequest carries the validated input for StartTimer.
type StartTimerRequest struct {
	UserID       primitive.ObjectID
	UserModel    models.UserModel
	Project      primitive.ObjectID
	Task         primitive.ObjectID
	Description  string
	TrackingType models.TrackingType
	HourlyRate   float64
}

// resolveTrackingType picks the tracking granularity for a new timer. An
// active shift wins over the caller-supplied value; absent both, Hourly.
func resolveTrackingType(caller models.TrackingType, shift *models.Shift) models.TrackingType {
	if shift != nil && models.ValidTrackingType(shift.ShiftType) {
		return shift.ShiftType
	}
	if models.ValidTrackingType(caller) {
		return caller
	}
	return models.TrackingHourly
}

// activeShiftFor loads the active shift for a team member, nil when none.
func (s *TimeEntryService) activeShiftFor(ctx context.Context, employeeID primitive.ObjectID) (*models.Shift, error) {
	var shift models.Shift
	err := s.ShiftsCollection.FindOne(ctx, bson.M{"employeeId": employeeID, "isActive": true}).Decode(&shift)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// StartTimer creates a running entry for the principal. Fails with Conflict
// when an In Progress entry already exists for (userId, userModel).
func (s *TimeEntryService) StartTimer(ctx context.Context, req StartTimerRequest) (*models.TimeEntry, error) {
	count, err := s.EntriesCollection.CountDocuments(ctx, bson.M{
		"userId":    req.UserID,
		"userModel": req.UserModel,
		"status":    models.EntryInProgress,
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: TIMER_LOOKUP_FAILED, Description: Active timer lookup failed: %v", err)
		return nil, Internal(err)
	}
	if count > 0 {
		return nil, Conflictf("you already have an active timer, stop it first")
	}

	trackingType := req.TrackingType
	if req.UserModel == models.UserModelTeamMember {
		shift, err := s.activeShiftFor(ctx, req.UserID)
		if err != nil {
			logging.Logger.Errorf("Event ID: SHIFT_LOOKUP_FAILED, Description: Shift lookup for member %s failed: %v", req.UserID.Hex(), err)
			return nil, Internal(err)
		}
		trackingType = resolveTrackingType(req.TrackingType, shift)
	} else {
		trackingType = resolveTrackingType(req.TrackingType, nil)
	}

	now := time.Now()
	entry := &models.TimeEntry{
		ID:           primitive.NewObjectID(),
		UserID:       req.UserID,
		UserModel:    req.UserModel,
		Project:      req.Project,
		Task:         req.Task,
		Description:  req.Description,
		StartTime:    now,
		Billable:     true,
		Status:       models.EntryInProgress,
		TrackingType: trackingType,
		HourlyRate:   req.HourlyRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.EntriesCollection.InsertOne(ctx, entry); err != nil {
		// The partial unique index rejects a second running timer that raced
		// past the pre-check.
		if mongo.IsDuplicateKeyError(err) {
			return nil, Conflictf("you already have an active timer, stop it first")
		}
		logging.Logger.Errorf("Event ID: TIMER_START_FAILED, Description: Failed to insert time entry: %v", err)
		return nil, Internal(err)
	}

	logging.Logger.Infof("Event ID: TIMER_STARTED, Description: Timer %s started for %s %s", entry.ID.Hex(), req.UserModel, req.UserID.Hex())
	return entry, nil
}

// StopTimer completes a running entry and computes its totals.
func (s *TimeEntryService) StopTimer(ctx context.Context, entryID primitive.ObjectID) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := s.EntriesCollection.FindOne(ctx, bson.M{"_id": entryID}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundf("time entry not found")
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: TIMER_LOOKUP_FAILED, Description: Time entry lookup failed: %v", err)
		return nil, Internal(err)
	}

	if entry.Status != models.EntryInProgress {
		return nil, InvalidStatef("timer is not active")
	}

	now := time.Now()
	entry.EndTime = &now
	entry.Status = models.EntryCompleted
	entry.UpdatedAt = now
	entry.ComputeTotals()

	update := bson.M{"$set": bson.M{
		"endTime":     entry.EndTime,
		"status":      entry.Status,
		"duration":    entry.Duration,
		"totalAmount": entry.TotalAmount,
		"updatedAt":   entry.UpdatedAt,
	}}
	if _, err := s.EntriesCollection.UpdateOne(ctx, bson.M{"_id": entryID}, update); err != nil {
		logging.Logger.Errorf("Event ID: TIMER_STOP_FAILED, Description: Failed to persist stopped timer %s: %v", entryID.Hex(), err)
		return nil, Internal(err)
	}

	logging.Logger.Infof("Event ID: TIMER_STOPPED, Description: Timer %s stopped, duration %d minutes", entryID.Hex(), entry.Duration)
	return &entry, nil
}

// ManualEntryRequest carries the validated input for RecordManualEntry.
type ManualEntryRequest struct {
	UserID      primitive.ObjectID
	UserModel   models.UserModel
	Project     primitive.ObjectID
	Task        primitive.ObjectID
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Billable    *bool
	HourlyRate  float64
}

// RecordManualEntry stores an already finished block of work.
func (s *TimeEntryService) RecordManualEntry(ctx context.Context, req ManualEntryRequest) (*models.TimeEntry, error) {
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, NewValidationError("startTime", "endTime")
	}
	if req.EndTime.Before(req.StartTime) {
		return nil, Validationf("endTime must not be before startTime")
	}

	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}

	now := time.Now()
	end := req.EndTime
	entry := &models.TimeEntry{
		ID:            primitive.NewObjectID(),
		UserID:        req.UserID,
		UserModel:     req.UserModel,
		Project:       req.Project,
		Task:          req.Task,
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       &end,
		Billable:      billable,
		Status:        models.EntryCompleted,
		TrackingType:  models.TrackingHourly,
		IsManualEntry: true,
		HourlyRate:    req.HourlyRate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	entry.ComputeTotals()

	if _, err := s.EntriesCollection.InsertOne(ctx, entry); err != nil {
		logging.Logger.Errorf("Event ID: MANUAL_ENTRY_FAILED, Description: Failed to insert manual entry: %v", err)
		return nil, Internal(err)
	}

	return entry, nil
}

// UpdateEntry merges a patch into an entry. When the patch supplies both
// startTime and endTime the totals are recomputed and the entry is forced to
// Completed; all other fields pass through.
func (s *TimeEntryService) UpdateEntry(ctx context.Context, entryID primitive.ObjectID, patch bson.M) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := s.EntriesCollection.FindOne(ctx, bson.M{"_id": entryID}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundf("time entry not found")
	}
	if err != nil {
		return nil, Internal(err)
	}

	delete(patch, "_id")
	delete(patch, "userId")
	delete(patch, "userModel")
	patch["updatedAt"] = time.Now()

	_, hasStart := patch["startTime"]
	_, hasEnd := patch["endTime"]
	if hasStart && hasEnd {
		patch["status"] = models.EntryCompleted
	}

	if _, err := s.EntriesCollection.UpdateOne(ctx, bson.M{"_id": entryID}, bson.M{"$set": patch}); err != nil {
		logging.Logger.Errorf("Event ID: ENTRY_UPDATE_FAILED, Description: Failed to update time entry %s: %v", entryID.Hex(), err)
		return nil, Internal(err)
	}

	if err := s.EntriesCollection.FindOne(ctx, bson.M{"_id": entryID}).Decode(&entry); err != nil {
		return nil, Internal(err)
	}

	if hasStart && hasEnd {
		entry.ComputeTotals()
		recompute := bson.M{"$set": bson.M{"duration": entry.Duration, "totalAmount": entry.TotalAmount}}
		if _, err := s.EntriesCollection.UpdateOne(ctx, bson.M{"_id": entryID}, recompute); err != nil {
			return nil, Internal(err)
		}
	}

	return &entry, nil
}

// EntryFilter narrows ListEntries.
type EntryFilter struct {
	UserID    *primitive.ObjectID
	Project   *primitive.ObjectID
	Status    models.TimeEntryStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// ListEntries returns entries newest first.
func (s *TimeEntryService) ListEntries(ctx context.Context, filter EntryFilter) ([]models.TimeEntry, error) {
	query := bson.M{}
	if filter.UserID != nil {
		query["userId"] = *filter.UserID
	}
	if filter.Project != nil {
		query["project"] = *filter.Project
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		created := bson.M{}
		if filter.StartDate != nil {
			created["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			created["$lte"] = *filter.EndDate
		}
		query["createdAt"] = created
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.EntriesCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, Internal(err)
	}
	defer cursor.Close(ctx)

	entries := []models.TimeEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, Internal(err)
	}
	return entries, nil
}

// GetActiveEntry returns the running entry for a principal, NotFound when
// no timer is running.
func (s *TimeEntryService) GetActiveEntry(ctx context.Context, userID primitive.ObjectID, userModel models.UserModel) (*models.TimeEntry, error) {
	query := bson.M{"userId": userID, "status": models.EntryInProgress}
	if userModel != "" {
		query["userModel"] = userModel
	}

	var entry models.TimeEntry
	err := s.EntriesCollection.FindOne(ctx, query).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundf("no active timer for user")
	}
	if err != nil {
		return nil, Internal(err)
	}
	return &entry, nil
}

// DeleteEntry removes an entry permanently.
func (s *TimeEntryService) DeleteEntry(ctx context.Context, entryID primitive.ObjectID) error {
	res, err := s.EntriesCollection.DeleteOne(ctx, bson.M{"_id": entryID})
	if err != nil {
		logging.Logger.Errorf("Event ID: ENTRY_DELETE_FAILED, Description: Failed to delete time entry %s: %v", entryID.Hex(), err)
		return Internal(err)
	}
	if res.DeletedCount == 0 {
		return NotFoundf("time entry not found")
	}
	return nil
}

// GetUserTotalHours aggregates a user's minutes over a date range.
func (s *TimeEntryService) GetUserTotalHours(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (models.TimeSummary, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"userId":    userID,
			"createdAt": bson.M{"$gte": start, "$lte": end},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalMinutes": bson.M{"$sum": "$duration"},
			"totalEntries": bson.M{"$sum": 1},
			"billableMinutes": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$billable", true}}, "$duration", 0},
			}},
		}}},
	}

	cursor, err := s.EntriesCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.TimeSummary{}, Internal(err)
	}
	defer cursor.Close(ctx)

	var results []models.TimeSummary
	if err := cursor.All(ctx, &results); err != nil {
		return models.TimeSummary{}, Internal(err)
	}
	if len(results) == 0 {
		return models.TimeSummary{}, nil
	}
	return results[0], nil
}

// RecentEntries returns the latest entries for a user inside a range.
func (s *TimeEntryService) RecentEntries(ctx context.Context, userID primitive.ObjectID, start, end time.Time, limit int64) ([]models.TimeEntry, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := s.EntriesCollection.Find(ctx, bson.M{
		"userId":    userID,
		"createdAt": bson.M{"$gte": start, "$lte": end},
	}, opts)
	if err != nil {
		return nil, Internal(err)
	}
	defer cursor.Close(ctx)

	entries := []models.TimeEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, Internal(err)
	}
	return entries, nil
}

// RoundHours converts minutes to hours rounded to two decimals, the only
// place the service rounds monetary-adjacent values.
func RoundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
