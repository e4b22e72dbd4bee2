package services

import (
	"context"
	"time"

	"timesheet-project/backend/logging"
	"timesheet-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShiftService struct {
	ShiftsCollection  *mongo.Collection
	MembersCollection *mongo.Collection
}

func NewShiftService(shifts, members *mongo.Collection) *ShiftService {
	return &ShiftService{
		ShiftsCollection:  shifts,
		MembersCollection: members,
	}
}

// GetEmployeeShift returns the active shift for a member. When none is
// assigned, a default configuration built from the member's shift field is
// returned instead of NotFound.
func (s *ShiftService) GetEmployeeShift(ctx context.Context, employeeID primitive.ObjectID) (*models.Shift, bool, error) {
	var shift models.Shift
	err := s.ShiftsCollection.FindOne(ctx, bson.M{"employeeId": employeeID, "isActive": true}).Decode(&shift)
	if err == nil {
		return &shift, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, Internal(err)
	}

	var member models.TeamMember
	if err := s.MembersCollection.FindOne(ctx, bson.M{"_id": employeeID}).Decode(&member); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, false, NotFoundf("no shift found for employee")
		}
		return nil, false, Internal(err)
	}

	shiftType := models.TrackingType(member.Shift)
	if !models.ValidTrackingType(shiftType) {
		shiftType = models.TrackingMonthly
	}
	fallback := &models.Shift{
		EmployeeID:  employeeID,
		ShiftType:   shiftType,
		StartTime:   "09:00",
		EndTime:     "17:00",
		WorkingDays: models.DefaultWorkingDays,
	}
	return fallback, true, nil
}

// AssignShiftRequest carries the validated input for AssignShift.
type AssignShiftRequest struct {
	EmployeeID    primitive.ObjectID
	ShiftType     models.TrackingType
	StartTime     string
	EndTime       string
	WorkingDays   []string
	Description   string
	HoursPerDay   int
	DaysPerWeek   int
	WeeksPerMonth int
	MonthlyHours  int
	AssignedBy    primitive.ObjectID
}

// AssignShift deactivates any active shift for the employee and inserts the
// new one, keeping at most one active shift per employee. The member's
// default shift field is updated alongside.
func (s *ShiftService) AssignShift(ctx context.Context, req AssignShiftRequest) (*models.Shift, error) {
	count, err := s.MembersCollection.CountDocuments(ctx, bson.M{"_id": req.EmployeeID})
	if err != nil {
		return nil, Internal(err)
	}
	if count == 0 {
		return nil, NotFoundf("employee not found")
	}

	if _, err := s.ShiftsCollection.UpdateMany(ctx,
		bson.M{"employeeId": req.EmployeeID, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false}},
	); err != nil {
		logging.Logger.Errorf("Event ID: SHIFT_DEACTIVATE_FAILED, Description: Failed to deactivate shifts for %s: %v", req.EmployeeID.Hex(), err)
		return nil, Internal(err)
	}

	now := time.Now()
	shift := &models.Shift{
		ID:            primitive.NewObjectID(),
		EmployeeID:    req.EmployeeID,
		ShiftType:     req.ShiftType,
		StartTime:     orDefault(req.StartTime, "09:00"),
		EndTime:       orDefault(req.EndTime, "17:00"),
		WorkingDays:   req.WorkingDays,
		IsActive:      true,
		AssignedBy:    req.AssignedBy,
		AssignedDate:  now,
		Description:   req.Description,
		HoursPerDay:   orDefaultInt(req.HoursPerDay, 8),
		DaysPerWeek:   orDefaultInt(req.DaysPerWeek, 5),
		WeeksPerMonth: orDefaultInt(req.WeeksPerMonth, 4),
		MonthlyHours:  orDefaultInt(req.MonthlyHours, 160),
		CreatedAt:     now,
	}
	if len(shift.WorkingDays) == 0 {
		shift.WorkingDays = models.DefaultWorkingDays
	}

	if _, err := s.ShiftsCollection.InsertOne(ctx, shift); err != nil {
		logging.Logger.Errorf("Event ID: SHIFT_INSERT_FAILED, Description: Failed to insert shift: %v", err)
		return nil, Internal(err)
	}

	if _, err := s.MembersCollection.UpdateOne(ctx,
		bson.M{"_id": req.EmployeeID},
		bson.M{"$set": bson.M{"shift": shift.ShiftType}},
	); err != nil {
		logging.Logger.Warnf("Event ID: MEMBER_SHIFT_SYNC_FAILED, Description: Failed to sync shift type to member %s: %v", req.EmployeeID.Hex(), err)
	}

	logging.Logger.Infof("Event ID: SHIFT_ASSIGNED, Description: %s shift assigned to employee %s", shift.ShiftType, req.EmployeeID.Hex())
	return shift, nil
}

// GetAllShifts returns every active shift, newest first.
func (s *ShiftService) GetAllShifts(ctx context.Context) ([]models.Shift, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.ShiftsCollection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, Internal(err)
	}
	defer cursor.Close(ctx)

	shifts := []models.Shift{}
	if err := cursor.All(ctx, &shifts); err != nil {
		return nil, Internal(err)
	}
	return shifts, nil
}

// UpdateShift merges a patch into a shift and keeps the member's default
// shift field in sync when the type changes.
func (s *ShiftService) UpdateShift(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Shift, error) {
	delete(patch, "_id")

	res, err := s.ShiftsCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		logging.Logger.Errorf("Event ID: SHIFT_UPDATE_FAILED, Description: Failed to update shift %s: %v", id.Hex(), err)
		return nil, Internal(err)
	}
	if res.MatchedCount == 0 {
		return nil, NotFoundf("shift not found")
	}

	var shift models.Shift
	if err := s.ShiftsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&shift); err != nil {
		return nil, Internal(err)
	}

	if shiftType, ok := patch["shiftType"]; ok {
		if _, err := s.MembersCollection.UpdateOne(ctx,
			bson.M{"_id": shift.EmployeeID},
			bson.M{"$set": bson.M{"shift": shiftType}},
		); err != nil {
			logging.Logger.Warnf("Event ID: MEMBER_SHIFT_SYNC_FAILED, Description: Failed to sync shift type to member %s: %v", shift.EmployeeID.Hex(), err)
		}
	}

	return &shift, nil
}

// DeactivateShift is the soft delete for shifts.
func (s *ShiftService) DeactivateShift(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.ShiftsCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		logging.Logger.Errorf("Event ID: SHIFT_DELETE_FAILED, Description: Failed to deactivate shift %s: %v", id.Hex(), err)
		return Internal(err)
	}
	if res.MatchedCount == 0 {
		return NotFoundf("shift not found")
	}
	return nil
}

// GetShiftHistory returns all shifts ever assigned to an employee, newest
// first, active or not.
func (s *ShiftService) GetShiftHistory(ctx context.Context, employeeID primitive.ObjectID) ([]models.Shift, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.ShiftsCollection.Find(ctx, bson.M{"employeeId": employeeID}, opts)
	if err != nil {
		return nil, Internal(err)
	}
	defer cursor.Close(ctx)

	shifts := []models.Shift{}
	if err := cursor.All(ctx, &shifts); err != nil {
		return nil, Internal(err)
	}
	return shifts, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func orDefaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
