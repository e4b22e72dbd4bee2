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

type LeaveService struct {
	LeavesCollection *mongo.Collection
}

func NewLeaveService(leaves *mongo.Collection) *LeaveService {
	return &LeaveService{LeavesCollection: leaves}
}

// SubmitLeave stores a new application in the pending state. At least one
// reason must be given.
func (s *LeaveService) SubmitLeave(ctx context.Context, leave models.LeaveApplication) (*models.LeaveApplication, error) {
	if len(leave.SelectedReasons) == 0 && leave.OtherReason == "" {
		return nil, Validationf("please provide at least one reason for leave")
	}

	leave.ID = primitive.NewObjectID()
	leave.Status = models.LeavePending
	leave.SubmittedAt = time.Now()
	leave.ReviewedAt = nil
	leave.ReviewedBy = ""
	leave.Comments = ""

	if _, err := s.LeavesCollection.InsertOne(ctx, leave); err != nil {
		logging.Logger.Errorf("Event ID: LEAVE_INSERT_FAILED, Description: Failed to insert leave application: %v", err)
		return nil, Internal(err)
	}

	logging.Logger.Infof("Event ID: LEAVE_SUBMITTED, Description: Leave application %s submitted by %s", leave.ID.Hex(), leave.EmployeeName)
	return &leave, nil
}

// LeaveFilter narrows ListLeaves. Name and department match as
// case-insensitive substrings.
type LeaveFilter struct {
	Status       models.LeaveStatus
	Department   string
	EmployeeName string
}

// ListLeaves returns applications newest first, capped at 100.
func (s *LeaveService) ListLeaves(ctx context.Context, filter LeaveFilter) ([]models.LeaveApplication, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Department != "" {
		query["department"] = bson.M{"$regex": filter.Department, "$options": "i"}
	}
	if filter.EmployeeName != "" {
		query["employeeName"] = bson.M{"$regex": filter.EmployeeName, "$options": "i"}
	}

	opts := options.Find().SetSort(bson.M{"submittedAt": -1}).SetLimit(100)
	cursor, err := s.LeavesCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, Internal(err)
	}
	defer cursor.Close(ctx)

	leaves := []models.LeaveApplication{}
	if err := cursor.All(ctx, &leaves); err != nil {
		return nil, Internal(err)
	}
	return leaves, nil
}

// GetLeaveByID returns one application.
func (s *LeaveService) GetLeaveByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveApplication, error) {
	var leave models.LeaveApplication
	err := s.LeavesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&leave)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundf("leave application not found")
	}
	if err != nil {
		return nil, Internal(err)
	}
	return &leave, nil
}

// ReviewLeave moves a pending application to approved or rejected and stamps
// the review fields. Reviewing a non-pending application is an invalid state
// transition.
func (s *LeaveService) ReviewLeave(ctx context.Context, id primitive.ObjectID, status models.LeaveStatus, reviewedBy, comments string) (*models.LeaveApplication, error) {
	if status != models.LeaveApproved && status != models.LeaveRejected {
		return nil, Validationf("status must be 'approved' or 'rejected'")
	}

	leave, err := s.GetLeaveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if leave.Status != models.LeavePending {
		return nil, InvalidStatef("leave application has already been %s", leave.Status)
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":     status,
		"comments":   comments,
		"reviewedBy": reviewedBy,
		"reviewedAt": now,
	}}
	if _, err := s.LeavesCollection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		logging.Logger.Errorf("Event ID: LEAVE_REVIEW_FAILED, Description: Failed to review leave %s: %v", id.Hex(), err)
		return nil, Internal(err)
	}

	leave.Status = status
	leave.Comments = comments
	leave.ReviewedBy = reviewedBy
	leave.ReviewedAt = &now

	logging.Logger.Infof("Event ID: LEAVE_REVIEWED, Description: Leave application %s %s by %s", id.Hex(), status, reviewedBy)
	return leave, nil
}

// DeleteLeave removes an application permanently.
func (s *LeaveService) DeleteLeave(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.LeavesCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logging.Logger.Errorf("Event ID: LEAVE_DELETE_FAILED, Description: Failed to delete leave %s: %v", id.Hex(), err)
		return Internal(err)
	}
	if res.DeletedCount == 0 {
		return NotFoundf("leave application not found")
	}
	return nil
}
