package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"timesheet-project/backend/logging"
	"timesheet-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const employeeIDPrefix = "EMP"

// TeamService owns the teammembers collection and the employee ID sequence.
type TeamService struct {
	MembersCollection  *mongo.Collection
	CountersCollection *mongo.Collection
}

func NewTeamService(members, counters *mongo.Collection) *TeamService {
	return &TeamService{
		MembersCollection:  members,
		CountersCollection: counters,
	}
}

// EnsureTeamIndexes creates the unique constraints on email and employeeId.
func (s *TeamService) EnsureTeamIndexes(ctx context.Context) error {
	_, err := s.MembersCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "employeeId", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// ParseEmployeeID extracts the numeric suffix from an "EMP###" ID.
func ParseEmployeeID(id string) (int, bool) {
	if !strings.HasPrefix(id, employeeIDPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, employeeIDPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// FormatEmployeeID renders a sequence number as "EMP" zero-padded to three
// digits; larger numbers grow naturally.
func FormatEmployeeID(n int) string {
	return fmt.Sprintf("%s%03d", employeeIDPrefix, n)
}

// NextEmployeeID derives the successor of the last assigned ID. An empty or
// malformed last ID restarts the sequence at EMP001.
func NextEmployeeID(last string) string {
	n, ok := ParseEmployeeID(last)
	if !ok {
		return FormatEmployeeID(1)
	}
	return FormatEmployeeID(n + 1)
}

// FallbackEmployeeID derives an ID from the last three digits of the Unix
// timestamp. Not guaranteed unique; used only when the sequence lookup
// fails entirely.
func FallbackEmployeeID(now time.Time) string {
	return fmt.Sprintf("%s%03d", employeeIDPrefix, now.Unix()%1000)
}

// GenerateEmployeeID reserves the next sequential ID through an atomic $inc
// on a counter document, so concurrent creations cannot observe the same
// value. The counter is seeded from the newest stored member on first use.
func (s *TeamService) GenerateEmployeeID(ctx context.Context) string {
	for attempt := 0; attempt < 2; attempt++ {
		var counter struct {
			Seq int `bson:"seq"`
		}
		err := s.CountersCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": "employeeId"},
			bson.M{"$inc": bson.M{"seq": 1}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&counter)
		if err == nil {
			return FormatEmployeeID(counter.Seq)
		}
		if err != mongo.ErrNoDocuments {
			logging.Logger.Errorf("Event ID: EMPLOYEE_ID_COUNTER_FAILED, Description: Counter lookup failed: %v", err)
			return FallbackEmployeeID(time.Now())
		}

		if err := s.seedCounter(ctx); err != nil {
			logging.Logger.Errorf("Event ID: EMPLOYEE_ID_SEED_FAILED, Description: Counter seeding failed: %v", err)
			return FallbackEmployeeID(time.Now())
		}
	}
	return FallbackEmployeeID(time.Now())
}

// seedCounter initializes the counter at the successor of the newest stored
// employeeId. A duplicate-key error means another request seeded first.
func (s *TeamService) seedCounter(ctx context.Context) error {
	var last models.TeamMember
	seq := 1
	err := s.MembersCollection.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.M{"createdAt": -1})).Decode(&last)
	if err == nil {
		if n, ok := ParseEmployeeID(last.EmployeeID); ok {
			seq = n + 1
		}
	} else if err != mongo.ErrNoDocuments {
		return err
	}

	_, err = s.CountersCollection.InsertOne(ctx, bson.M{"_id": "employeeId", "seq": seq})
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// AddMember assigns the next employeeId and stores the member.
func (s *TeamService) AddMember(ctx context.Context, member models.TeamMember) (*models.TeamMember, error) {
	count, err := s.MembersCollection.CountDocuments(ctx, bson.M{"email": member.Email})
	if err != nil {
		return nil, Internal(err)
	}
	if count > 0 {
		return nil, Conflictf("email already registered")
	}

	now := time.Now()
	member.ID = primitive.NewObjectID()
	member.EmployeeID = s.GenerateEmployeeID(ctx)
	if member.Status == "" {
		member.Status = "Active"
	}
	if member.Role == "" {
		member.Role = models.RoleEmployee
	}
	member.CreatedAt = now
	member.UpdatedAt = now

	if _, err := s.MembersCollection.InsertOne(ctx, member); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, Conflictf("email already registered")
		}
		logging.Logger.Errorf("Event ID: MEMBER_INSERT_FAILED, Description: Failed to insert team member: %v", err)
		return nil, Internal(err)
	}

	logging.Logger.Infof("Event ID: MEMBER_ADDED, Description: Team member %s added with ID %s", member.Email, member.EmployeeID)
	return &member, nil
}

// GetAllMembers returns every team member.
func (s *TeamService) GetAllMembers(ctx context.Context) ([]models.TeamMember, error) {
	cursor, err := s.MembersCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, Internal(err)
	}
	defer cursor.Close(ctx)

	members := []models.TeamMember{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, Internal(err)
	}
	return members, nil
}

// GetMemberByID returns one member.
func (s *TeamService) GetMemberByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := s.MembersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundf("member not found")
	}
	if err != nil {
		return nil, Internal(err)
	}
	return &member, nil
}

// GetMemberByEmail returns one member by email.
func (s *TeamService) GetMemberByEmail(ctx context.Context, email string) (*models.TeamMember, error) {
	var member models.TeamMember
	err := s.MembersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundf("member not found")
	}
	if err != nil {
		return nil, Internal(err)
	}
	return &member, nil
}

// UpdateMember merges a patch into a member. The employeeId is immutable.
func (s *TeamService) UpdateMember(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.TeamMember, error) {
	delete(patch, "_id")
	delete(patch, "employeeId")
	delete(patch, "createdAt")
	patch["updatedAt"] = time.Now()

	res, err := s.MembersCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, Conflictf("email already registered")
		}
		logging.Logger.Errorf("Event ID: MEMBER_UPDATE_FAILED, Description: Failed to update member %s: %v", id.Hex(), err)
		return nil, Internal(err)
	}
	if res.MatchedCount == 0 {
		return nil, NotFoundf("member not found")
	}

	return s.GetMemberByID(ctx, id)
}

// DeleteMember removes a member permanently.
func (s *TeamService) DeleteMember(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.MembersCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logging.Logger.Errorf("Event ID: MEMBER_DELETE_FAILED, Description: Failed to delete member %s: %v", id.Hex(), err)
		return Internal(err)
	}
	if res.DeletedCount == 0 {
		return NotFoundf("member not found")
	}
	return nil
}
