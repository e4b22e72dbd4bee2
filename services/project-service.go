package services

import (
	"context"
	"time"

	"timesheet-project/backend/logging"
	"timesheet-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectService struct {
	ProjectsCollection *mongo.Collection
}

func NewProjectService(projects *mongo.Collection) *ProjectService {
	return &ProjectService{ProjectsCollection: projects}
}

// CreateProject stores a new project.
func (s *ProjectService) CreateProject(ctx context.Context, project models.Project) (*models.Project, error) {
	if project.Status == "" {
		project.Status = "active"
	}
	project.ID = primitive.NewObjectID()

	if _, err := s.ProjectsCollection.InsertOne(ctx, project); err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_INSERT_FAILED, Description: Failed to insert project: %v", err)
		return nil, Internal(err)
	}
	return &project, nil
}

// GetAllProjects returns every project.
func (s *ProjectService) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	cursor, err := s.ProjectsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, Internal(err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, Internal(err)
	}
	return projects, nil
}

// GetProjectByID returns one project.
func (s *ProjectService) GetProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundf("project not found")
	}
	if err != nil {
		return nil, Internal(err)
	}
	return &project, nil
}

// UpdateProject merges a patch into a project. Date strings are expected to
// be parsed by the handler before reaching this point.
func (s *ProjectService) UpdateProject(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Project, error) {
	delete(patch, "_id")

	res, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_UPDATE_FAILED, Description: Failed to update project %s: %v", id.Hex(), err)
		return nil, Internal(err)
	}
	if res.MatchedCount == 0 {
		return nil, NotFoundf("project not found")
	}
	return s.GetProjectByID(ctx, id)
}

// DeleteProject removes a project permanently.
func (s *ProjectService) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_DELETE_FAILED, Description: Failed to delete project %s: %v", id.Hex(), err)
		return Internal(err)
	}
	if res.DeletedCount == 0 {
		return NotFoundf("project not found")
	}
	return nil
}

// ParseDateField converts an incoming string date to time.Time, used by
// handlers when merging patches.
func ParseDateField(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
