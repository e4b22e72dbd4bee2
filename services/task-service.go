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

type TaskService struct {
	TasksCollection *mongo.Collection
}

func NewTaskService(tasks *mongo.Collection) *TaskService {
	return &TaskService{TasksCollection: tasks}
}

// CreateTask stores a new task with defaults applied.
func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	now := time.Now()
	task.ID = primitive.NewObjectID()
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.TaskTodo
	}
	task.IsActive = true
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := s.TasksCollection.InsertOne(ctx, task); err != nil {
		logging.Logger.Errorf("Event ID: TASK_INSERT_FAILED, Description: Failed to insert task: %v", err)
		return nil, Internal(err)
	}
	task.Completion = task.CompletionPercentage()
	return &task, nil
}

// TaskFilter narrows ListTasks. Default list queries exclude soft-deleted
// tasks.
type TaskFilter struct {
	Project    *primitive.ObjectID
	AssignedTo *primitive.ObjectID
	Status     models.TaskStatus
}

// ListTasks returns active tasks, highest priority first.
func (s *TaskService) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := bson.M{"isActive": true}
	if filter.Project != nil {
		query["project"] = *filter.Project
	}
	if filter.AssignedTo != nil {
		query["assignedTo"] = *filter.AssignedTo
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := s.TasksCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, Internal(err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, Internal(err)
	}
	for i := range tasks {
		tasks[i].Completion = tasks[i].CompletionPercentage()
	}
	return tasks, nil
}

// GetTaskByID returns a task regardless of its isActive flag, so
// soft-deleted tasks stay retrievable by direct lookup.
func (s *TaskService) GetTaskByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundf("task not found")
	}
	if err != nil {
		return nil, Internal(err)
	}
	task.Completion = task.CompletionPercentage()
	return &task, nil
}

// UpdateTask merges a patch into a task.
func (s *TaskService) UpdateTask(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Task, error) {
	delete(patch, "_id")
	patch["updatedAt"] = time.Now()

	res, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_UPDATE_FAILED, Description: Failed to update task %s: %v", id.Hex(), err)
		return nil, Internal(err)
	}
	if res.MatchedCount == 0 {
		return nil, NotFoundf("task not found")
	}
	return s.GetTaskByID(ctx, id)
}

// SoftDeleteTask marks a task inactive instead of removing it.
func (s *TaskService) SoftDeleteTask(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_DELETE_FAILED, Description: Failed to soft delete task %s: %v", id.Hex(), err)
		return Internal(err)
	}
	if res.MatchedCount == 0 {
		return NotFoundf("task not found")
	}
	return nil
}
