package handlers

import (
	"encoding/json"
	"io"

	"timesheet-project/backend/models"
	"timesheet-project/backend/services"
	"timesheet-project/backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectIDParam converts a path/body identifier. A malformed ID is a
// VALIDATION error, distinct from NOT_FOUND.
func objectIDParam(raw, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, services.Validationf("invalid %s", field)
	}
	return id, nil
}

// decodePatch reads a JSON body into a flat document for $set merges. Fields
// named in dateFields are converted from strings to time values.
func decodePatch(body io.Reader, dateFields ...string) (bson.M, error) {
	patch := bson.M{}
	if err := json.NewDecoder(body).Decode(&patch); err != nil {
		return nil, services.Validationf("invalid request payload")
	}

	for _, field := range dateFields {
		raw, ok := patch[field].(string)
		if !ok || raw == "" {
			continue
		}
		t, err := services.ParseDateField(raw)
		if err != nil {
			return nil, services.Validationf("invalid date value for %s", field)
		}
		patch[field] = t
	}

	return patch, nil
}

// principalFromClaims rebuilds enough of a principal from token claims to
// derive its authority class.
func principalFromClaims(claims *utils.Claims) models.Principal {
	p := models.Principal{Model: models.UserModel(claims.UserModel)}
	if p.Model == models.UserModelTeamMember {
		p.Member = &models.TeamMember{Role: claims.Role}
	} else {
		p.User = &models.User{Role: claims.Role}
	}
	return p
}

// missingFields returns the names whose values are empty.
func missingFields(fields map[string]string) []string {
	var missing []string
	for _, name := range fieldOrder {
		value, ok := fields[name]
		if ok && value == "" {
			missing = append(missing, name)
		}
	}
	for name, value := range fields {
		if value == "" && !contains(fieldOrder, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// fieldOrder keeps validation messages stable for the common field names.
var fieldOrder = []string{
	"userId", "project", "task", "description", "name", "client", "email", "role",
	"startTime", "endTime", "employeeName", "supervisorName", "department",
	"leaveDate", "leaveTime", "leaveType", "duration", "employeeId", "shiftType",
	"assignedBy", "fullName", "phone", "password", "confirmPassword",
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
