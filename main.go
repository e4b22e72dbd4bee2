package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"timesheet-project/backend/handlers"
	"timesheet-project/backend/logging"
	"timesheet-project/backend/middleware"
	"timesheet-project/backend/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, User-Role")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Timesheet Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "timesheet_db"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	usersCollection := db.Collection("users")
	membersCollection := db.Collection("teammembers")
	projectsCollection := db.Collection("projects")
	tasksCollection := db.Collection("tasks")
	entriesCollection := db.Collection("timeentries")
	leavesCollection := db.Collection("leaveapplications")
	shiftsCollection := db.Collection("shifts")
	countersCollection := db.Collection("counters")
	resetTokensCollection := db.Collection("resettokens")

	mailBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MailSenderCB",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	jwtService := &services.JWTService{}
	teamService := services.NewTeamService(membersCollection, countersCollection)
	userService := services.NewUserService(usersCollection, membersCollection, resetTokensCollection, jwtService, teamService, mailBreaker)
	projectService := services.NewProjectService(projectsCollection)
	taskService := services.NewTaskService(tasksCollection)
	entryService := services.NewTimeEntryService(entriesCollection, shiftsCollection)
	leaveService := services.NewLeaveService(leavesCollection)
	shiftService := services.NewShiftService(shiftsCollection, membersCollection)

	if err := entryService.EnsureTimeEntryIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: INDEX_SETUP_FAILED, Description: Time entry index creation failed: %v", err)
	}
	if err := teamService.EnsureTeamIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: INDEX_SETUP_FAILED, Description: Team index creation failed: %v", err)
	}
	if err := userService.EnsureAuthIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: INDEX_SETUP_FAILED, Description: Auth index creation failed: %v", err)
	}
	logging.Logger.Info("Event ID: INDEXES_READY, Description: MongoDB indexes are in place.")

	authHandler := handlers.NewAuthHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService, userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	entryHandler := handlers.NewTimeEntryHandler(entryService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	shiftHandler := handlers.NewShiftHandler(shiftService)

	r := mux.NewRouter()

	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"success":true,"message":"Backend is working","timestamp":%q}`, time.Now().Format(time.RFC3339))
	}).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/user/signup", authHandler.SignupUser).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/member/signup", authHandler.SignupMember).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/forgot-password", authHandler.ForgotPassword).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/reset-password", authHandler.ResetPassword).Methods(http.MethodPost)

	// Everything below requires a valid session token.
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTAuthMiddleware)

	// Time entries
	api.HandleFunc("/time-entries/start", entryHandler.StartTimer).Methods(http.MethodPost)
	api.HandleFunc("/time-entries/stop/{id}", entryHandler.StopTimer).Methods(http.MethodPut)
	api.HandleFunc("/time-entries/manual", entryHandler.ManualEntry).Methods(http.MethodPost)
	api.HandleFunc("/time-entries/active/{userId}", entryHandler.GetActiveEntry).Methods(http.MethodGet)
	api.HandleFunc("/time-entries/user/{userId}/total-hours", entryHandler.GetTotalHours).Methods(http.MethodGet)
	api.HandleFunc("/time-entries/summary/{userId}", entryHandler.GetSummary).Methods(http.MethodGet)
	api.HandleFunc("/time-entries", entryHandler.ListEntries).Methods(http.MethodGet)
	api.HandleFunc("/time-entries", entryHandler.CreateEntry).Methods(http.MethodPost)
	api.HandleFunc("/time-entries/{id}", entryHandler.UpdateEntry).Methods(http.MethodPut)
	api.HandleFunc("/time-entries/{id}", entryHandler.DeleteEntry).Methods(http.MethodDelete)

	// Projects
	api.HandleFunc("/projects/all", projectHandler.GetAllProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", projectHandler.CreateProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}", projectHandler.GetProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", projectHandler.UpdateProject).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id}", projectHandler.DeleteProject).Methods(http.MethodDelete)

	// Tasks
	api.HandleFunc("/tasks/project/{projectId}", taskHandler.GetTasksByProject).Methods(http.MethodGet)
	api.HandleFunc("/tasks/user/{userId}", taskHandler.GetUserTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", taskHandler.ListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", taskHandler.GetTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}", taskHandler.UpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)

	// Team
	api.HandleFunc("/team/add", teamHandler.AddMember).Methods(http.MethodPost)
	api.HandleFunc("/team/all", teamHandler.GetAllMembers).Methods(http.MethodGet)
	api.HandleFunc("/team/update/{id}", teamHandler.UpdateMember).Methods(http.MethodPut)
	api.HandleFunc("/team/delete/{id}", teamHandler.DeleteMember).Methods(http.MethodDelete)
	api.HandleFunc("/team/{id}", teamHandler.GetMember).Methods(http.MethodGet)

	// Shifts
	api.HandleFunc("/shifts/employee/{employeeId}", shiftHandler.GetEmployeeShift).Methods(http.MethodGet)
	api.HandleFunc("/shifts/assign", shiftHandler.AssignShift).Methods(http.MethodPost)
	api.HandleFunc("/shifts/all", shiftHandler.GetAllShifts).Methods(http.MethodGet)
	api.HandleFunc("/shifts/history/{employeeId}", shiftHandler.GetShiftHistory).Methods(http.MethodGet)
	api.HandleFunc("/shifts/{shiftId}", shiftHandler.UpdateShift).Methods(http.MethodPut)
	api.HandleFunc("/shifts/{shiftId}", shiftHandler.DeleteShift).Methods(http.MethodDelete)

	// Leave
	api.HandleFunc("/leave", leaveHandler.SubmitLeave).Methods(http.MethodPost)
	api.HandleFunc("/leave", leaveHandler.ListLeaves).Methods(http.MethodGet)
	api.HandleFunc("/leave/{id}/status", leaveHandler.ReviewLeave).Methods(http.MethodPut)
	api.HandleFunc("/leave/{id}", leaveHandler.GetLeave).Methods(http.MethodGet)
	api.HandleFunc("/leave/{id}", leaveHandler.DeleteLeave).Methods(http.MethodDelete)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "5000"
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", serverPort),
		Handler:      enableCORS(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost:%s", serverPort)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
