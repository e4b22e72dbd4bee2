package services

import (
	"context"
	"fmt"
	"html"
	"os"
	"time"

	"timesheet-project/backend/logging"
	"timesheet-project/backend/models"
	"timesheet-project/backend/utils"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles both principal variants: administrative users and
// team members. Password reset tokens live in their own collection with a
// TTL index, never in process memory.
type UserService struct {
	UserCollection        *mongo.Collection
	MembersCollection     *mongo.Collection
	ResetTokensCollection *mongo.Collection
	JWTService            *JWTService
	TeamService           *TeamService
	MailBreaker           *gobreaker.CircuitBreaker
}

func NewUserService(
	users, members, resetTokens *mongo.Collection,
	jwtService *JWTService,
	teamService *TeamService,
	mailBreaker *gobreaker.CircuitBreaker,
) *UserService {
	return &UserService{
		UserCollection:        users,
		MembersCollection:     members,
		ResetTokensCollection: resetTokens,
		JWTService:            jwtService,
		TeamService:           teamService,
		MailBreaker:           mailBreaker,
	}
}

// resetToken is the stored shape of an issued password reset token.
type resetToken struct {
	Token     string           `bson:"token"`
	Email     string           `bson:"email"`
	UserModel models.UserModel `bson:"userModel"`
	ExpiresAt time.Time        `bson:"expiresAt"`
}

// EnsureAuthIndexes creates the unique email constraint on users and the TTL
// index that expires reset tokens server-side.
func (s *UserService) EnsureAuthIndexes(ctx context.Context) error {
	if _, err := s.UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	_, err := s.ResetTokensCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

// SignupUser registers an Admin/Manager account and returns it with a
// session token.
func (s *UserService) SignupUser(ctx context.Context, user models.User, password string) (*models.User, string, error) {
	count, err := s.UserCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return nil, "", Internal(err)
	}
	if count > 0 {
		return nil, "", Conflictf("email already registered")
	}

	user.FullName = html.EscapeString(user.FullName)
	user.Email = html.EscapeString(user.Email)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", Internal(err)
	}
	user.ID = primitive.NewObjectID()
	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = models.RoleManager
	}

	if _, err := s.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", Conflictf("email already registered")
		}
		logging.Logger.Errorf("Event ID: USER_INSERT_FAILED, Description: Failed to insert user: %v", err)
		return nil, "", Internal(err)
	}

	token, err := s.JWTService.GenerateAuthToken(user.Email, user.Role, models.UserModelUser)
	if err != nil {
		return nil, "", Internal(err)
	}

	logging.Logger.Infof("Event ID: USER_SIGNUP, Description: User %s registered with role %s", user.Email, user.Role)
	return &user, token, nil
}

// SignupMember registers a TeamMember account through the team service, so
// it receives a sequential employeeId, and returns it with a session token.
func (s *UserService) SignupMember(ctx context.Context, member models.TeamMember, password string) (*models.TeamMember, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", Internal(err)
	}
	member.Name = html.EscapeString(member.Name)
	member.Email = html.EscapeString(member.Email)
	member.Password = string(hashed)

	created, err := s.TeamService.AddMember(ctx, member)
	if err != nil {
		return nil, "", err
	}

	token, err := s.JWTService.GenerateAuthToken(created.Email, created.Role, models.UserModelTeamMember)
	if err != nil {
		return nil, "", Internal(err)
	}

	logging.Logger.Infof("Event ID: MEMBER_SIGNUP, Description: Member %s registered as %s", created.Email, created.EmployeeID)
	return created, token, nil
}

// ProvisionMember creates a member on behalf of an admin. A random initial
// password is generated, stored hashed, and mailed to the member; a mail
// failure does not roll back the created account.
func (s *UserService) ProvisionMember(ctx context.Context, member models.TeamMember) (*models.TeamMember, error) {
	plain, hash, err := generateMemberCredentials()
	if err != nil {
		return nil, Internal(err)
	}
	member.Password = hash

	created, err := s.TeamService.AddMember(ctx, member)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("<p>Your timesheet account has been created. Temporary password: <b>%s</b></p><p>Please change it after your first login.</p>", plain)
	if _, err := s.MailBreaker.Execute(func() (interface{}, error) {
		return nil, utils.SendEmail(created.Email, "Your timesheet account", body)
	}); err != nil {
		logging.Logger.Warnf("Event ID: WELCOME_MAIL_FAILED, Description: Failed to send credentials to %s: %v", created.Email, err)
	}

	return created, nil
}

// generateMemberCredentials returns a fresh random password and its bcrypt
// hash.
func generateMemberCredentials() (string, string, error) {
	plain := utils.GenerateRandomPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return plain, string(hash), nil
}

// FindPrincipalByEmail resolves an email across both collections into the
// unified Principal union. Users win when the same address exists in both.
func (s *UserService) FindPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == nil {
		return &models.Principal{Model: models.UserModelUser, User: &user}, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, Internal(err)
	}

	var member models.TeamMember
	err = s.MembersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, NotFoundf("user not found")
	}
	if err != nil {
		return nil, Internal(err)
	}
	return &models.Principal{Model: models.UserModelTeamMember, Member: &member}, nil
}

// Login authenticates either principal variant and returns a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.Principal, string, error) {
	principal, err := s.FindPrincipalByEmail(ctx, email)
	if err != nil {
		if AsError(err).Code == CodeNotFound {
			return nil, "", Unauthorizedf("invalid credentials")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(principal.HashedPassword()), []byte(password)); err != nil {
		return nil, "", Unauthorizedf("invalid credentials")
	}

	token, err := s.JWTService.GenerateAuthToken(principal.Email(), principal.Role(), principal.Model)
	if err != nil {
		return nil, "", Internal(err)
	}

	logging.Logger.Infof("Event ID: LOGIN_SUCCESS, Description: %s %s logged in", principal.Model, principal.Email())
	return principal, token, nil
}

// ForgotPassword issues a reset token valid for one hour and mails the reset
// link. The outcome is identical whether or not the address exists, so the
// endpoint cannot be used to probe for accounts.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	principal, err := s.FindPrincipalByEmail(ctx, email)
	if err != nil {
		if AsError(err).Code == CodeNotFound {
			return nil
		}
		return err
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return Internal(err)
	}

	doc := resetToken{
		Token:     token,
		Email:     principal.Email(),
		UserModel: principal.Model,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if _, err := s.ResetTokensCollection.InsertOne(ctx, doc); err != nil {
		logging.Logger.Errorf("Event ID: RESET_TOKEN_INSERT_FAILED, Description: Failed to store reset token: %v", err)
		return Internal(err)
	}

	baseURL := os.Getenv("RESET_LINK_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5173/reset-password"
	}
	body := fmt.Sprintf(`<p>Click <a href="%s/%s">here</a> to reset your password. The link expires in one hour.</p>`, baseURL, token)

	_, err = s.MailBreaker.Execute(func() (interface{}, error) {
		return nil, utils.SendEmail(principal.Email(), "Password Reset Request", body)
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: RESET_MAIL_FAILED, Description: Failed to send reset mail to %s: %v", principal.Email(), err)
		return Internal(err)
	}

	logging.Logger.Infof("Event ID: RESET_TOKEN_ISSUED, Description: Reset token issued for %s", principal.Email())
	return nil
}

// ResetPassword consumes a token and stores the new password hash in the
// collection the token was issued for.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	if len(newPassword) < 6 {
		return Validationf("password must be at least 6 characters")
	}
	if newPassword != confirmPassword {
		return Validationf("passwords do not match")
	}

	var stored resetToken
	err := s.ResetTokensCollection.FindOne(ctx, bson.M{"token": token}).Decode(&stored)
	if err == mongo.ErrNoDocuments {
		return Unauthorizedf("invalid or expired reset token")
	}
	if err != nil {
		return Internal(err)
	}
	// TTL deletion runs on a background cadence, so the expiry is still
	// checked here.
	if time.Now().After(stored.ExpiresAt) {
		return Unauthorizedf("invalid or expired reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return Internal(err)
	}

	collection := s.UserCollection
	if stored.UserModel == models.UserModelTeamMember {
		collection = s.MembersCollection
	}
	res, err := collection.UpdateOne(ctx,
		bson.M{"email": stored.Email},
		bson.M{"$set": bson.M{"password": string(hashed)}},
	)
	if err != nil {
		logging.Logger.Errorf("Event ID: PASSWORD_RESET_FAILED, Description: Failed to update password for %s: %v", stored.Email, err)
		return Internal(err)
	}
	if res.MatchedCount == 0 {
		return NotFoundf("user not found")
	}

	if _, err := s.ResetTokensCollection.DeleteOne(ctx, bson.M{"token": token}); err != nil {
		logging.Logger.Warnf("Event ID: RESET_TOKEN_CLEANUP_FAILED, Description: Failed to delete consumed token: %v", err)
	}

	logging.Logger.Infof("Event ID: PASSWORD_RESET, Description: Password reset for %s", stored.Email)
	return nil
}
